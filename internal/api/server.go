// Package api exposes the HTTP surface: the upload-url issuer and the result
// retriever share a router, a CORS policy, and a JSON envelope.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dropflow/dropflow/internal/config"
	"github.com/dropflow/dropflow/internal/issuer"
	"github.com/dropflow/dropflow/internal/retriever"
)

// Server hosts the two synchronous endpoints of the pipeline.
type Server struct {
	cfg       *config.Config
	issuer    *issuer.Issuer
	retriever *retriever.Retriever
	cors      *CORSPolicy
	server    *http.Server
	once      sync.Once
}

// New constructs a Server.
func New(cfg *config.Config, iss *issuer.Issuer, ret *retriever.Retriever) *Server {
	return &Server{
		cfg:       cfg,
		issuer:    iss,
		retriever: ret,
		cors:      NewCORSPolicy(cfg.AllowedOrigins),
	}
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.once.Do(func() {
		s.server = &http.Server{
			Addr:    s.cfg.Address,
			Handler: s.Routes(),
		}
	})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()
	log.Printf("api listening on %s", s.cfg.Address)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Routes builds the router. Exported so tests can drive it with httptest.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/upload-url", s.handleUploadURL)
	r.Options("/upload-url", s.handlePreflight("POST, OPTIONS"))
	r.Get("/results", s.handleResult) // missing fileId is a 400, not a routing miss
	r.Get("/results/{fileId}", s.handleResult)
	r.Options("/results/{fileId}", s.handlePreflight("GET, OPTIONS"))
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePreflight(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.cors.Apply(w, r, methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	s.cors.Apply(w, r, "POST, OPTIONS")

	var req issuer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	grant, err := s.issuer.Issue(r.Context(), req)
	if err != nil {
		var verr *issuer.ValidationError
		if errors.As(err, &verr) {
			payload := map[string]any{"error": verr.Message}
			if len(verr.Missing) > 0 {
				payload["required"] = verr.Missing
			}
			if len(verr.Allowed) > 0 {
				payload["allowed"] = verr.Allowed
			}
			respondJSON(w, http.StatusBadRequest, payload)
			return
		}
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to generate upload URL",
			"message": err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, grant)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	s.cors.Apply(w, r, "GET, OPTIONS")

	fileID := chi.URLParam(r, "fileId")
	result, err := s.retriever.Result(r.Context(), fileID)
	switch {
	case errors.Is(err, retriever.ErrMissingID):
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing fileId parameter"})
	case errors.Is(err, retriever.ErrInvalidID):
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid fileId format"})
	case errors.Is(err, retriever.ErrNotReady):
		respondJSON(w, http.StatusNotFound, map[string]any{
			"error":   "Result not ready",
			"message": "File is still being processed",
			"fileId":  fileID,
		})
	case err != nil:
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to retrieve result",
			"message": err.Error(),
		})
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(result); err != nil {
			log.Printf("write result response: %v", err)
		}
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
