package api

import "net/http"

// CORSPolicy decides the Access-Control-Allow-Origin value for a request.
// Origins on the allow-list are mirrored back; anything else receives the
// wildcard, which suits a public intake endpoint. Both handlers consume the
// same policy instance so the allow-list lives in one place.
type CORSPolicy struct {
	allowed map[string]struct{}
}

const allowedHeaders = "Content-Type, X-Amz-Date, Authorization, X-Api-Key"

// NewCORSPolicy builds a policy from the configured origin allow-list.
func NewCORSPolicy(origins []string) *CORSPolicy {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}
	return &CORSPolicy{allowed: allowed}
}

// Origin returns the header value to answer requestOrigin with.
func (p *CORSPolicy) Origin(requestOrigin string) string {
	if _, ok := p.allowed[requestOrigin]; ok {
		return requestOrigin
	}
	return "*"
}

// Apply sets the CORS headers for a route allowing the given methods.
func (p *CORSPolicy) Apply(w http.ResponseWriter, r *http.Request, methods string) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", p.Origin(r.Header.Get("Origin")))
	h.Set("Access-Control-Allow-Methods", methods)
	h.Set("Access-Control-Allow-Headers", allowedHeaders)
}
