package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dropflow/dropflow/internal/api"
	"github.com/dropflow/dropflow/internal/config"
	"github.com/dropflow/dropflow/internal/issuer"
	"github.com/dropflow/dropflow/internal/retriever"
	"github.com/dropflow/dropflow/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := storage.NewMinioStore(cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatalf("ensure bucket: %v", err)
	}

	srv := api.New(cfg, issuer.New(store, cfg.UploadTTL), retriever.New(store))
	if err := srv.Run(ctx); err != nil {
		log.Printf("api stopped: %v", err)
		os.Exit(1)
	}
}
