package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/dropflow/dropflow/internal/config"
	"github.com/dropflow/dropflow/internal/notify"
	"github.com/dropflow/dropflow/internal/processor"
	"github.com/dropflow/dropflow/internal/storage"
	"github.com/dropflow/dropflow/internal/worker"
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

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	queueClient := asynq.NewClient(redisOpt)
	defer queueClient.Close()

	listener := notify.NewListener(store, queueClient)
	go func() {
		for ctx.Err() == nil {
			if err := listener.Run(ctx); err != nil {
				log.Printf("notification listener: %v", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}()

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Concurrency,
	})
	handler := worker.NewHandler(processor.New(store))

	go func() {
		<-ctx.Done()
		server.Shutdown()
	}()

	if err := server.Run(handler.Mux()); err != nil {
		log.Printf("worker stopped: %v", err)
		os.Exit(1)
	}
}
