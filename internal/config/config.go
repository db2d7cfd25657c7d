// Package config centralizes how Dropflow reads environment variables and
// exposes them as typed values shared by the API and the worker.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents runtime configuration for both binaries.
type Config struct {
	Address string

	// Bucket is the single shared bucket the components coordinate through.
	Bucket      string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Region    string
	S3UseSSL    bool

	// UploadTTL bounds the lifetime of issued upload credentials.
	UploadTTL time.Duration

	// AllowedOrigins is the CORS allow-list; origins on it are mirrored back,
	// anything else receives the wildcard.
	AllowedOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Concurrency is the worker's task handler pool size.
	Concurrency int
}

const (
	defaultAddress        = ":8080"
	defaultBucket         = "dropflow"
	defaultS3Endpoint     = "localhost:9000"
	defaultS3AccessKey    = "minioadmin"
	defaultS3SecretKey    = "minioadmin"
	defaultS3Region       = "us-east-1"
	defaultUploadTTL      = 5 * time.Minute
	defaultAllowedOrigins = "http://localhost:8000,http://127.0.0.1:8000"
	defaultRedisAddr      = "localhost:6379"
	defaultConcurrency    = 4
)

// Load reads configuration from a .env file (if present) and environment
// variables, falling back to defaults suitable for the local compose stack.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}
	cfg := &Config{
		Address:        readEnv("DROPFLOW_ADDRESS", defaultAddress),
		Bucket:         readEnv("DROPFLOW_BUCKET", defaultBucket),
		S3Endpoint:     readEnv("DROPFLOW_S3_ENDPOINT", defaultS3Endpoint),
		S3AccessKey:    readEnv("DROPFLOW_S3_ACCESS_KEY", defaultS3AccessKey),
		S3SecretKey:    readEnv("DROPFLOW_S3_SECRET_KEY", defaultS3SecretKey),
		S3Region:       readEnv("DROPFLOW_S3_REGION", defaultS3Region),
		S3UseSSL:       readEnv("DROPFLOW_S3_USE_SSL", "false") == "true",
		UploadTTL:      parseDuration("DROPFLOW_UPLOAD_TTL", defaultUploadTTL),
		AllowedOrigins: parseList("DROPFLOW_ALLOWED_ORIGINS", defaultAllowedOrigins),
		RedisAddr:      readEnv("DROPFLOW_REDIS_ADDR", defaultRedisAddr),
		RedisPassword:  readEnv("DROPFLOW_REDIS_PASSWORD", ""),
		RedisDB:        parseInt("DROPFLOW_REDIS_DB", 0),
		Concurrency:    parseInt("DROPFLOW_CONCURRENCY", defaultConcurrency),
	}
	if cfg.UploadTTL <= 0 {
		cfg.UploadTTL = defaultUploadTTL
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return cfg, nil
}

func readEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseList(key, def string) []string {
	val := readEnv(key, def)
	out := strings.Split(val, ",")
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}
	return out
}

func parseInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
