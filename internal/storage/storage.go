// Package storage defines the object store boundary shared by the API and the
// worker. The MinIO implementation talks to any S3-compatible backend; the
// in-memory implementation backs tests.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist in the store. Callers
// compare with errors.Is; the retriever turns it into its "not ready" signal.
var ErrNotFound = errors.New("object not found")

// ObjectInfo is the store-level metadata for a single key. UserMetadata keys
// are normalized to lower case regardless of backend header canonicalization.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	StorageClass string
	UserMetadata map[string]string
}

// ObjectStore is the operation surface the pipeline needs from the shared
// bucket. Implementations must provide read-after-write consistency per key.
type ObjectStore interface {
	// PresignUpload returns a time-limited, write-only URL for key. The
	// declared content type and the original filename are bound into the
	// signature so the client must send them as headers on the PUT.
	PresignUpload(ctx context.Context, key, contentType, originalFilename string, expiry time.Duration) (string, error)
	// Stat fetches store-level metadata for key.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Get reads the full object body.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes an object with the given content type and user metadata.
	Put(ctx context.Context, key string, data []byte, contentType string, userMetadata map[string]string) error
}
