package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dropflow/dropflow/internal/signing"
)

// MemoryStore is an in-memory ObjectStore used by tests and local
// experiments. Presigned URLs are minted with an HMAC token so the capability
// shape matches the real backend without one running.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	signer  *signing.Signer
}

type memoryObject struct {
	data         []byte
	contentType  string
	userMetadata map[string]string
	lastModified time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(secret []byte) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memoryObject),
		signer:  signing.NewSigner(secret),
	}
}

// PresignUpload returns a signed pseudo-URL for key. The store performs no
// writes here; tests place objects with Put.
func (m *MemoryStore) PresignUpload(ctx context.Context, key, contentType, originalFilename string, expiry time.Duration) (string, error) {
	expires := time.Now().Add(expiry).Unix()
	sig := m.signer.Sign(key, expires)
	return fmt.Sprintf("memory://dropflow/%s?expires=%d&signature=%s", key, expires, sig), nil
}

// ValidateUploadURL checks the token minted by PresignUpload.
func (m *MemoryStore) ValidateUploadURL(key, expires, signature string) bool {
	return m.signer.Validate(key, expires, signature)
}

// Stat returns metadata for key or ErrNotFound.
func (m *MemoryStore) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return ObjectInfo{}, fmt.Errorf("stat object %q: %w", key, ErrNotFound)
	}
	meta := make(map[string]string, len(obj.userMetadata))
	for k, v := range obj.userMetadata {
		meta[strings.ToLower(k)] = v
	}
	return ObjectInfo{
		Key:          key,
		Size:         int64(len(obj.data)),
		ContentType:  obj.contentType,
		LastModified: obj.lastModified,
		UserMetadata: meta,
	}, nil
}

// Get returns a copy of the object body or ErrNotFound.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("get object %q: %w", key, ErrNotFound)
	}
	out := make([]byte, len(obj.data))
	copy(out, obj.data)
	return out, nil
}

// Put inserts or replaces an object.
func (m *MemoryStore) Put(ctx context.Context, key string, data []byte, contentType string, userMetadata map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	meta := make(map[string]string, len(userMetadata))
	for k, v := range userMetadata {
		meta[strings.ToLower(k)] = v
	}
	m.objects[key] = memoryObject{
		data:         stored,
		contentType:  contentType,
		userMetadata: meta,
		lastModified: time.Now().UTC(),
	}
	return nil
}
