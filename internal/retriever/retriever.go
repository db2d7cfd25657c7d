// Package retriever implements the result polling endpoint: given a file id
// it looks up results/{fileId}.json and distinguishes "not ready" from real
// store failures.
package retriever

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dropflow/dropflow/internal/model"
	"github.com/dropflow/dropflow/internal/storage"
)

var (
	// ErrMissingID is returned when no file id was supplied.
	ErrMissingID = errors.New("missing fileId parameter")
	// ErrInvalidID is returned when the file id is not a canonical UUIDv4.
	// No store access happens in that case.
	ErrInvalidID = errors.New("invalid fileId format")
	// ErrNotReady means the result object does not exist yet. Polling clients
	// treat this as a normal outcome, not a fault.
	ErrNotReady = errors.New("result not ready")
)

// Retriever reads processed results from the store.
type Retriever struct {
	store storage.ObjectStore
}

// New constructs a Retriever.
func New(store storage.ObjectStore) *Retriever {
	return &Retriever{store: store}
}

// Result validates fileID and returns the stored result document verbatim.
func (r *Retriever) Result(ctx context.Context, fileID string) (json.RawMessage, error) {
	if fileID == "" {
		return nil, ErrMissingID
	}
	if !IsValidFileID(fileID) {
		return nil, ErrInvalidID
	}
	data, err := r.store.Get(ctx, model.ResultKey(fileID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotReady
		}
		return nil, fmt.Errorf("read result: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("stored result for %s is not valid JSON", fileID)
	}
	return json.RawMessage(data), nil
}

// IsValidFileID reports whether id is a canonical version-4 UUID. The length
// check rejects the urn: and braced forms uuid.Parse would otherwise accept.
func IsValidFileID(id string) bool {
	if len(id) != 36 {
		return false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}
