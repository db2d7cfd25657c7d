// Package issuer implements the upload-credential endpoint: it validates a
// requested upload and returns a time-limited presigned PUT URL scoped to the
// derived object key.
package issuer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dropflow/dropflow/internal/model"
	"github.com/dropflow/dropflow/internal/storage"
)

// AllowedContentTypes is the closed whitelist of uploadable types.
var AllowedContentTypes = []string{
	"application/pdf",
	"text/plain",
	"image/png",
	"image/jpeg",
	"image/jpg",
	"image/gif",
	"image/webp",
}

const defaultUploadTTL = 5 * time.Minute

// Request is the client's upload request body. All three fields are required.
type Request struct {
	FileID      string `json:"fileId"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// Grant echoes the issued credential back to the client.
type Grant struct {
	UploadURL string `json:"uploadUrl"`
	FileID    string `json:"fileId"`
	ObjectKey string `json:"objectKey"`
	ExpiresIn int    `json:"expiresIn"`
}

// ValidationError reports a client-side problem with the request. Missing
// carries the absent required fields; Allowed carries the whitelist when the
// content type was rejected.
type ValidationError struct {
	Message string
	Missing []string
	Allowed []string
}

func (e *ValidationError) Error() string { return e.Message }

// Issuer validates upload requests and presigns their target keys.
type Issuer struct {
	store storage.ObjectStore
	ttl   time.Duration
}

// New constructs an Issuer. A non-positive ttl falls back to five minutes.
func New(store storage.ObjectStore, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultUploadTTL
	}
	return &Issuer{store: store, ttl: ttl}
}

// Issue validates req and returns a presigned write credential. The signing
// operation is only reached once validation has passed.
func (i *Issuer) Issue(ctx context.Context, req Request) (*Grant, error) {
	var missing []string
	if req.FileID == "" {
		missing = append(missing, "fileId")
	}
	if req.FileName == "" {
		missing = append(missing, "fileName")
	}
	if req.ContentType == "" {
		missing = append(missing, "contentType")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Message: "Missing required parameters", Missing: missing}
	}
	if !contentTypeAllowed(req.ContentType) {
		return nil, &ValidationError{Message: "Invalid content type", Allowed: AllowedContentTypes}
	}

	key := ObjectKey(req.FileID, req.FileName)
	uploadURL, err := i.store.PresignUpload(ctx, key, req.ContentType, req.FileName, i.ttl)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return &Grant{
		UploadURL: uploadURL,
		FileID:    req.FileID,
		ObjectKey: key,
		ExpiresIn: int(i.ttl.Seconds()),
	}, nil
}

// ObjectKey derives uploads/{fileId}{ext} where ext is the lower-cased
// trailing dot-suffix of fileName, empty when there is none.
func ObjectKey(fileID, fileName string) string {
	return model.UploadPrefix + fileID + Extension(fileName)
}

// Extension returns the lower-cased extension of fileName including the dot.
func Extension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}

func contentTypeAllowed(contentType string) bool {
	for _, allowed := range AllowedContentTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
