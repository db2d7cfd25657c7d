package issuer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropflow/dropflow/internal/storage"
)

// fakeStore counts presign calls so tests can assert validation happens
// before any signing.
type fakeStore struct {
	presigns    int
	failPresign bool
}

func (f *fakeStore) PresignUpload(ctx context.Context, key, contentType, originalFilename string, expiry time.Duration) (string, error) {
	f.presigns++
	if f.failPresign {
		return "", errors.New("signing backend unavailable")
	}
	return "https://store.example/" + key + "?signature=abc", nil
}

func (f *fakeStore) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{}, storage.ErrNotFound
}

func (f *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeStore) Put(ctx context.Context, key string, data []byte, contentType string, userMetadata map[string]string) error {
	return nil
}

func TestIssueDerivesObjectKey(t *testing.T) {
	store := &fakeStore{}
	iss := New(store, 5*time.Minute)

	grant, err := iss.Issue(context.Background(), Request{
		FileID:      "11111111-1111-4111-8111-111111111111",
		FileName:    "notes.txt",
		ContentType: "text/plain",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if grant.ObjectKey != "uploads/11111111-1111-4111-8111-111111111111.txt" {
		t.Fatalf("unexpected object key %q", grant.ObjectKey)
	}
	if grant.ExpiresIn != 300 {
		t.Fatalf("expected 300s expiry, got %d", grant.ExpiresIn)
	}
	if grant.FileID != "11111111-1111-4111-8111-111111111111" {
		t.Fatalf("file id not echoed: %q", grant.FileID)
	}
	if grant.UploadURL == "" {
		t.Fatalf("expected upload url")
	}
	if store.presigns != 1 {
		t.Fatalf("expected exactly one presign call, got %d", store.presigns)
	}
}

func TestIssueLowersExtension(t *testing.T) {
	iss := New(&fakeStore{}, 5*time.Minute)
	grant, err := iss.Issue(context.Background(), Request{
		FileID:      "abc",
		FileName:    "Report.PDF",
		ContentType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if grant.ObjectKey != "uploads/abc.pdf" {
		t.Fatalf("unexpected object key %q", grant.ObjectKey)
	}
}

func TestIssueWithoutExtension(t *testing.T) {
	iss := New(&fakeStore{}, 5*time.Minute)
	grant, err := iss.Issue(context.Background(), Request{
		FileID:      "abc",
		FileName:    "README",
		ContentType: "text/plain",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if grant.ObjectKey != "uploads/abc" {
		t.Fatalf("unexpected object key %q", grant.ObjectKey)
	}
}

func TestIssueReportsMissingFields(t *testing.T) {
	store := &fakeStore{}
	iss := New(store, 5*time.Minute)

	_, err := iss.Issue(context.Background(), Request{FileName: "notes.txt"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Missing) != 2 || verr.Missing[0] != "fileId" || verr.Missing[1] != "contentType" {
		t.Fatalf("unexpected missing set %v", verr.Missing)
	}
	if store.presigns != 0 {
		t.Fatalf("presign must not run on invalid input")
	}
}

func TestIssueRejectsDisallowedContentType(t *testing.T) {
	store := &fakeStore{}
	iss := New(store, 5*time.Minute)

	_, err := iss.Issue(context.Background(), Request{
		FileID:      "abc",
		FileName:    "payload.exe",
		ContentType: "application/octet-stream",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Allowed) != len(AllowedContentTypes) {
		t.Fatalf("expected whitelist in error, got %v", verr.Allowed)
	}
	if store.presigns != 0 {
		t.Fatalf("presign must not run for disallowed content type")
	}
}

func TestIssueSurfacesSigningFailure(t *testing.T) {
	iss := New(&fakeStore{failPresign: true}, 5*time.Minute)
	_, err := iss.Issue(context.Background(), Request{
		FileID:      "abc",
		FileName:    "notes.txt",
		ContentType: "text/plain",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("signing failure must not be a validation error")
	}
}
