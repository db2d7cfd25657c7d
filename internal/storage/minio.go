package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/notification"

	"github.com/dropflow/dropflow/internal/config"
	"github.com/dropflow/dropflow/internal/model"
)

// MinioStore implements ObjectStore against MinIO or any S3-compatible
// backend.
type MinioStore struct {
	client *minio.Client
	bucket string
	region string
}

// NewMinioStore creates a MinIO client from the Config.
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.S3Region,
	}, nil
}

// EnsureBucket makes sure the shared bucket exists before use.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("make bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// PresignUpload returns a write-only URL for key. The content type and the
// original-filename/uploaded-at attributes are signed into the request so the
// uploaded object carries them as user metadata.
func (s *MinioStore) PresignUpload(ctx context.Context, key, contentType, originalFilename string, expiry time.Duration) (string, error) {
	headers := http.Header{}
	headers.Set("Content-Type", contentType)
	headers.Set("x-amz-meta-original-filename", originalFilename)
	headers.Set("x-amz-meta-uploaded-at", time.Now().UTC().Format(time.RFC3339))
	u, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, key, expiry, url.Values{}, headers)
	if err != nil {
		return "", fmt.Errorf("presign upload %q: %w", key, err)
	}
	return u.String(), nil
}

// Stat fetches store-level metadata for key. User metadata keys are lowered
// so callers do not depend on HTTP header canonicalization.
func (s *MinioStore) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat object %q: %w", key, mapNotFound(err))
	}
	meta := make(map[string]string, len(info.UserMetadata))
	for k, v := range info.UserMetadata {
		meta[strings.ToLower(k)] = v
	}
	return ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
		StorageClass: info.StorageClass,
		UserMetadata: meta,
	}, nil
}

// Get reads the full object body for key.
func (s *MinioStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, mapNotFound(err))
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		// GetObject defers most failures to the first read.
		return nil, fmt.Errorf("read object %q: %w", key, mapNotFound(err))
	}
	return data, nil
}

// Put writes an object with the given content type and user metadata.
func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string, userMetadata map[string]string) error {
	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: userMetadata,
	}
	if _, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

// ListenUploads subscribes to object-created events under the uploads prefix.
// The channel closes when the context is cancelled or the stream fails.
func (s *MinioStore) ListenUploads(ctx context.Context) <-chan notification.Info {
	return s.client.ListenBucketNotification(ctx, s.bucket, model.UploadPrefix, "", []string{
		"s3:ObjectCreated:*",
	})
}

func mapNotFound(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotFound
	}
	return err
}
