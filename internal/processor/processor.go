// Package processor turns object-created notifications into result documents:
// it classifies the uploaded object, derives metadata, renders a narrative
// summary, and writes results/{fileId}.json back to the store.
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/dropflow/dropflow/internal/model"
	"github.com/dropflow/dropflow/internal/pdfutil"
	"github.com/dropflow/dropflow/internal/storage"
)

// Event is one batch of object-created notifications. Records are handled
// independently; the first hard failure aborts the batch so the queue can
// retry it.
type Event struct {
	Records []Record `json:"records"`
}

// Record identifies one created object. Key arrives URL-encoded, as delivered
// by the store's notification stream.
type Record struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// Processor derives results from uploaded objects.
type Processor struct {
	store storage.ObjectStore
}

// New constructs a Processor.
func New(store storage.ObjectStore) *Processor {
	return &Processor{store: store}
}

// ProcessEvent handles every record in the event. Records outside uploads/ or
// without a usable file id are skipped with a log line; any other failure is
// returned so the triggering mechanism re-attempts the whole batch.
// Reprocessing is idempotent: the result is recomputed deterministically from
// the object and overwrites the same key.
func (p *Processor) ProcessEvent(ctx context.Context, event Event) error {
	for _, rec := range event.Records {
		if err := p.processRecord(ctx, rec); err != nil {
			return fmt.Errorf("process %s: %w", rec.Key, err)
		}
	}
	return nil
}

func (p *Processor) processRecord(ctx context.Context, rec Record) error {
	key, err := url.QueryUnescape(rec.Key)
	if err != nil {
		return fmt.Errorf("unescape key: %w", err)
	}
	log.Printf("processing file: %s", key)

	if !strings.HasPrefix(key, model.UploadPrefix) {
		log.Printf("skipping file outside %s: %s", model.UploadPrefix, key)
		return nil
	}
	fileID := fileIDFromKey(key)
	if fileID == "" {
		log.Printf("could not extract file id from: %s", key)
		return nil
	}

	meta := p.buildMetadata(ctx, key)
	result := model.Result{
		FileID:      fileID,
		Status:      model.StatusCompleted,
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
		Metadata:    meta,
		Summary:     Summarize(meta),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	resultKey := model.ResultKey(fileID)
	err = p.store.Put(ctx, resultKey, data, "application/json", map[string]string{
		"processed-at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	log.Printf("successfully processed %s -> %s", key, resultKey)
	return nil
}

// fileIDFromKey strips the prefix and the last dot-suffix from the key's
// filename component: uploads/abc-123.pdf -> abc-123.
func fileIDFromKey(key string) string {
	name := key[strings.LastIndex(key, "/")+1:]
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[:idx]
	}
	return name
}

// buildMetadata fetches store-level metadata and the category-specific
// extras. A failed metadata fetch degrades to an error record rather than
// failing the pass; category analysis failures only log and leave their
// fields absent.
func (p *Processor) buildMetadata(ctx context.Context, key string) model.FileMetadata {
	info, err := p.store.Stat(ctx, key)
	if err != nil {
		log.Printf("error getting file metadata for %s: %v", key, err)
		return model.FileMetadata{Error: err.Error(), S3Key: key}
	}

	name := info.UserMetadata["original-filename"]
	if name == "" {
		name = path.Base(key)
	}
	storageClass := info.StorageClass
	if storageClass == "" {
		storageClass = "STANDARD"
	}
	meta := model.FileMetadata{
		OriginalFileName: name,
		FileSize:         info.Size,
		ContentType:      info.ContentType,
		UploadedAt:       info.LastModified.UTC().Format(time.RFC3339),
		StorageClass:     storageClass,
		S3Key:            key,
		FileCategory:     model.Classify(info.ContentType),
	}

	switch meta.FileCategory {
	case model.CategoryImage:
		meta.EstimatedDimensions = "Variable (detailed analysis required)"
	case model.CategoryDocument:
		meta.EstimatedPages = "Variable (detailed analysis required)"
		if pages, err := p.countPages(ctx, key); err != nil {
			log.Printf("could not count pdf pages for %s: %v", key, err)
		} else {
			meta.PageCount = &pages
		}
	case model.CategoryText:
		if stats, err := p.analyzeText(ctx, key); err != nil {
			log.Printf("could not analyze text content for %s: %v", key, err)
		} else {
			meta.LineCount = &stats.Lines
			meta.WordCount = &stats.Words
			meta.CharacterCount = &stats.Characters
		}
	}
	return meta
}

func (p *Processor) analyzeText(ctx context.Context, key string) (TextStats, error) {
	data, err := p.store.Get(ctx, key)
	if err != nil {
		return TextStats{}, err
	}
	return AnalyzeText(data)
}

func (p *Processor) countPages(ctx context.Context, key string) (int, error) {
	data, err := p.store.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return pdfutil.PageCount(data)
}
