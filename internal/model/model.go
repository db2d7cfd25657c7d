// Package model contains the shapes shared across the API and the worker:
// the object key layout, the derived file metadata, and the result document
// that the processor writes back to the store.
package model

import "strings"

// Key layout inside the shared bucket. Uploads land under UploadPrefix via
// presigned PUTs; the processor writes one result document per file id.
const (
	UploadPrefix = "uploads/"
	ResultPrefix = "results/"
)

// ResultKey returns the object key holding the processed result for a file.
func ResultKey(fileID string) string {
	return ResultPrefix + fileID + ".json"
}

// FileCategory is a closed tag resolved once from the declared content type.
// Downstream code switches on the tag instead of re-comparing strings.
type FileCategory string

const (
	CategoryImage    FileCategory = "image"
	CategoryDocument FileCategory = "document"
	CategoryText     FileCategory = "text"
	// CategoryUnknown marks content types outside the known set; the JSON
	// field is omitted entirely in that case.
	CategoryUnknown FileCategory = ""
)

// Classify maps a declared content type to its category.
func Classify(contentType string) FileCategory {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return CategoryImage
	case contentType == "application/pdf":
		return CategoryDocument
	case contentType == "text/plain":
		return CategoryText
	default:
		return CategoryUnknown
	}
}

// FileMetadata is the derived, read-only view of an uploaded object built at
// processing time. When the metadata fetch fails the record degrades to just
// Error and S3Key; every other field carries omitempty so the degraded form
// serializes without noise.
type FileMetadata struct {
	OriginalFileName string       `json:"originalFileName,omitempty"`
	FileSize         int64        `json:"fileSize,omitempty"`
	ContentType      string       `json:"contentType,omitempty"`
	UploadedAt       string       `json:"uploadedAt,omitempty"`
	StorageClass     string       `json:"storageClass,omitempty"`
	S3Key            string       `json:"s3Key"`
	FileCategory     FileCategory `json:"fileCategory,omitempty"`

	// Image placeholder; real dimension extraction is out of scope.
	EstimatedDimensions string `json:"estimatedDimensions,omitempty"`

	// Document fields. EstimatedPages stays a placeholder; PageCount is set
	// when the object parses as a PDF.
	EstimatedPages string `json:"estimatedPages,omitempty"`
	PageCount      *int   `json:"pageCount,omitempty"`

	// Plain-text fields, absent when the body is not valid UTF-8.
	LineCount      *int `json:"lineCount,omitempty"`
	WordCount      *int `json:"wordCount,omitempty"`
	CharacterCount *int `json:"characterCount,omitempty"`

	Error string `json:"error,omitempty"`
}

// StatusCompleted is the only result status this pipeline models; a missing
// result object is the "still processing" signal.
const StatusCompleted = "completed"

// Result is the JSON document stored at results/{fileId}.json. It is written
// exactly once per successful processing pass and never mutated.
type Result struct {
	FileID      string       `json:"fileId"`
	Status      string       `json:"status"`
	ProcessedAt string       `json:"processedAt"`
	Metadata    FileMetadata `json:"metadata"`
	Summary     string       `json:"summary"`
}
