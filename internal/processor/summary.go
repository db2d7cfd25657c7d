package processor

import (
	"fmt"
	"strings"

	"github.com/dropflow/dropflow/internal/model"
)

// Size and length thresholds that switch the summary's recommendation branch.
const (
	pdfLargeBytes   = 1 << 20
	imageLargeBytes = 5 << 20
	textLongWords   = 1000
)

// securityFooter is appended to every summary. It states the store's standing
// configuration, not a per-file computed fact.
const securityFooter = "\n\nThe file is encrypted at rest using AES-256 server-side encryption " +
	"and follows cloud storage security best practices. Access is controlled " +
	"through policies applying the principle of least privilege."

// Summarize renders the human-readable narrative for a processed file. It
// tolerates degraded metadata: a missing content type falls through to the
// generic branch and a missing size formats as zero bytes.
func Summarize(meta model.FileMetadata) string {
	name := meta.OriginalFileName
	if name == "" {
		name = "file"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Successfully processed file '%s' ", name)

	switch meta.FileCategory {
	case model.CategoryDocument:
		fmt.Fprintf(&b, "in PDF format with a size of %s. ", FormatFileSize(meta.FileSize))
		b.WriteString("This document has been stored securely and is available for further " +
			"analysis. Basic metadata including storage details and timestamps has been extracted. ")
		if meta.FileSize > pdfLargeBytes {
			b.WriteString("Given the document's considerable size, additional processing is " +
				"recommended for text extraction and detailed content analysis.")
		} else {
			b.WriteString("The document size allows fast processing for content extraction.")
		}
	case model.CategoryText:
		lines := intValue(meta.LineCount)
		words := intValue(meta.WordCount)
		fmt.Fprintf(&b, "in plain text format with %d lines and %d words. ", lines, words)
		fmt.Fprintf(&b, "The file holds %s of textual content. ", FormatFileSize(meta.FileSize))
		if words > textLongWords {
			b.WriteString("The document contains a significant amount of text, suggesting " +
				"detailed content that could benefit from sentiment analysis or keyword " +
				"extraction through NLP services.")
		} else {
			b.WriteString("The content is concise and suitable for quick analysis. " +
				"The text is ready to be processed by NLP pipelines if needed.")
		}
	case model.CategoryImage:
		fmt.Fprintf(&b, "in %s image format with a size of %s. ", imageFormat(meta.ContentType), FormatFileSize(meta.FileSize))
		b.WriteString("The image has been stored and is ready for visual analysis. ")
		if meta.FileSize > imageLargeBytes {
			b.WriteString("Given the image's considerable size, optimization is recommended " +
				"before intensive processing. The file may contain a high-resolution image " +
				"or extensive embedded metadata.")
		} else {
			b.WriteString("The image size is suitable for processing with computer vision " +
				"services for object, text, or content detection.")
		}
	default:
		fmt.Fprintf(&b, "of type '%s' with a size of %s. ", meta.ContentType, FormatFileSize(meta.FileSize))
		b.WriteString("The file has been processed and stored correctly.")
	}

	b.WriteString(securityFooter)
	return b.String()
}

// FormatFileSize renders a byte count with binary (1024) steps and two
// decimals, stopping at the first unit where the value drops below 1024.
func FormatFileSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"bytes", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.2f TB", value)
}

// imageFormat derives the display format from the content-type suffix:
// image/png -> PNG.
func imageFormat(contentType string) string {
	if idx := strings.LastIndex(contentType, "/"); idx >= 0 {
		contentType = contentType[idx+1:]
	}
	return strings.ToUpper(contentType)
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
