package processor

import (
	"strings"
	"testing"

	"github.com/dropflow/dropflow/internal/model"
)

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "0.00 bytes"},
		{1023, "1023.00 bytes"},
		{1536, "1.50 KB"},
		{2 * 1024 * 1024, "2.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
		{5 * 1024 * 1024 * 1024 * 1024, "5.00 TB"},
	}
	for _, tc := range cases {
		if got := FormatFileSize(tc.size); got != tc.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}

func TestSummarizeSmallPDF(t *testing.T) {
	s := Summarize(model.FileMetadata{
		OriginalFileName: "report.pdf",
		FileSize:         512 * 1024,
		ContentType:      "application/pdf",
		FileCategory:     model.CategoryDocument,
	})
	if !strings.Contains(s, "report.pdf") {
		t.Errorf("summary should name the file: %q", s)
	}
	if !strings.Contains(s, "512.00 KB") {
		t.Errorf("summary should include the formatted size: %q", s)
	}
	if !strings.Contains(s, "fast processing") {
		t.Errorf("small pdf should take the fast-processing branch: %q", s)
	}
}

func TestSummarizeLargePDF(t *testing.T) {
	s := Summarize(model.FileMetadata{
		OriginalFileName: "tome.pdf",
		FileSize:         2 * 1024 * 1024,
		ContentType:      "application/pdf",
		FileCategory:     model.CategoryDocument,
	})
	if !strings.Contains(s, "additional processing is recommended") {
		t.Errorf("large pdf should recommend further processing: %q", s)
	}
}

func TestSummarizeLongText(t *testing.T) {
	lines, words := 40, 1500
	s := Summarize(model.FileMetadata{
		OriginalFileName: "essay.txt",
		FileSize:         9000,
		ContentType:      "text/plain",
		FileCategory:     model.CategoryText,
		LineCount:        &lines,
		WordCount:        &words,
	})
	if !strings.Contains(s, "40 lines") || !strings.Contains(s, "1500 words") {
		t.Errorf("text summary should carry the counts: %q", s)
	}
	if !strings.Contains(s, "sentiment analysis or keyword extraction") {
		t.Errorf("long text should suggest NLP follow-up: %q", s)
	}
}

func TestSummarizeShortText(t *testing.T) {
	lines, words := 2, 5
	s := Summarize(model.FileMetadata{
		OriginalFileName: "notes.txt",
		FileSize:         10,
		ContentType:      "text/plain",
		FileCategory:     model.CategoryText,
		LineCount:        &lines,
		WordCount:        &words,
	})
	if !strings.Contains(s, "concise") {
		t.Errorf("short text should take the concise branch: %q", s)
	}
}

func TestSummarizeImageNamesFormat(t *testing.T) {
	s := Summarize(model.FileMetadata{
		OriginalFileName: "photo.png",
		FileSize:         100 * 1024,
		ContentType:      "image/png",
		FileCategory:     model.CategoryImage,
	})
	if !strings.Contains(s, "PNG image format") {
		t.Errorf("image summary should upper-case the format: %q", s)
	}
	if !strings.Contains(s, "computer vision") {
		t.Errorf("small image should take the vision branch: %q", s)
	}
}

func TestSummarizeLargeImage(t *testing.T) {
	s := Summarize(model.FileMetadata{
		OriginalFileName: "scan.jpeg",
		FileSize:         6 * 1024 * 1024,
		ContentType:      "image/jpeg",
		FileCategory:     model.CategoryImage,
	})
	if !strings.Contains(s, "optimization is recommended") {
		t.Errorf("large image should recommend optimization: %q", s)
	}
}

func TestSummarizeOtherContentType(t *testing.T) {
	s := Summarize(model.FileMetadata{
		OriginalFileName: "data.bin",
		FileSize:         42,
		ContentType:      "application/octet-stream",
	})
	if !strings.Contains(s, "'application/octet-stream'") {
		t.Errorf("generic summary should name the raw content type: %q", s)
	}
}

func TestSummarizeDegradedMetadata(t *testing.T) {
	s := Summarize(model.FileMetadata{
		S3Key: "uploads/broken.bin",
		Error: "stat failed",
	})
	if !strings.Contains(s, "'file'") {
		t.Errorf("degraded summary should fall back to a generic name: %q", s)
	}
	if !strings.Contains(s, "0.00 bytes") {
		t.Errorf("degraded summary should default the size to zero: %q", s)
	}
}

func TestSummarizeAppendsSecurityFooter(t *testing.T) {
	for _, meta := range []model.FileMetadata{
		{ContentType: "application/pdf", FileCategory: model.CategoryDocument},
		{ContentType: "text/plain", FileCategory: model.CategoryText},
		{ContentType: "image/gif", FileCategory: model.CategoryImage},
		{ContentType: "application/zip"},
	} {
		s := Summarize(meta)
		if !strings.Contains(s, "AES-256") || !strings.Contains(s, "least privilege") {
			t.Errorf("summary for %q missing security footer: %q", meta.ContentType, s)
		}
	}
}
