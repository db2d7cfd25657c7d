package model

import "testing"

func TestClassify(t *testing.T) {
	cases := map[string]FileCategory{
		"image/png":                CategoryImage,
		"image/webp":               CategoryImage,
		"application/pdf":          CategoryDocument,
		"text/plain":               CategoryText,
		"application/octet-stream": CategoryUnknown,
		"text/html":                CategoryUnknown,
		"":                         CategoryUnknown,
	}
	for contentType, want := range cases {
		if got := Classify(contentType); got != want {
			t.Errorf("Classify(%q) = %q, want %q", contentType, got, want)
		}
	}
}

func TestResultKey(t *testing.T) {
	got := ResultKey("11111111-1111-4111-8111-111111111111")
	want := "results/11111111-1111-4111-8111-111111111111.json"
	if got != want {
		t.Fatalf("ResultKey = %q, want %q", got, want)
	}
}
