package processor

import "testing"

func TestAnalyzeText(t *testing.T) {
	stats, err := AnalyzeText([]byte("a b c\nd e\n"))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if stats.Lines != 2 {
		t.Errorf("lines = %d, want 2", stats.Lines)
	}
	if stats.Words != 5 {
		t.Errorf("words = %d, want 5", stats.Words)
	}
	if stats.Characters != 10 {
		t.Errorf("characters = %d, want 10", stats.Characters)
	}
}

func TestAnalyzeTextEmpty(t *testing.T) {
	stats, err := AnalyzeText(nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if stats.Lines != 0 || stats.Words != 0 || stats.Characters != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestAnalyzeTextWithoutTrailingNewline(t *testing.T) {
	stats, err := AnalyzeText([]byte("one\ntwo"))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if stats.Lines != 2 {
		t.Errorf("lines = %d, want 2", stats.Lines)
	}
}

func TestAnalyzeTextCountsRunes(t *testing.T) {
	stats, err := AnalyzeText([]byte("héllo"))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if stats.Characters != 5 {
		t.Errorf("characters = %d, want 5", stats.Characters)
	}
}

func TestAnalyzeTextRejectsInvalidUTF8(t *testing.T) {
	if _, err := AnalyzeText([]byte{0xff, 0xfe, 0xfd}); err == nil {
		t.Fatalf("expected error for invalid utf-8")
	}
}
