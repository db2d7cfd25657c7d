package processor

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// TextStats holds the lightweight counts derived from a plain-text body.
type TextStats struct {
	Lines      int
	Words      int
	Characters int
}

// AnalyzeText computes line, word, and character counts for a UTF-8 body.
// Words split on any whitespace; characters are runes, not bytes. A single
// trailing newline terminates the last line rather than opening an empty one,
// so "a b c\nd e\n" counts two lines.
func AnalyzeText(data []byte) (TextStats, error) {
	if !utf8.Valid(data) {
		return TextStats{}, errors.New("content is not valid UTF-8")
	}
	content := string(data)
	stats := TextStats{
		Words:      len(strings.Fields(content)),
		Characters: utf8.RuneCountInString(content),
	}
	if content != "" {
		lines := strings.Split(content, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		stats.Lines = len(lines)
	}
	return stats, nil
}
