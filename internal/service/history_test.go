package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTextPreview(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		max      int
		expected string
	}{
		{"short text untouched", "all good", 120, "all good"},
		{"trims whitespace", "  note  ", 120, "note"},
		{"truncates with ellipsis", "abcdefghij", 8, "abcde..."},
		{"exact length untouched", "abcdefgh", 8, "abcdefgh"},
		{"tiny budget drops ellipsis", "abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textPreview(tt.body, tt.max))
		})
	}
}

func TestTextPreviewNeverSplitsRunes(t *testing.T) {
	body := strings.Repeat("ação é ótima ", 10)
	for max := 3; max < 40; max++ {
		preview := textPreview(body, max)
		assert.True(t, utf8.ValidString(preview), "max=%d produced invalid UTF-8: %q", max, preview)
		assert.LessOrEqual(t, len(preview), max)
	}
}
