package document

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean title", "Test Video", "Test Video"},
		{"branding suffix", "Test Video - YouTube", "Test Video"},
		{"branding suffix only once", "Test - YouTube - YouTube", "Test - YouTube"},
		{"branding not at end", "A - YouTube story", "A - YouTube story"},
		{"reserved characters", `a\b/c*d?e:f"g<h>i|j`, "abcdefghij"},
		{"surrounding whitespace", "   spaced out   ", "spaced out"},
		{"control characters", "line\none\ttab", "lineonetab"},
		{"only reserved", `???///`, ""},
		{"empty", "", ""},
		{"unicode kept", "Café, überall 日本語", "Café, überall 日本語"},
		{"decomposed normalized", "Cafe\u0301", "Caf\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_LengthCap(t *testing.T) {
	inputs := []string{
		strings.Repeat("a", 500),
		strings.Repeat("é", 300),
		strings.Repeat("日本", 150) + " - YouTube",
		strings.Repeat("a", 199) + " b",
	}

	for _, in := range inputs {
		got := SanitizeFilename(in)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxStemLength)
	}

	// truncation is by rune, so multibyte titles keep 200 characters
	assert.Equal(t, MaxStemLength, utf8.RuneCountInString(SanitizeFilename(strings.Repeat("é", 300))))
	// a space left at the cut is trimmed
	assert.Equal(t, strings.Repeat("a", 199), SanitizeFilename(strings.Repeat("a", 199)+" b"))
}

func TestSanitizeFilename_Properties(t *testing.T) {
	titles := []string{
		"Test Video",
		`What? Why: "Because" <reasons> | and/or \ stuff*`,
		"Never Gonna Give You Up - YouTube",
		strings.Repeat("x?", 300),
	}

	for _, title := range titles {
		got := SanitizeFilename(title)
		assert.False(t, strings.ContainsAny(got, reservedChars), got)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxStemLength)
		// clean output stays unchanged on a second pass
		assert.Equal(t, got, SanitizeFilename(got))
	}
}

func TestFallbackStem(t *testing.T) {
	assert.Equal(t, "transcript_dQw4w9WgXcQ", FallbackStem("dQw4w9WgXcQ"))
}
