package document

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// MaxStemLength caps a filename stem, counted in runes after NFC.
	MaxStemLength = 200

	brandingSuffix = " - YouTube"
	reservedChars  = `\/*?:"<>|`
)

// SanitizeFilename turns a video title into a filesystem-safe stem. The
// result may be empty; callers substitute FallbackStem.
func SanitizeFilename(title string) string {
	title = strings.TrimSuffix(title, brandingSuffix)
	title = strings.TrimSpace(title)

	title = strings.Map(func(r rune) rune {
		if strings.ContainsRune(reservedChars, r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, title)

	title = norm.NFC.String(title)

	if runes := []rune(title); len(runes) > MaxStemLength {
		title = string(runes[:MaxStemLength])
	}

	return strings.TrimSpace(title)
}

// FallbackStem is the stem used when a title sanitizes to nothing.
func FallbackStem(videoID string) string {
	return "transcript_" + videoID
}
