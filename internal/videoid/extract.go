package videoid

import (
	"regexp"
	"strings"
)

// Length is the length of a canonical video ID.
const Length = 11

var canonicalRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// patterns are tried in order; each capture must end at a non-ID character
// or the end of the input so a longer token is never cut down to 11.
var patterns = []*regexp.Regexp{
	// watch?v=ID, &v=ID
	regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	// /embed/ID, /shorts/ID, /live/ID, /v/ID, /e/ID
	regexp.MustCompile(`/(?:embed|shorts|live|v|e)/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	// youtu.be/ID
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
}

// IsCanonical reports whether s is already an 11-character video ID.
func IsCanonical(s string) bool {
	return canonicalRE.MatchString(s)
}

// Extract returns the canonical ID embedded in ref. ok is false when ref is
// neither a bare ID nor one of the known URL shapes.
func Extract(ref string) (id string, ok bool) {
	ref = strings.TrimSpace(ref)
	if IsCanonical(ref) {
		return ref, true
	}

	for _, re := range patterns {
		if m := re.FindStringSubmatch(ref); len(m) >= 2 {
			return m[1], true
		}
	}

	return "", false
}
