package lang

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// Normalize canonicalizes a BCP 47 tag reported by the service, so "EN_us"
// becomes "en-US". Unparsable input is returned trimmed but otherwise as is.
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		return tag
	}
	return parsed.String()
}

// Detect guesses the dominant language of texts by majority vote over the
// per-line whatlanggo results. Ties go to the language seen first.
func Detect(texts []string) (string, bool) {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		code := whatlanggo.DetectLang(text).Iso6391()
		if code == "" {
			continue
		}
		if _, ok := counts[code]; !ok {
			order = append(order, code)
		}
		counts[code]++
	}

	var top string
	var topCount int
	for _, code := range order {
		if counts[code] > topCount {
			top = code
			topCount = counts[code]
		}
	}
	if top == "" {
		return "", false
	}

	return language.Make(top).String(), true
}
