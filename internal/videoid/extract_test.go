package videoid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var sampleIDs = []string{
	"dQw4w9WgXcQ",
	"abcdefghijk",
	"A_B-C_D-E_F",
	"___________",
	"-----------",
	"0123456789a",
}

func TestExtract_CanonicalUnchanged(t *testing.T) {
	for _, id := range sampleIDs {
		got, ok := Extract(id)
		assert.True(t, ok, id)
		assert.Equal(t, id, got)
	}
}

func TestExtract_URLShapes(t *testing.T) {
	wrappers := []struct {
		name string
		wrap func(id string) string
	}{
		{"watch", func(id string) string { return "https://www.youtube.com/watch?v=" + id }},
		{"watch with params", func(id string) string { return "https://www.youtube.com/watch?v=" + id + "&t=42s&list=PL123" }},
		{"watch v not first", func(id string) string { return "https://www.youtube.com/watch?feature=share&v=" + id }},
		{"mobile", func(id string) string { return "https://m.youtube.com/watch?v=" + id }},
		{"music", func(id string) string { return "https://music.youtube.com/watch?v=" + id + "&si=xyz" }},
		{"embed", func(id string) string { return "https://www.youtube.com/embed/" + id }},
		{"nocookie embed", func(id string) string { return "https://www.youtube-nocookie.com/embed/" + id + "?start=10" }},
		{"shorts", func(id string) string { return "https://youtube.com/shorts/" + id }},
		{"live", func(id string) string { return "https://www.youtube.com/live/" + id + "?feature=share" }},
		{"v path", func(id string) string { return "https://www.youtube.com/v/" + id }},
		{"short link", func(id string) string { return "https://youtu.be/" + id }},
		{"short link with time", func(id string) string { return "https://youtu.be/" + id + "?t=10" }},
		{"no scheme", func(id string) string { return "youtu.be/" + id }},
		{"surrounding spaces", func(id string) string { return "  https://youtu.be/" + id + "  " }},
	}

	for _, w := range wrappers {
		t.Run(w.name, func(t *testing.T) {
			for _, id := range sampleIDs {
				got, ok := Extract(w.wrap(id))
				assert.True(t, ok, w.wrap(id))
				assert.Equal(t, id, got)
			}
		})
	}
}

func TestExtract_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"ten characters", "dQw4w9WgXc"},
		{"twelve characters", "dQw4w9WgXcQQ"},
		{"invalid characters", "dQw4w9WgX!Q"},
		{"unrelated url", "https://example.com/watch"},
		{"watch without id", "https://www.youtube.com/watch?list=PL123"},
		{"short id in query", "https://www.youtube.com/watch?v=abc"},
		{"too long id in query", "https://www.youtube.com/watch?v=dQw4w9WgXcQextra"},
		{"channel page", "https://www.youtube.com/@somechannel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.input)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestExtract_FirstPatternWins(t *testing.T) {
	// the v= parameter is preferred over a path form earlier in the string
	got, ok := Extract("https://www.youtube.com/embed/aaaaaaaaaaa?v=bbbbbbbbbbb")
	assert.True(t, ok)
	assert.Equal(t, "bbbbbbbbbbb", got)
}

func TestExtract_Idempotent(t *testing.T) {
	for _, in := range []string{"https://youtu.be/dQw4w9WgXcQ", "nope", strings.Repeat("x", 11)} {
		a, okA := Extract(in)
		b, okB := Extract(in)
		assert.Equal(t, a, b)
		assert.Equal(t, okA, okB)
	}
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical("dQw4w9WgXcQ"))
	assert.False(t, IsCanonical(" dQw4w9WgXcQ"))
	assert.False(t, IsCanonical("dQw4w9WgXc"))
}
