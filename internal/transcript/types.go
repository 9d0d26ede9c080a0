package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Format selects the representation the service returns.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates a TRANSCRIPT_FORMAT value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatText:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported transcript format %q", s)
	}
}

// Options selects what the service includes in a response.
type Options struct {
	Format           Format
	IncludeTimestamp bool
	SendMetadata     bool
}

// DefaultOptions match what the batch downloader asks for.
func DefaultOptions() Options {
	return Options{
		Format:           FormatJSON,
		IncludeTimestamp: true,
		SendMetadata:     true,
	}
}

// Segment is one timed unit of transcript text.
type Segment struct {
	Text     string   `json:"text"`
	Start    *float64 `json:"start,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
	End      *float64 `json:"end,omitempty"`
}

// Transcript is either a sequence of segments or a plain string.
// The zero value means the field was absent or null.
type Transcript struct {
	Segments []Segment
	Text     string
	IsText   bool
}

// Present reports whether the response carried a transcript at all.
func (t Transcript) Present() bool {
	return t.IsText || t.Segments != nil
}

func (t *Transcript) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = Transcript{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &t.Text); err != nil {
			return err
		}
		t.IsText = true
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		t.Segments = make([]Segment, 0, len(raw))
		for _, item := range raw {
			seg, err := decodeSegment(item)
			if err != nil {
				return err
			}
			t.Segments = append(t.Segments, seg)
		}
		return nil
	default:
		return fmt.Errorf("transcript: unexpected JSON value %s", truncate(data, 32))
	}
}

func (t Transcript) MarshalJSON() ([]byte, error) {
	switch {
	case t.IsText:
		return json.Marshal(t.Text)
	case t.Segments != nil:
		return json.Marshal(t.Segments)
	default:
		return []byte("null"), nil
	}
}

// decodeSegment accepts a segment object; bare strings and other scalars
// become text-only segments.
func decodeSegment(item json.RawMessage) (Segment, error) {
	item = bytes.TrimSpace(item)
	if len(item) == 0 {
		return Segment{}, nil
	}

	switch item[0] {
	case '{':
		var seg Segment
		if err := json.Unmarshal(item, &seg); err != nil {
			return Segment{}, fmt.Errorf("transcript segment: %w", err)
		}
		return seg, nil
	case '"':
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return Segment{}, err
		}
		return Segment{Text: s}, nil
	default:
		return Segment{Text: string(item)}, nil
	}
}

// Metadata describes the video. Empty strings mean the field was not sent.
type Metadata struct {
	Title      string `json:"title,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
	AuthorURL  string `json:"author_url,omitempty"`
}

// Response is the body of a successful transcript request.
type Response struct {
	Transcript Transcript `json:"transcript"`
	Language   *string    `json:"language,omitempty"`
	Metadata   *Metadata  `json:"metadata,omitempty"`
}

// Title returns the metadata title, if any.
func (r *Response) Title() (string, bool) {
	if r == nil || r.Metadata == nil || r.Metadata.Title == "" {
		return "", false
	}
	return r.Metadata.Title, true
}

// LanguageTag returns the language reported by the service, if any.
func (r *Response) LanguageTag() (string, bool) {
	if r == nil || r.Language == nil || *r.Language == "" {
		return "", false
	}
	return *r.Language, true
}

// errorBody is the shape of a non-200 response.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
