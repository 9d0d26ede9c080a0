package document

import (
	"fmt"
	"strings"

	"github.com/MimeLyc/transcript-downloader/internal/lang"
	"github.com/MimeLyc/transcript-downloader/internal/transcript"
)

const unknownLanguage = "unknown"

// RenderOptions tunes optional parts of rendering.
type RenderOptions struct {
	// DetectLanguage guesses the language from the text when the service
	// did not report one.
	DetectLanguage bool
}

// Render builds the Markdown document for ref. videoID may be empty when no
// ID could be extracted.
func Render(ref, videoID string, resp *transcript.Response, opts RenderOptions) Document {
	if videoID == "" {
		videoID = UnknownID
	}

	title, ok := resp.Title()
	if !ok {
		title = "Transcript " + videoID
	}

	stem := SanitizeFilename(title)
	if stem == "" || stem == UnknownID {
		stem = FallbackStem(videoID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Original Link:** %s\n", ref)
	fmt.Fprintf(&b, "**Video ID:** %s\n", videoID)
	fmt.Fprintf(&b, "**Detected Language:** %s\n", languageOf(resp, opts))
	b.WriteString("\n---\n\n## Transcript\n\n")
	b.WriteString(FormatTranscript(resp))
	b.WriteString("\n")

	if resp != nil && resp.Metadata != nil && resp.Metadata.AuthorName != "" {
		fmt.Fprintf(&b, "\n\n**Channel:** %s", resp.Metadata.AuthorName)
		if resp.Metadata.AuthorURL != "" {
			fmt.Fprintf(&b, " (%s)", resp.Metadata.AuthorURL)
		}
	}

	return Document{
		Stem:    stem,
		Content: b.String(),
		VideoID: videoID,
	}
}

// FormatTranscript renders one line per segment, prefixing the start offset
// when present. A plain-string transcript is returned verbatim.
func FormatTranscript(resp *transcript.Response) string {
	if resp == nil {
		return ""
	}
	t := resp.Transcript
	if t.IsText {
		return t.Text
	}

	lines := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if seg.Start != nil {
			lines = append(lines, fmt.Sprintf("[%.2fs] %s", *seg.Start, seg.Text))
		} else {
			lines = append(lines, seg.Text)
		}
	}
	return strings.Join(lines, "\n")
}

func languageOf(resp *transcript.Response, opts RenderOptions) string {
	if tag, ok := resp.LanguageTag(); ok {
		return lang.Normalize(tag)
	}
	if opts.DetectLanguage && resp != nil {
		if tag, ok := lang.Detect(segmentTexts(resp.Transcript)); ok {
			return tag + " (detected)"
		}
	}
	return unknownLanguage
}

func segmentTexts(t transcript.Transcript) []string {
	if t.IsText {
		return []string{t.Text}
	}
	texts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		texts = append(texts, seg.Text)
	}
	return texts
}
