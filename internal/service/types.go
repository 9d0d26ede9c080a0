package service

import (
	"context"
	"time"

	"github.com/MimeLyc/transcript-downloader/internal/document"
	"github.com/MimeLyc/transcript-downloader/internal/failure"
	"github.com/MimeLyc/transcript-downloader/internal/transcript"
)

// Fetcher retrieves the transcript for one reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref string, opts transcript.Options) (*transcript.Response, error)
}

// Options tunes a download run.
type Options struct {
	Fetch  transcript.Options
	Render document.RenderOptions
	// Delay is the pause between two references, independent of retry backoff.
	Delay time.Duration
	// OutputPrefix names the timestamped run directory.
	OutputPrefix string
}

// DefaultOptions returns the options used by the command.
func DefaultOptions() Options {
	return Options{
		Fetch:        transcript.DefaultOptions(),
		Delay:        500 * time.Millisecond,
		OutputPrefix: "transcripts",
	}
}

// FailedReference records why a reference produced no document.
type FailedReference struct {
	Ref  string
	Kind failure.Kind
	Err  error
}

// Summary tallies a finished run.
type Summary struct {
	Total     int
	Successes int
	Failures  int
	OutputDir string
	Bytes     int64
	Elapsed   time.Duration
	Written   []document.Written
	Failed    []FailedReference
}
