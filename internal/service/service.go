package service

import (
	"context"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MimeLyc/transcript-downloader/internal/document"
	"github.com/MimeLyc/transcript-downloader/internal/failure"
	"github.com/MimeLyc/transcript-downloader/internal/transcript"
	"github.com/MimeLyc/transcript-downloader/internal/videoid"
	"github.com/MimeLyc/transcript-downloader/pkg/file"
	"github.com/MimeLyc/transcript-downloader/pkg/log"
)

var banner = strings.Repeat("=", 60)

// Downloader drives the batch: one reference at a time, never in parallel.
type Downloader struct {
	fetcher Fetcher
	writer  document.Writer
	opts    Options
	sleep   transcript.SleepFunc
	now     func() time.Time
}

type DownloaderOption func(*Downloader)

// WithWriter replaces the document writer.
func WithWriter(w document.Writer) DownloaderOption {
	return func(d *Downloader) {
		d.writer = w
	}
}

// WithPause replaces the wait used between references.
func WithPause(fn transcript.SleepFunc) DownloaderOption {
	return func(d *Downloader) {
		d.sleep = fn
	}
}

// WithClock replaces the clock used to name the run directory.
func WithClock(now func() time.Time) DownloaderOption {
	return func(d *Downloader) {
		d.now = now
	}
}

func NewDownloader(fetcher Fetcher, opts Options, dopts ...DownloaderOption) *Downloader {
	if opts.OutputPrefix == "" {
		opts.OutputPrefix = "transcripts"
	}
	d := &Downloader{
		fetcher: fetcher,
		writer:  document.NewWriter(),
		opts:    opts,
		sleep:   transcript.Sleep,
		now:     time.Now,
	}
	for _, opt := range dopts {
		opt(d)
	}
	return d
}

// RunFile reads the reference list at inputPath, creates a fresh
// timestamped directory under outputRoot and processes every reference.
// Only input and directory errors are returned; per-reference failures are
// tallied in the Summary.
func (d *Downloader) RunFile(ctx context.Context, inputPath, outputRoot string) (Summary, error) {
	log.Info("Reading links from file: %s", inputPath)
	refs, err := ReadReferences(inputPath)
	if err != nil {
		return Summary{}, err
	}
	log.Info("Found %s links to process", humanize.Comma(int64(len(refs))))

	outDir := file.TimestampedDir(outputRoot, d.opts.OutputPrefix, d.now())
	if err := file.EnsureDir(outDir); err != nil {
		return Summary{}, failure.Wrap(err, failure.IOError, "failed to create output directory").
			WithContext("dir", outDir)
	}
	log.Info("Output directory created: %s", outDir)

	summary := d.Run(ctx, refs, outDir)
	logSummary(summary)
	return summary, nil
}

// Run processes refs in order, writing documents into outDir.
func (d *Downloader) Run(ctx context.Context, refs []string, outDir string) Summary {
	start := d.now()
	summary := Summary{
		Total:     len(refs),
		OutputDir: outDir,
	}

	for idx, ref := range refs {
		log.Info("%s", banner)
		log.Info("Processing video %d/%d", idx+1, len(refs))
		log.Info("%s", ref)
		log.Info("%s", banner)

		written, err := d.Process(ctx, ref, outDir)
		if err != nil {
			kind, _ := failure.KindOf(err)
			failure.Report(err)
			summary.Failures++
			summary.Failed = append(summary.Failed, FailedReference{Ref: ref, Kind: kind, Err: err})
		} else {
			log.Info("Transcript saved: %s (%s)", written.Path, humanize.Bytes(uint64(written.Bytes)))
			summary.Successes++
			summary.Bytes += int64(written.Bytes)
			summary.Written = append(summary.Written, written)
		}

		if idx < len(refs)-1 && d.opts.Delay > 0 {
			if err := d.sleep(ctx, d.opts.Delay); err != nil {
				log.Warn("Run interrupted: %v", err)
				break
			}
		}
	}

	summary.Elapsed = d.now().Sub(start)
	return summary
}

// Process handles a single reference. References without a recognisable
// video ID fail before any request is made.
func (d *Downloader) Process(ctx context.Context, ref, outDir string) (document.Written, error) {
	videoID, ok := videoid.Extract(ref)
	if !ok {
		return document.Written{}, failure.New(failure.IdentifierNotFound,
			"could not extract a video ID from "+ref)
	}
	log.Debug("Video ID: %s", videoID)

	resp, err := d.fetcher.Fetch(ctx, ref, d.opts.Fetch)
	if err != nil {
		return document.Written{}, err
	}

	doc := document.Render(ref, videoID, resp, d.opts.Render)
	return d.writer.Write(outDir, doc)
}

func logSummary(s Summary) {
	log.Info("%s", banner)
	log.Info("FINAL SUMMARY")
	log.Info("%s", banner)
	log.Info("Successes: %d", s.Successes)
	log.Info("Failures: %d", s.Failures)
	log.Info("Total processed: %d", s.Total)
	log.Info("Written: %s in %s", humanize.Bytes(uint64(s.Bytes)), s.Elapsed.Round(time.Millisecond))
	log.Info("Output directory: %s", s.OutputDir)
	for _, f := range s.Failed {
		log.Info("  failed [%s] %s", f.Kind, f.Ref)
	}
	log.Info("%s", banner)
}
