package service

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"

	"github.com/MimeLyc/transcript-downloader/internal/failure"
	"github.com/MimeLyc/transcript-downloader/pkg/icron"
	"github.com/MimeLyc/transcript-downloader/pkg/log"
)

// Scheduler re-runs a Downloader on a cron schedule. Each run gets its own
// timestamped output directory; a run still in progress makes the next
// trigger a no-op.
type Scheduler struct {
	downloader *Downloader
	cron       *cron.Cron
	cronExpr   string
	inputPath  string
	outputRoot string
}

func NewScheduler(
	downloader *Downloader,
	cronExpr string,
	inputPath string,
	outputRoot string,
) *Scheduler {
	return &Scheduler{
		downloader: downloader,
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		cronExpr:   cronExpr,
		inputPath:  inputPath,
		outputRoot: outputRoot,
	}
}

// Schedule registers the batch job without starting the scheduler.
func (s *Scheduler) Schedule(ctx context.Context) error {
	log.Info("Scheduling downloads with %q", s.cronExpr)

	_, err := s.cron.AddFunc(s.cronExpr, func() {
		if _, err := s.downloader.RunFile(ctx, s.inputPath, s.outputRoot); err != nil {
			failure.Report(err)
		}
		s.logNext()
	})
	return err
}

// Run starts the scheduler and blocks until ctx is done, then waits for a
// running batch to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Schedule(ctx); err != nil {
		return failure.Wrap(err, failure.Config, "invalid CRON_EXPR")
	}

	s.cron.Start()
	s.logNext()

	<-ctx.Done()
	log.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	return nil
}

func (s *Scheduler) logNext() {
	info, err := icron.GetTriggerInfo(s.cronExpr, time.Now())
	if err != nil {
		log.Warn("Cannot compute next run: %v", err)
		return
	}
	log.Info("Next run at %s (%s)", info.Next.Format(time.RFC3339), humanize.Time(info.Next))
}
