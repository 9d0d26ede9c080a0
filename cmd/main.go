package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MimeLyc/transcript-downloader/internal/config"
	"github.com/MimeLyc/transcript-downloader/internal/document"
	"github.com/MimeLyc/transcript-downloader/internal/failure"
	"github.com/MimeLyc/transcript-downloader/internal/service"
	"github.com/MimeLyc/transcript-downloader/internal/transcript"
	"github.com/MimeLyc/transcript-downloader/pkg/log"
)

func main() {
	os.Exit(run(os.Args[1:], ".env"))
}

// run returns the process exit code. args[0], when given, overrides
// INPUT_FILE.
func run(args []string, envFile string) int {
	// a missing .env is fine; the environment may already be set
	_ = godotenv.Load(envFile)
	log.InitLogger(log.ParseLevel(os.Getenv("LOG_LEVEL")))

	var opts []config.Option
	if len(args) > 0 {
		opts = append(opts, config.WithInputFile(args[0]))
	}

	cfg, err := config.NewFromEnv(opts...)
	if err != nil {
		failure.Report(err)
		return 1
	}

	client, err := transcript.NewClient(cfg.ClientConfig())
	if err != nil {
		failure.Report(failure.Wrap(err, failure.Config, "failed to create transcript client"))
		return 1
	}

	downloader := service.NewDownloader(client, service.Options{
		Fetch:        cfg.FetchOptions(),
		Render:       document.RenderOptions{DetectLanguage: cfg.Batch.DetectLanguage},
		Delay:        cfg.RequestDelay(),
		OutputPrefix: "transcripts",
	})

	if cfg.System.CronExpr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		scheduler := service.NewScheduler(downloader, cfg.System.CronExpr, cfg.Batch.InputFile, cfg.Batch.OutputRoot)
		if err := scheduler.Run(ctx); err != nil {
			failure.Report(err)
			return 1
		}
		return 0
	}

	if _, err := downloader.RunFile(context.Background(), cfg.Batch.InputFile, cfg.Batch.OutputRoot); err != nil {
		failure.Report(err)
		return 1
	}
	return 0
}
