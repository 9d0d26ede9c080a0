package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/transcript-downloader/internal/failure"
)

func TestScheduler_InvalidExpression(t *testing.T) {
	s := NewScheduler(NewDownloader(&fakeFetcher{}, DefaultOptions()), "every day", "list.txt", t.TempDir())

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.Config))
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	fetcher := &fakeFetcher{}
	s := NewScheduler(NewDownloader(fetcher, DefaultOptions()), "0 3 1 1 *", "list.txt", t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Empty(t, fetcher.calls)
	assert.Len(t, s.cron.Entries(), 1)
}
