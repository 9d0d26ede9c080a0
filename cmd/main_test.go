package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T, root string) {
	t.Helper()
	t.Setenv("TRANSCRIPT_API_KEY", "")
	t.Setenv("TRANSCRIPT_API_URL", "")
	t.Setenv("INPUT_FILE", "")
	t.Setenv("OUTPUT_ROOT", root)
	t.Setenv("REQUEST_DELAY_MS", "0")
	t.Setenv("CRON_EXPR", "")
	t.Setenv("LOG_LEVEL", "error")
}

func TestRun_MissingKeyFailsBeforeNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	root := t.TempDir()
	setBaseEnv(t, root)
	t.Setenv("TRANSCRIPT_API_URL", server.URL)

	input := filepath.Join(root, "list.txt")
	require.NoError(t, os.WriteFile(input, []byte("dQw4w9WgXcQ\n"), 0644))

	assert.Equal(t, 1, run([]string{input}, filepath.Join(root, "missing.env")))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestRun_KeyFromEnvFile(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "Bearer from-dotenv", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"transcript": [{"text": "hi", "start": 1}], "metadata": {"title": "Env Video"}}`))
	}))
	defer server.Close()

	root := t.TempDir()
	setBaseEnv(t, root)
	t.Setenv("TRANSCRIPT_API_URL", server.URL)
	// godotenv does not override variables that are already set
	require.NoError(t, os.Unsetenv("TRANSCRIPT_API_KEY"))

	envFile := filepath.Join(root, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TRANSCRIPT_API_KEY=from-dotenv\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("TRANSCRIPT_API_KEY") })

	input := filepath.Join(root, "list.txt")
	require.NoError(t, os.WriteFile(input, []byte("https://youtu.be/dQw4w9WgXcQ\n"), 0644))

	assert.Equal(t, 0, run([]string{input}, envFile))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	matches, err := filepath.Glob(filepath.Join(root, "transcripts_*", "Env Video.md"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRun_PerReferenceFailuresExitZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "no transcript"}`))
	}))
	defer server.Close()

	root := t.TempDir()
	setBaseEnv(t, root)
	t.Setenv("TRANSCRIPT_API_KEY", "k")
	t.Setenv("TRANSCRIPT_API_URL", server.URL)

	input := filepath.Join(root, "list.txt")
	require.NoError(t, os.WriteFile(input, []byte("dQw4w9WgXcQ\nnot-a-video\n"), 0644))

	assert.Equal(t, 0, run([]string{input}, filepath.Join(root, "missing.env")))
}

func TestRun_MissingInputFails(t *testing.T) {
	root := t.TempDir()
	setBaseEnv(t, root)
	t.Setenv("TRANSCRIPT_API_KEY", "k")

	assert.Equal(t, 1, run([]string{filepath.Join(root, "nope.txt")}, filepath.Join(root, "missing.env")))
}
