package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampedDir(t *testing.T) {
	ts := time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC)
	assert.Equal(t, filepath.Join("out", "transcripts_2024-05-01_13-04-05"), TimestampedDir("out", "transcripts", ts))
}

func TestEnsureDirAndExists(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "a", "b")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))

	assert.False(t, Exists(dir))
	f := filepath.Join(dir, "x.txt")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0644))
	assert.True(t, Exists(f))
	assert.False(t, Exists(filepath.Join(dir, "missing")))
}
