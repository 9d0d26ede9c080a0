package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/transcript-downloader/internal/failure"
)

func TestFileWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	doc := Document{Stem: "Test Video", Content: "# Test Video\n", VideoID: "dQw4w9WgXcQ"}

	written, err := NewWriter().Write(dir, doc)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Test Video.md"), written.Path)
	assert.Equal(t, len(doc.Content), written.Bytes)

	data, err := os.ReadFile(written.Path)
	require.NoError(t, err)
	assert.Equal(t, doc.Content, string(data))
}

func TestFileWriter_Overwrites(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter()

	_, err := w.Write(dir, Document{Stem: "a", Content: "first version"})
	require.NoError(t, err)
	written, err := w.Write(dir, Document{Stem: "a", Content: "second"})
	require.NoError(t, err)

	data, err := os.ReadFile(written.Path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFileWriter_Failures(t *testing.T) {
	// a regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewWriter().Write(filepath.Join(blocker, "out"), Document{Stem: "a", Content: "x"})
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.IOError))

	_, err = NewWriter().Write(t.TempDir(), Document{Content: "x"})
	assert.True(t, failure.IsKind(err, failure.IOError))
}
