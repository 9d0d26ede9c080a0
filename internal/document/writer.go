package document

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MimeLyc/transcript-downloader/internal/failure"
)

// FileWriter writes documents as UTF-8 files.
type FileWriter struct{}

// NewWriter creates a new document file writer
func NewWriter() Writer {
	return &FileWriter{}
}

// Write creates dir if needed and writes doc to <dir>/<stem>.md, replacing
// any existing file. Failures are reported as failure.IOError.
func (w *FileWriter) Write(dir string, doc Document) (Written, error) {
	if doc.Stem == "" {
		return Written{}, failure.New(failure.IOError, "document has no filename")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return Written{}, failure.Wrap(err, failure.IOError, "failed to create output directory").
			WithContext("dir", dir)
	}

	path := filepath.Join(dir, doc.Filename())
	file, err := os.Create(path)
	if err != nil {
		return Written{}, failure.Wrap(err, failure.IOError, "failed to create output file").
			WithContext("path", path)
	}

	writer := bufio.NewWriter(file)
	n, err := writer.WriteString(doc.Content)
	if err == nil {
		err = writer.Flush()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return Written{}, failure.Wrap(err, failure.IOError, fmt.Sprintf("failed to write %s", doc.Filename())).
			WithContext("path", path)
	}

	return Written{Path: path, Bytes: n}, nil
}
