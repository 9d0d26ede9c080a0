package service

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/MimeLyc/transcript-downloader/internal/failure"
)

// ParseReferences returns the usable lines of r in order. Lines are trimmed;
// blank lines and lines starting with '#' are skipped.
func ParseReferences(r io.Reader) ([]string, error) {
	var refs []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		refs = append(refs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// ReadReferences loads the reference list at path. A missing or unreadable
// file, or one without usable lines, is a failure.Input error.
func ReadReferences(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, failure.Wrap(err, failure.Input, "file '"+path+"' not found")
		}
		return nil, failure.Wrap(err, failure.Input, "failed to open reference file").WithContext("path", path)
	}
	defer f.Close()

	refs, err := ParseReferences(f)
	if err != nil {
		return nil, failure.Wrap(err, failure.Input, "failed to read reference file").WithContext("path", path)
	}
	if len(refs) == 0 {
		return nil, failure.New(failure.Input, "no valid links found in '"+path+"'")
	}

	return refs, nil
}
