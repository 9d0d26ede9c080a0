package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TimestampLayout names run directories, e.g. 2024-05-01_13-04-05.
const TimestampLayout = "2006-01-02_15-04-05"

// TimestampedDir returns <root>/<prefix>_<timestamp> for t.
func TimestampedDir(root, prefix string, t time.Time) string {
	return filepath.Join(root, fmt.Sprintf("%s_%s", prefix, t.Format(TimestampLayout)))
}

// EnsureDir creates dir and its parents if they are missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// Exists reports whether path exists and is a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
