// Package scan lists the candidate directories under the configured base
// path. The listing is one level deep: each child directory is one
// candidate, dotted names are skipped, and files are ignored.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one candidate directory.
type Entry struct {
	Name    string
	Path    string
	ModTime time.Time
}

// Entries reads basePath and returns its child directories. A missing base
// path yields an empty slice so a fresh install starts with an empty list.
func Entries(basePath string) ([]Entry, error) {
	dirents, err := os.ReadDir(basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", basePath, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		name := d.Name()
		if name == "" || name[0] == '.' {
			continue
		}
		info, err := d.Info()
		if err != nil {
			// Raced with a delete; the entry is gone, move on.
			continue
		}
		entries = append(entries, Entry{
			Name:    name,
			Path:    filepath.Join(basePath, name),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

// Touch updates the access and modification times of path so recency
// scoring reflects the latest selection.
func Touch(path string) error {
	now := time.Now()
	return os.Chtimes(path, now, now)
}
