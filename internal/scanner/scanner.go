// Package scanner lists the executable files directly inside a directory.
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"quick-launch/internal/logger"
)

const component = "Scanner"

// Entry is a path that referenced an executable regular file when it was scanned.
type Entry struct {
	Path string
}

// Name is the label shown for the entry: the file name without its
// extension, or the whole file name when stripping would leave nothing.
func (e Entry) Name() string {
	base := filepath.Base(e.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

type Scanner struct {
	logger logger.Logger
}

func New(log logger.Logger) *Scanner {
	if log == nil {
		log = logger.Nop()
	}
	return &Scanner{logger: log}
}

// Scan returns the immediate children of dir that are regular files with an
// execute permission. Results follow directory iteration order. Failures are
// logged and never returned: an unreadable directory yields no entries and an
// unreadable child is skipped.
func (s *Scanner) Scan(dir string) []Entry {
	return s.ScanContext(context.Background(), dir)
}

// ScanContext is Scan that stops early, returning what it has collected, once
// ctx is done.
func (s *Scanner) ScanContext(ctx context.Context, dir string) []Entry {
	d, err := os.Open(dir)
	if err != nil {
		s.logger.Warning(component, "directory unavailable", map[string]interface{}{
			"dir":   dir,
			"error": err.Error(),
		})
		return []Entry{}
	}
	defer d.Close()

	names, err := d.Readdirnames(-1)
	if err != nil {
		s.logger.Warning(component, "directory listing failed", map[string]interface{}{
			"dir":   dir,
			"error": err.Error(),
		})
		return []Entry{}
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}

		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			s.logger.Debug(component, "skipping entry without metadata", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		if !info.Mode().IsRegular() || !isExecutable(info) {
			continue
		}
		entries = append(entries, Entry{Path: path})
	}

	s.logger.Debug(component, "scan complete", map[string]interface{}{
		"dir":     dir,
		"entries": len(entries),
	})
	return entries
}
