package scanner

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/frherrer/fragmentgen/internal/domain"
)

// Scanner discovers spec documents below a set of directories.
type Scanner interface {
	Scan(rootDir string, patterns []string, excludes []string) ([]string, error)
}

// FileScanner implements Scanner using filepath.WalkDir.
type FileScanner struct {
	Recursive bool
}

// NewScanner creates a new FileScanner.
func NewScanner(recursive bool) *FileScanner {
	return &FileScanner{Recursive: recursive}
}

// Scan walks rootDir and returns the sorted paths of files matching any of
// the include patterns and none of the exclude patterns. Patterns are matched
// against the slash-separated path relative to rootDir.
func (s *FileScanner) Scan(rootDir string, patterns []string, excludes []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(rootDir, p)
		if relErr != nil {
			rel = p
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if !s.Recursive || matchAny(rel, excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if matchAny(rel, excludes) {
			return nil
		}
		if matchAny(rel, patterns) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewErrorWithSuggestion("scan", rootDir, 0,
			"failed to scan directory",
			"check input.directories in the config file", err)
	}

	sort.Strings(files)
	return files, nil
}

// ScanAll scans every directory in order and concatenates the results.
// A file reachable from more than one directory is reported once, at its
// first position. Directories that do not exist are skipped and returned in
// missing; any other scan failure aborts.
func ScanAll(s Scanner, dirs, patterns, excludes []string) (files []string, missing []string, err error) {
	seen := make(map[string]bool)
	for _, dir := range dirs {
		found, err := s.Scan(dir, patterns, excludes)
		if errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, dir)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		for _, f := range found {
			key := filepath.Clean(f)
			if seen[key] {
				continue
			}
			seen[key] = true
			files = append(files, f)
		}
	}
	return files, missing, nil
}

func matchAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(rel, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated relative path against a glob pattern.
// "**" matches any number of path elements. A pattern without a slash is
// also tried against the base name.
func matchGlob(rel, pattern string) bool {
	if before, after, ok := strings.Cut(pattern, "**"); ok {
		prefix := strings.TrimSuffix(before, "/")
		suffix := strings.TrimPrefix(after, "/")
		if prefix != "" {
			if rel != prefix && !strings.HasPrefix(rel, prefix+"/") {
				return false
			}
			rel = strings.TrimPrefix(strings.TrimPrefix(rel, prefix), "/")
		}
		if suffix == "" {
			return true
		}
		parts := strings.Split(rel, "/")
		for i := range parts {
			if ok, _ := path.Match(suffix, strings.Join(parts[i:], "/")); ok {
				return true
			}
		}
		return false
	}

	if ok, _ := path.Match(pattern, rel); ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, _ := path.Match(pattern, path.Base(rel))
		return ok
	}
	return false
}
