package fs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bulkrename/internal/rename"
)

// IgnoreFileName is read from the target directory, if present, and its
// patterns are added to the configured ones.
const IgnoreFileName = ".bulkrenameignore"

// defaultIgnorePatterns are always applied regardless of config or ignore file.
var defaultIgnorePatterns = []string{IgnoreFileName}

type ignorePattern struct {
	glob    string
	dirOnly bool
}

// IgnoreMatcher leaves listing names out of a run. Patterns are
// filepath.Match globs over the name. A pattern ending in "/" matches
// directories only, mirroring the "/" the listing puts after directory names.
type IgnoreMatcher struct {
	patterns []ignorePattern
}

// NewIgnoreMatcher creates an IgnoreMatcher from raw pattern strings plus the
// default patterns. Blank lines, '#' comments and malformed globs are skipped.
func NewIgnoreMatcher(rawPatterns []string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	for _, raw := range append(append([]string{}, defaultIgnorePatterns...), rawPatterns...) {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		glob := strings.TrimSuffix(raw, "/")
		if glob == "" {
			continue
		}
		if _, err := filepath.Match(glob, ""); err != nil {
			continue
		}
		m.patterns = append(m.patterns, ignorePattern{glob: glob, dirOnly: glob != raw})
	}
	return m
}

// Len returns the number of usable patterns, defaults included.
func (m *IgnoreMatcher) Len() int {
	return len(m.patterns)
}

// Match reports whether a listing name ("a.txt", "build/") is ignored.
func (m *IgnoreMatcher) Match(name string) bool {
	isDir := strings.HasSuffix(name, "/")
	base := strings.TrimSuffix(name, "/")

	for _, p := range m.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if ok, _ := filepath.Match(p.glob, base); ok {
			return true
		}
	}
	return false
}

// ParseIgnoreFile reads an ignore file and returns its lines unfiltered.
// Returns nil and no error if the file does not exist.
func ParseIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return lines, nil
}

var _ rename.NameFilter = (*IgnoreMatcher)(nil)
