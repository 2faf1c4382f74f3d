package sheetfile

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob returns the sorted, de-duplicated names in fsys matching any of the
// patterns. Patterns prefixed with "!" exclude matches.
func Glob(fsys fs.FS, patterns ...string) ([]string, error) {
	var includes, excludes []string
	for _, pattern := range patterns {
		if exclude, ok := strings.CutPrefix(pattern, "!"); ok {
			if !doublestar.ValidatePattern(exclude) {
				return nil, fmt.Errorf("invalid exclude pattern %q", exclude)
			}
			excludes = append(excludes, exclude)
			continue
		}
		includes = append(includes, pattern)
	}

	// part 1: gather candidates
	seen := make(map[string]bool)
	var names []string
	for _, pattern := range includes {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			// doublestar.Glob returns an error only if the pattern is
			// invalid or the filesystem fails.
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, name := range matches {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	// part 2: filter candidates
	if len(excludes) > 0 {
		filtered := names[:0]
	loop:
		for _, name := range names {
			for _, exclude := range excludes {
				if ok, _ := doublestar.Match(exclude, name); ok {
					continue loop
				}
			}
			filtered = append(filtered, name)
		}
		names = filtered
	}

	sort.Strings(names)
	return names, nil
}

// LoadGlob loads every file of fsys matching the patterns, in lexical order,
// and returns their names.
func (l *Loader) LoadGlob(fsys fs.FS, patterns ...string) ([]string, error) {
	names, err := Glob(fsys, patterns...)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if err := l.loadFS(fsys, name); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func (l *Loader) loadFS(fsys fs.FS, name string) error {
	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return l.LoadFile(name, f)
}
