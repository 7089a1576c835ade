// Package fixture resolves a caller-supplied prefix to the unique fixture
// file it identifies within the fixture directory.
package fixture

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Error types for fixture resolution
var (
	ErrEmptyPrefix     = fmt.Errorf("fixture prefix must not be empty")
	ErrNoMatch         = fmt.Errorf("no fixture matches prefix")
	ErrAmbiguousPrefix = fmt.Errorf("prefix matches multiple fixtures")
)

// Matches returns the names of all files in dir whose name starts with
// prefix, sorted so results are stable across runs. Directory entries that
// are themselves directories are skipped.
func Matches(dir, prefix string) ([]string, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixture directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

// Resolve returns the single filename in dir identified by prefix. The
// prefix must match exactly one file: zero matches yield ErrNoMatch and two
// or more yield ErrAmbiguousPrefix naming the colliding files, rather than
// silently picking whichever entry the filesystem listed first.
func Resolve(dir, prefix string) (string, error) {
	names, err := Matches(dir, prefix)
	if err != nil {
		return "", err
	}

	switch len(names) {
	case 0:
		return "", fmt.Errorf("%w %q in %s", ErrNoMatch, prefix, dir)
	case 1:
		return names[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %s", ErrAmbiguousPrefix, prefix, strings.Join(names, ", "))
	}
}
