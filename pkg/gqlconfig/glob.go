package gqlconfig

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveDocuments expands every pattern in patterns, relative to
// baseDir (the config file's directory), into a deduplicated list of
// file paths, in pattern order with each path kept at its first match.
// Patterns support `**` and brace alternation
// (`{a,b}`), both handled by doublestar.
func ResolveDocuments(baseDir string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	for _, pattern := range patterns {
		full := pattern
		if !filepath.IsAbs(pattern) {
			full = filepath.Join(baseDir, pattern)
		}
		// doublestar matches against slash-separated paths regardless of
		// OS; filepath.Join above already normalizes separators for the
		// base, so glob against that joined form directly.
		matches, err := doublestar.FilepathGlob(full)
		if err != nil {
			return nil, fmt.Errorf("gqlconfig: invalid glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}

	return out, nil
}
