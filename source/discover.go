package source

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover expands glob patterns into a sorted, de-duplicated list of source
// file paths. Patterns support ** via doublestar.
func Discover(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
