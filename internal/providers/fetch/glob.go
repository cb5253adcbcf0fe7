package fetch

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob expands a pattern such as "pages/**/*.html" into sorted file paths
func Glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s: no files matched", pattern)
	}

	sort.Strings(matches)
	return matches, nil
}
