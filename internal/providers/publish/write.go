package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	s = strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if len(s) > 60 {
		s = strings.TrimRight(s[:60], "-")
	}
	if s == "" {
		return "comment"
	}
	return s
}

// WriteMarkdown writes one file per comment into dir, numbered in thread
// order, and returns the paths written
func WriteMarkdown(dir string, t Thread) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	paths := make([]string, 0, len(t.Comments))
	for i, c := range t.Comments {
		path := filepath.Join(dir, fmt.Sprintf("%03d-%s.md", i+1, slug(c.Title)))
		if err := os.WriteFile(path, []byte(c.Body+"\n"), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
