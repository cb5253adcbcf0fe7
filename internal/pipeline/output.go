package pipeline

import (
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
)

// Document returns the translated notes when present, else the parsed
// notes, else nil for a failed run
func (r *Run) Document() interface{} {
	switch {
	case r.Translation != nil:
		return r.Translation.Notes
	case r.Extraction != nil:
		return r.Extraction.Notes
	default:
		return nil
	}
}

// Write writes the run's document to dest; "-" or "" means w
func (r *Run) Write(dest string, w io.Writer) error {
	return notes.WriteFile(dest, w, r.Document())
}

// OutputPath names the batch output file for source inside dir
func OutputPath(dir, source string, compress bool) string {
	base := source
	if u, err := url.Parse(source); err == nil && u.Host != "" {
		base = path.Base(strings.TrimRight(u.Path, "/"))
		if base == "." || base == "/" || base == "" {
			base = u.Host
		}
	} else {
		base = filepath.Base(strings.TrimPrefix(source, "file://"))
	}

	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	if compress {
		base += ".gz"
	}
	return filepath.Join(dir, base)
}
