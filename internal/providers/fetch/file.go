package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/GriffinCanCode/relnotes/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/relnotes/internal/providers/scraper"
)

// FileFetcher reads saved pages from disk. Sources are paths or file:// URLs.
type FileFetcher struct {
	metrics *monitoring.Metrics
}

// NewFileFetcher creates a file fetcher; metrics may be nil
func NewFileFetcher(metrics *monitoring.Metrics) *FileFetcher {
	return &FileFetcher{metrics: metrics}
}

// Fetch implements Fetcher
func (f *FileFetcher) Fetch(ctx context.Context, source string) (string, error) {
	timer := monitoring.NewTimer()
	body, err := f.read(ctx, source)

	kind := ""
	var fe *FetchError
	if errors.As(err, &fe) {
		kind = fe.Kind
	}
	f.metrics.RecordFetch("file", kind, timer.Elapsed())
	return body, err
}

func (f *FileFetcher) read(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{Source: source, Kind: KindRead, Err: err}
	}

	path := strings.TrimPrefix(source, "file://")
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", &FetchError{Source: source, Kind: KindNotFound, Err: err}
	case err != nil:
		return "", &FetchError{Source: source, Kind: KindRead, Err: err}
	case info.IsDir():
		return "", &FetchError{Source: source, Kind: KindRead, Err: errors.New("is a directory")}
	case info.Size() > scraper.MaxHTMLSize:
		return "", &FetchError{Source: source, Kind: KindTooLarge, Err: fmt.Errorf("%d bytes exceeds %d", info.Size(), scraper.MaxHTMLSize)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FetchError{Source: source, Kind: KindRead, Err: err}
	}
	return string(data), nil
}
