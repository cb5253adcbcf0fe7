package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/GriffinCanCode/relnotes/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/relnotes/internal/providers/http/client"
	"github.com/GriffinCanCode/relnotes/internal/providers/scraper"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
)

// HTTPFetcher downloads pages over HTTP
type HTTPFetcher struct {
	client  *client.Client
	metrics *monitoring.Metrics
}

// NewHTTPFetcher creates a fetcher on c; metrics may be nil
func NewHTTPFetcher(c *client.Client, metrics *monitoring.Metrics) *HTTPFetcher {
	return &HTTPFetcher{client: c, metrics: metrics}
}

// Fetch downloads url and checks that the body is text
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	timer := monitoring.NewTimer()
	body, err := f.fetch(ctx, url)

	kind := ""
	var fe *FetchError
	if errors.As(err, &fe) {
		kind = fe.Kind
	}
	f.metrics.RecordFetch("http", kind, timer.Elapsed())
	return body, err
}

func (f *HTTPFetcher) fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.client.Execute(ctx, http.MethodGet, url, func(r *resty.Request) {
		r.SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")
	})
	if err != nil {
		var se *client.StatusError
		if errors.As(err, &se) {
			return "", &FetchError{Source: url, Kind: KindStatus, Err: err}
		}
		return "", &FetchError{Source: url, Kind: KindRequest, Err: err}
	}

	data := resp.Body()
	if len(data) > scraper.MaxHTMLSize {
		return "", &FetchError{Source: url, Kind: KindTooLarge, Err: fmt.Errorf("%d bytes exceeds %d", len(data), scraper.MaxHTMLSize)}
	}
	if err := checkText(data); err != nil {
		return "", &FetchError{Source: url, Kind: KindContentType, Err: err}
	}
	return string(data), nil
}

// checkText rejects bodies that sniff as binary
func checkText(data []byte) error {
	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") || m.Is("text/html") {
			return nil
		}
	}
	return fmt.Errorf("expected html, got %s", detected.String())
}
