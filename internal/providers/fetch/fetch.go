package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Failure kinds carried by FetchError
const (
	KindRequest     = "request"
	KindStatus      = "status"
	KindContentType = "content_type"
	KindTooLarge    = "too_large"
	KindNotFound    = "not_found"
	KindRead        = "read"
)

// Fetcher retrieves the HTML of one page
type Fetcher interface {
	Fetch(ctx context.Context, source string) (string, error)
}

// FetchError means a page could not be retrieved. It is fatal for the
// run that needed the page.
type FetchError struct {
	Source string
	Kind   string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err is or wraps a FetchError
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsRemote reports whether source is an http(s) URL
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Router sends http(s) sources to Remote and everything else to Local
type Router struct {
	Remote Fetcher
	Local  Fetcher
}

// Fetch implements Fetcher
func (r *Router) Fetch(ctx context.Context, source string) (string, error) {
	if IsRemote(source) {
		if r.Remote == nil {
			return "", &FetchError{Source: source, Kind: KindRequest, Err: errors.New("remote fetching disabled")}
		}
		return r.Remote.Fetch(ctx, source)
	}
	return r.Local.Fetch(ctx, source)
}
