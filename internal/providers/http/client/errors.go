package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// StatusError reports a non-2xx response
type StatusError struct {
	Method string
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %s", e.Method, e.URL, e.Status)
}

// Temporary reports whether the server may succeed on a later attempt
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// IsSuccessful tells the breaker which outcomes say the host is healthy.
// Client errors such as 404 are the caller's problem, not the host's.
func IsSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return !se.Temporary()
	}
	return false
}
