package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GriffinCanCode/relnotes/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := DefaultOptions("test")
	opts.Timeout = 2 * time.Second
	opts.RetryMin = time.Millisecond
	opts.RetryMax = 5 * time.Millisecond
	return opts
}

func TestExecuteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "relnotes/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := New(testOptions())
	resp, err := c.Execute(context.Background(), http.MethodGet, srv.URL, func(r *resty.Request) {
		r.SetHeader("X-Test", "yes")
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.String())
}

func TestExecuteRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c := New(testOptions())
	resp, err := c.Execute(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.String())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestExecuteStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(testOptions())
	resp, err := c.Execute(context.Background(), http.MethodGet, srv.URL+"/missing", nil)
	require.Error(t, err)
	require.NotNil(t, resp)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.False(t, se.Temporary())
	assert.Contains(t, err.Error(), "GET")
}

func TestBreakerOpensPerHost(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer healthy.Close()

	opts := testOptions()
	opts.Retries = 0
	opts.Breaker.ReadyToTrip = func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 2 }
	c := New(opts)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := c.Execute(ctx, http.MethodGet, failing.URL, nil)
		require.Error(t, err)
	}

	_, err := c.Execute(ctx, http.MethodGet, failing.URL, nil)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)

	resp, err := c.Execute(ctx, http.MethodGet, healthy.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.String())

	states := c.BreakerStates()
	assert.Len(t, states, 2)
}

func TestNotFoundDoesNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	opts := testOptions()
	opts.Breaker.ReadyToTrip = func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 1 }
	c := New(opts)

	for i := 0; i < 3; i++ {
		_, err := c.Execute(context.Background(), http.MethodGet, srv.URL, nil)
		var se *StatusError
		require.True(t, errors.As(err, &se))
	}
	for _, state := range c.BreakerStates() {
		assert.Equal(t, resilience.StateClosed, state)
	}
}

func TestRateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	opts := testOptions()
	opts.RPS = 0.01
	opts.Burst = 1
	c := New(opts)

	_, err := c.Execute(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Execute(ctx, http.MethodGet, srv.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestIsSuccessful(t *testing.T) {
	assert.True(t, IsSuccessful(nil))
	assert.True(t, IsSuccessful(context.Canceled))
	assert.True(t, IsSuccessful(&StatusError{Code: 404}))
	assert.False(t, IsSuccessful(&StatusError{Code: 503}))
	assert.False(t, IsSuccessful(&StatusError{Code: 429}))
	assert.False(t, IsSuccessful(errors.New("connection refused")))
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "example.com:8080", hostOf("http://example.com:8080/x", ""))
	assert.Equal(t, "api.example.com", hostOf("/chat/completions", "https://api.example.com/v1"))
	assert.Equal(t, "default", hostOf("/x", ""))
}
