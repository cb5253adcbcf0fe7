package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/GriffinCanCode/relnotes/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/relnotes/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures a Client
type Options struct {
	Name      string // breaker and log name, e.g. "fetch" or "translate"
	Timeout   time.Duration
	UserAgent string
	Retries   int
	RetryMin  time.Duration
	RetryMax  time.Duration
	RPS       float64 // 0 means unlimited
	Burst     int
	Breaker   resilience.Settings
	Logger    *zap.Logger
	Metrics   *monitoring.Metrics
}

// DefaultOptions returns production defaults for name
func DefaultOptions(name string) Options {
	return Options{
		Name:      name,
		Timeout:   30 * time.Second,
		UserAgent: "relnotes/1.0",
		Retries:   3,
		RetryMin:  time.Second,
		RetryMax:  30 * time.Second,
		Breaker: resilience.Settings{
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts resilience.Counts) bool {
				// Trip on 5 consecutive failures OR >70% failures with 20+ requests
				return counts.ConsecutiveFailures >= 5 ||
					(counts.Requests >= 20 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.7)
			},
		},
	}
}

// Client wraps resty with retries, rate limiting and one circuit breaker
// per remote host
type Client struct {
	Resty    *resty.Client
	limiter  *rate.Limiter
	breakers *resilience.Group
	logger   *zap.Logger
	mu       sync.RWMutex
}

// New creates an HTTP client. Retries happen in the retryablehttp transport
// layer; resty only builds requests and decodes responses.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named(opts.Name)

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = opts.RetryMin
	retryClient.RetryWaitMax = opts.RetryMax
	retryClient.Logger = leveledLogger{logger}
	// hand the last response back so callers can classify the status
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient())
	restyClient.
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent)

	settings := opts.Breaker
	settings.IsSuccessful = IsSuccessful
	userHook := settings.OnStateChange
	settings.OnStateChange = func(name string, from, to resilience.State) {
		logger.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
		opts.Metrics.SetBreakerState(name, int(to))
		if userHook != nil {
			userHook(name, from, to)
		}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}

	return &Client{
		Resty:    restyClient,
		limiter:  limiter,
		breakers: resilience.NewGroup(opts.Name, settings),
		logger:   logger,
	}
}

// SetHeader adds default header
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Resty.SetHeader(key, value)
}

// SetBearerAuth configures bearer token authentication
func (c *Client) SetBearerAuth(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Resty.SetAuthToken(token)
}

// SetBaseURL sets the prefix for relative request URLs
func (c *Client) SetBaseURL(base string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Resty.SetBaseURL(base)
}

// Execute sends one request through the rate limiter and the breaker for
// the target host. build customises the request before it is sent. A
// non-2xx response is returned together with a *StatusError.
func (c *Client) Execute(ctx context.Context, method, target string, build func(*resty.Request)) (*resty.Response, error) {
	host := hostOf(target, c.Resty.BaseURL)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := resilience.Call(c.breakers.Get(host), func() (*resty.Response, error) {
		c.mu.RLock()
		req := c.Resty.R().SetContext(ctx)
		c.mu.RUnlock()
		if build != nil {
			build(req)
		}

		resp, err := req.Execute(method, target)
		if err != nil {
			return resp, err
		}
		if resp.IsError() {
			return resp, &StatusError{Method: method, URL: target, Code: resp.StatusCode(), Status: resp.Status()}
		}
		return resp, nil
	})

	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		c.logger.Debug("request rejected by circuit breaker", zap.String("host", host))
		return nil, fmt.Errorf("%s unavailable: %w", host, err)
	}
	return resp, err
}

// BreakerStates reports the breaker state per host
func (c *Client) BreakerStates() map[string]resilience.State {
	return c.breakers.States()
}

func hostOf(target, base string) string {
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		return u.Host
	}
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		return u.Host
	}
	return "default"
}
