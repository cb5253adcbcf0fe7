package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRemote = errors.New("remote failed")

// fakeClock advances only when told to
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func tripAfter(n uint32) func(Counts) bool {
	return func(c Counts) bool { return c.ConsecutiveFailures >= n }
}

func fail(b *Breaker, n int) {
	for i := 0; i < n; i++ {
		_ = b.Do(func() error { return errRemote })
	}
}

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		settings      Settings
		requests      []bool // true = success, false = failure
		expectedState State
	}{
		{
			name:          "stays closed on successes",
			settings:      Settings{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute},
			requests:      []bool{true, true, true},
			expectedState: StateClosed,
		},
		{
			name:          "opens after consecutive failures",
			settings:      Settings{ReadyToTrip: tripAfter(3)},
			requests:      []bool{false, false, false},
			expectedState: StateOpen,
		},
		{
			name:          "success resets the failure streak",
			settings:      Settings{ReadyToTrip: tripAfter(3)},
			requests:      []bool{false, false, true, false, false},
			expectedState: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaker := New("test", tt.settings)

			for _, success := range tt.requests {
				_ = breaker.Do(func() error {
					if success {
						return nil
					}
					return errRemote
				})
			}

			assert.Equal(t, tt.expectedState, breaker.State())
		})
	}
}

func TestBreakerCounts(t *testing.T) {
	breaker := New("test", Settings{})

	require.NoError(t, breaker.Do(func() error { return nil }))

	counts := breaker.Counts()
	assert.Equal(t, uint32(1), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalSuccesses)
	assert.Equal(t, uint32(1), counts.ConsecutiveSuccesses)
	assert.Equal(t, uint32(0), counts.TotalFailures)

	assert.ErrorIs(t, breaker.Do(func() error { return errRemote }), errRemote)

	counts = breaker.Counts()
	assert.Equal(t, uint32(2), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalFailures)
	assert.Equal(t, uint32(1), counts.ConsecutiveFailures)
	assert.Equal(t, uint32(0), counts.ConsecutiveSuccesses)
}

func TestBreakerOpenRejects(t *testing.T) {
	breaker := New("test", Settings{ReadyToTrip: tripAfter(2)})
	fail(breaker, 2)
	require.Equal(t, StateOpen, breaker.State())

	called := false
	err := breaker.Do(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	clock := newFakeClock()
	breaker := New("test", Settings{
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: tripAfter(2),
		Clock:       clock.Now,
	})

	fail(breaker, 2)
	assert.Equal(t, StateOpen, breaker.State())

	clock.Advance(31 * time.Second)
	assert.Equal(t, StateHalfOpen, breaker.State())

	for i := 0; i < 2; i++ {
		require.NoError(t, breaker.Do(func() error { return nil }))
	}
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	clock := newFakeClock()
	breaker := New("test", Settings{
		Timeout:     time.Second,
		ReadyToTrip: tripAfter(1),
		Clock:       clock.Now,
	})

	fail(breaker, 1)
	clock.Advance(2 * time.Second)
	require.Equal(t, StateHalfOpen, breaker.State())

	fail(breaker, 1)
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreakerHalfOpenLimitsTrials(t *testing.T) {
	clock := newFakeClock()
	breaker := New("test", Settings{
		MaxRequests: 1,
		Timeout:     time.Second,
		ReadyToTrip: tripAfter(1),
		Clock:       clock.Now,
	})

	fail(breaker, 1)
	clock.Advance(2 * time.Second)

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- breaker.Do(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	assert.ErrorIs(t, breaker.Do(func() error { return nil }), ErrTooManyRequests)
	close(release)
	assert.NoError(t, <-done)
}

func TestBreakerIntervalClearsCounts(t *testing.T) {
	clock := newFakeClock()
	breaker := New("test", Settings{
		Interval:    time.Minute,
		ReadyToTrip: tripAfter(3),
		Clock:       clock.Now,
	})

	fail(breaker, 2)
	clock.Advance(2 * time.Minute)
	fail(breaker, 2)

	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, uint32(2), breaker.Counts().ConsecutiveFailures)
}

func TestBreakerIsSuccessful(t *testing.T) {
	errNotFound := errors.New("not found")
	breaker := New("test", Settings{
		ReadyToTrip: tripAfter(1),
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errNotFound)
		},
	})

	assert.ErrorIs(t, breaker.Do(func() error { return errNotFound }), errNotFound)
	assert.Equal(t, StateClosed, breaker.State())

	_ = breaker.Do(func() error { return context.Canceled })
	assert.Equal(t, StateOpen, breaker.State(), "custom classifier replaces the default")
}

func TestDefaultIsSuccessful(t *testing.T) {
	assert.True(t, DefaultIsSuccessful(nil))
	assert.True(t, DefaultIsSuccessful(context.Canceled))
	assert.False(t, DefaultIsSuccessful(context.DeadlineExceeded))
	assert.False(t, DefaultIsSuccessful(errRemote))
}

func TestCallReturnsValue(t *testing.T) {
	breaker := New("test", Settings{})

	n, err := Call(breaker, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	s, err := Call(breaker, func() (string, error) { return "", errRemote })
	assert.ErrorIs(t, err, errRemote)
	assert.Empty(t, s)
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	breaker := New("test", Settings{ReadyToTrip: tripAfter(1)})

	assert.Panics(t, func() {
		_ = breaker.Do(func() error { panic("boom") })
	})
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreakerCallbacks(t *testing.T) {
	clock := newFakeClock()
	var transitions []string

	breaker := New("fetch", Settings{
		Timeout:     time.Second,
		ReadyToTrip: tripAfter(2),
		Clock:       clock.Now,
		OnStateChange: func(name string, from State, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})

	fail(breaker, 2)
	clock.Advance(2 * time.Second)
	require.NoError(t, breaker.Do(func() error { return nil }))

	assert.Equal(t, []string{
		"fetch:closed->open",
		"fetch:open->half-open",
		"fetch:half-open->closed",
	}, transitions)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestGroup(t *testing.T) {
	g := NewGroup("fetch", Settings{ReadyToTrip: tripAfter(1)})

	a := g.Get("a.example.com")
	assert.Same(t, a, g.Get("a.example.com"))
	assert.Equal(t, "fetch:a.example.com", a.Name())

	fail(a, 1)
	b := g.Get("b.example.com")
	assert.NoError(t, b.Do(func() error { return nil }))

	assert.Equal(t, map[string]State{
		"a.example.com": StateOpen,
		"b.example.com": StateClosed,
	}, g.States())
}
