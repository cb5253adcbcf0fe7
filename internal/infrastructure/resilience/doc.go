/*
Package resilience provides the circuit breaker that guards page fetches
and translation calls.

# Usage

	breakers := resilience.NewGroup("fetch", resilience.Settings{
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 5 },
		IsSuccessful: client.IsSuccessful,
	})

	body, err := resilience.Call(breakers.Get(host), func() (string, error) {
		return download(ctx, url)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open

While open, calls fail fast with ErrCircuitOpen. Half-open admits
MaxRequests trial calls; more concurrent calls get ErrTooManyRequests.
*/
package resilience
