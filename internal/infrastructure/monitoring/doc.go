/*
Package monitoring provides Prometheus metrics for relnotes.

Every collector lives on a private registry, so tests and embedded use
never collide with the global default registry.

# Metrics

- HTTP requests by route and status (API server)
- Parse runs by outcome, parse duration, features per page
- Candidates found per extraction strategy
- Fetch duration and errors by source
- Translation results and latency
- Circuit breaker state

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer()
	// ... parse a page ...
	metrics.RecordParse(monitoring.OutcomeOK, timer.Elapsed(), n, candidates)
*/
package monitoring
