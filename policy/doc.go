// Package policy provides cross-cutting call policies built on the
// wrapping core in package call.
//
// Each policy is created from a config struct with sensible defaults and
// exposes a Wrap method that produces a new Callable around an inner
// one. Policies can be used independently or stacked:
//
//	r := policy.NewRetry(policy.RetryConfig{MaxAttempts: 3})
//	rl := policy.NewRateLimiter(policy.RateLimitConfig{
//	    MaxCalls: 3,
//	    Window:   10 * time.Second,
//	})
//
//	wrapped := call.Chain(rl.Wrap, r.Wrap)(fn)
//
// Wrapping order follows call.Chain semantics: the first wrapper listed
// is outermost. In the example above the rate limiter admits or rejects
// the call before any retry attempt is made.
//
// # Policies
//
//   - Retry: retries failed invocations with configurable backoff
//     (exponential, linear, constant) and wraps the final error in
//     RetryExhaustedError when attempts run out.
//
//   - RateLimiter: sliding-window admission — at most MaxCalls
//     invocations within any trailing Window.
//
//   - CircuitBreaker: stops invoking a failing callable after a
//     failure threshold, probing for recovery after a reset timeout.
//
//   - Bulkhead: limits concurrent invocations.
//
//   - Timeout: bounds invocation duration.
//
//   - Repeat, Counter, Tally: invocation multiplicity, call counting
//     and running duration statistics.
package policy
