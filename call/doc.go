// Package call provides the core call-wrapping mechanism.
//
// A Callable is an opaque unit of work with identity metadata. A Wrapper
// produces a new Callable around an inner one with the same external
// surface: same arguments accepted, same result and error behavior. The
// package itself performs no side effects; policies built on top of it
// (retry, memoization, rate limiting, validation, timing, logging) own
// all observable behavior.
//
// Wrappers compose with strict LIFO nesting:
//
//	wrapped := call.Chain(timing, logging, validation)(fn)
//
// runs the timing pre-hook first and its post-hook last, with validation
// closest to the actual computation. Metadata is preserved across
// wrapping at any depth, so logs and introspection keep reporting the
// original name and documentation.
package call
