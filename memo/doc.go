// Package memo provides deterministic memoization for callables.
//
// A Memoizer derives a canonical key from an invocation's arguments
// (positional order preserved, keyword names sorted) and stores the
// result of the first computation; repeat invocations with the same key
// return the stored result without invoking the inner callable.
//
// Entries are never evicted: the reference behavior is an unbounded
// cache, and that limitation is carried over deliberately. Failed
// computations are not cached; the next identical invocation
// re-attempts. Concurrent invocations for the same key are collapsed
// into a single computation.
package memo
