// Package introspect provides read-only HTTP endpoints exposing runtime
// information and policy statistics.
//
// Stateful policies (counters, tallies, caches, rate limiters) register
// as stats Sources on a Registry; the StatsHandler serves a JSON
// snapshot of every registered source. The remaining handlers report
// service health, runtime information and the current time.
//
// All endpoints are informational: no mutation, no request bodies.
package introspect
