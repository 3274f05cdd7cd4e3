// Package observe provides observability policies for callables.
//
// It is a pure instrumentation library: timing and logging wrappers, a
// structured JSON logger, a scoped timer, and OpenTelemetry
// tracing/metrics plumbing. No wrapper here alters a call's outcome —
// durations are reported and records emitted on both success and
// failure, and the inner error always propagates unchanged.
package observe
