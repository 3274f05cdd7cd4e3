package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/callops/call"
)

// Middleware wraps callable invocation with full observability
// (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe Callable.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the inner callable are recorded and
//     propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = &noopMetrics{}
	}
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NewMetrics creates a Metrics implementation backed by the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	return newMetrics(meter)
}

// Wrap produces a Callable instrumented with a span, metrics and an
// outcome log record per invocation.
func (m *Middleware) Wrap(inner call.Callable) call.Callable {
	return &observed{middleware: m, inner: inner}
}

type observed struct {
	middleware *Middleware
	inner      call.Callable
}

func (c *observed) Meta() call.Meta {
	return c.inner.Meta()
}

func (c *observed) Invoke(ctx context.Context, args call.Args) (any, error) {
	m := c.middleware
	meta := c.inner.Meta()

	// Start span
	ctx, span := m.tracer.StartSpan(ctx, meta)

	start := time.Now()
	result, err := c.inner.Invoke(ctx, args)
	duration := time.Since(start)

	// End span (records error status if err != nil)
	m.tracer.EndSpan(span, err)

	// Record metrics
	m.metrics.RecordInvocation(ctx, meta, duration, err)

	// Log the invocation
	logger := m.logger.WithCall(meta)
	fields := []Field{
		{Key: "duration_ms", Value: float64(duration) / float64(time.Millisecond)},
	}

	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		logger.Error(ctx, "invocation failed", fields...)
	} else {
		logger.Info(ctx, "invocation completed", fields...)
	}

	return result, err
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}
