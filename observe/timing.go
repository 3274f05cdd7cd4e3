package observe

import (
	"context"
	"time"

	"github.com/jonwraymond/callops/call"
)

// TimingConfig configures the timing policy.
type TimingConfig struct {
	// Logger receives one record per invocation with the measured
	// duration. Default: no logging.
	Logger Logger

	// Metrics receives the measured duration as well.
	// Default: no metrics.
	Metrics Metrics

	// Now is the clock source for duration measurement.
	// Default: time.Now
	Now func() time.Time
}

// Timing measures wall-clock duration of each invocation, strictly
// around the inner call. The duration is reported on success and on
// failure; errors propagate unchanged.
type Timing struct {
	config TimingConfig
}

// NewTiming creates a new timing policy.
func NewTiming(config TimingConfig) *Timing {
	// Apply defaults
	if config.Logger == nil {
		config.Logger = &noopLogger{}
	}
	if config.Metrics == nil {
		config.Metrics = &noopMetrics{}
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &Timing{config: config}
}

// Wrap produces a Callable that reports invocation duration.
func (t *Timing) Wrap(inner call.Callable) call.Callable {
	return &timed{timing: t, inner: inner}
}

type timed struct {
	timing *Timing
	inner  call.Callable
}

func (c *timed) Meta() call.Meta {
	return c.inner.Meta()
}

func (c *timed) Invoke(ctx context.Context, args call.Args) (any, error) {
	cfg := c.timing.config
	meta := c.inner.Meta()

	start := cfg.Now()
	result, err := c.inner.Invoke(ctx, args)
	duration := cfg.Now().Sub(start)

	cfg.Metrics.RecordInvocation(ctx, meta, duration, err)

	logger := cfg.Logger.WithCall(meta)
	fields := []Field{
		{Key: "duration_ms", Value: float64(duration) / float64(time.Millisecond)},
	}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		logger.Error(ctx, "invocation timed", fields...)
	} else {
		logger.Info(ctx, "invocation timed", fields...)
	}

	return result, err
}
