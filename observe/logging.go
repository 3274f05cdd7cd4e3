package observe

import (
	"context"
	"fmt"

	"github.com/jonwraymond/callops/call"
)

// Logging emits a structured record before each invocation (callable
// name and argument representation) at a configured level, the result
// after a successful call, and the error kind and message on failure.
// Failures are re-propagated unchanged.
type Logging struct {
	logger Logger
	level  LogLevel
}

// NewLogging creates a new call-logging policy. Records for calls and
// successful results are emitted at the given level; failures are
// always emitted at error level.
func NewLogging(logger Logger, level LogLevel) *Logging {
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Logging{logger: logger, level: level}
}

// Wrap produces a Callable whose invocations are logged.
func (l *Logging) Wrap(inner call.Callable) call.Callable {
	return &logged{logging: l, inner: inner}
}

type logged struct {
	logging *Logging
	inner   call.Callable
}

func (c *logged) Meta() call.Meta {
	return c.inner.Meta()
}

func (c *logged) Invoke(ctx context.Context, args call.Args) (any, error) {
	logger := c.logging.logger.WithCall(c.inner.Meta())

	c.logging.logAt(ctx, logger, "calling", Field{Key: "args", Value: args.String()})

	result, err := c.inner.Invoke(ctx, args)
	if err != nil {
		logger.Error(ctx, "call failed",
			Field{Key: "error_kind", Value: fmt.Sprintf("%T", err)},
			Field{Key: "error", Value: err.Error()},
		)
		return nil, err
	}

	c.logging.logAt(ctx, logger, "call returned", Field{Key: "result", Value: fmt.Sprintf("%v", result)})
	return result, nil
}

func (l *Logging) logAt(ctx context.Context, logger Logger, msg string, fields ...Field) {
	switch l.level {
	case LevelDebug:
		logger.Debug(ctx, msg, fields...)
	case LevelWarn:
		logger.Warn(ctx, msg, fields...)
	case LevelError:
		logger.Error(ctx, msg, fields...)
	default:
		logger.Info(ctx, msg, fields...)
	}
}
