package observe

import (
	"context"
	"io"
	"testing"

	"github.com/jonwraymond/callops/call"
)

func benchCallable() call.Callable {
	return call.NewFunc(call.Meta{Namespace: "bench", Name: "noop"},
		func(ctx context.Context, args call.Args) (any, error) {
			return nil, nil
		})
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "benchmark message",
			Field{Key: "duration_ms", Value: 1.5},
		)
	}
}

func BenchmarkTiming_Invoke(b *testing.B) {
	timing := NewTiming(TimingConfig{})
	wrapped := timing.Wrap(benchCallable())
	ctx := context.Background()
	args := call.Args{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = wrapped.Invoke(ctx, args)
	}
}

func BenchmarkLogging_Invoke(b *testing.B) {
	logging := NewLogging(NewLoggerWithWriter("info", io.Discard), LevelInfo)
	wrapped := logging.Wrap(benchCallable())
	ctx := context.Background()
	args := call.Positional(1, 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = wrapped.Invoke(ctx, args)
	}
}

func BenchmarkMiddleware_Invoke(b *testing.B) {
	mw := NewMiddleware(nil, nil, nil)
	wrapped := mw.Wrap(benchCallable())
	ctx := context.Background()
	args := call.Args{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = wrapped.Invoke(ctx, args)
	}
}
