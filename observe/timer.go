package observe

import (
	"context"
	"sync"
	"time"
)

// Timer is a scoped timing resource. Start it, do work, and Stop it on
// every exit path:
//
//	tm := observe.StartTimer(logger, "load config")
//	defer tm.Stop(ctx)
//
// Stop reports the elapsed time exactly once; later calls are no-ops,
// so an early explicit Stop combined with a deferred one is safe.
type Timer struct {
	logger Logger
	name   string
	now    func() time.Time
	start  time.Time

	mu      sync.Mutex
	stopped bool
	elapsed time.Duration
}

// StartTimer starts a scoped timer that reports to the logger on Stop.
func StartTimer(logger Logger, name string) *Timer {
	return startTimer(logger, name, time.Now)
}

func startTimer(logger Logger, name string, now func() time.Time) *Timer {
	if logger == nil {
		logger = &noopLogger{}
	}
	t := &Timer{
		logger: logger,
		name:   name,
		now:    now,
		start:  now(),
	}
	return t
}

// Stop ends the timer and reports the elapsed time. Idempotent.
func (t *Timer) Stop(ctx context.Context) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.elapsed = t.now().Sub(t.start)
	elapsed := t.elapsed
	t.mu.Unlock()

	t.logger.Info(ctx, "timer stopped",
		Field{Key: "timer", Value: t.name},
		Field{Key: "elapsed_ms", Value: float64(elapsed) / float64(time.Millisecond)},
	)
}

// Elapsed returns the measured duration: the final value once stopped,
// the running value while active.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return t.elapsed
	}
	return t.now().Sub(t.start)
}
