package call

import (
	"context"
	"errors"
	"testing"
)

func newTestCallable(name string, calls *int) Callable {
	return NewFunc(Meta{Name: name, Doc: "test callable"}, func(ctx context.Context, args Args) (any, error) {
		*calls++
		return "ok", nil
	})
}

func TestWithHooks_Order(t *testing.T) {
	var events []string
	calls := 0

	wrapped := WithHooks(
		func(ctx context.Context, meta Meta, args Args) {
			events = append(events, "pre")
		},
		func(ctx context.Context, meta Meta, args Args, result any, err error) {
			events = append(events, "post")
		},
	)(NewFunc(Meta{Name: "work"}, func(ctx context.Context, args Args) (any, error) {
		calls++
		events = append(events, "call")
		return nil, nil
	}))

	if _, err := wrapped.Invoke(context.Background(), Args{}); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	want := []string{"pre", "call", "post"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestWithHooks_PreservesMetadata(t *testing.T) {
	calls := 0
	inner := newTestCallable("compute", &calls)

	wrapped := WithHooks(nil, nil)(inner)
	wrapped = WithHooks(nil, nil)(wrapped) // wrap twice

	if wrapped.Meta().Name != "compute" {
		t.Errorf("Meta().Name = %q, want %q", wrapped.Meta().Name, "compute")
	}
	if wrapped.Meta().Doc != "test callable" {
		t.Errorf("Meta().Doc = %q, want %q", wrapped.Meta().Doc, "test callable")
	}
}

func TestWithHooks_ForwardsErrorUnchanged(t *testing.T) {
	testErr := errors.New("inner failure")
	var observed error

	wrapped := WithHooks(nil, func(ctx context.Context, meta Meta, args Args, result any, err error) {
		observed = err
	})(NewFunc(Meta{Name: "fail"}, func(ctx context.Context, args Args) (any, error) {
		return nil, testErr
	}))

	_, err := wrapped.Invoke(context.Background(), Args{})
	if err != testErr {
		t.Errorf("Invoke() error = %v, want %v", err, testErr)
	}
	if observed != testErr {
		t.Errorf("post hook observed %v, want %v", observed, testErr)
	}
}

func TestChain_LIFONesting(t *testing.T) {
	var events []string

	tag := func(name string) Wrapper {
		return WithHooks(
			func(ctx context.Context, meta Meta, args Args) {
				events = append(events, name+".pre")
			},
			func(ctx context.Context, meta Meta, args Args, result any, err error) {
				events = append(events, name+".post")
			},
		)
	}

	calls := 0
	wrapped := Chain(tag("outer"), tag("middle"), tag("inner"))(newTestCallable("work", &calls))

	if _, err := wrapped.Invoke(context.Background(), Args{}); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	want := []string{"outer.pre", "middle.pre", "inner.pre", "inner.post", "middle.post", "outer.post"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestChain_Empty(t *testing.T) {
	calls := 0
	inner := newTestCallable("work", &calls)

	wrapped := Chain()(inner)
	if wrapped != inner {
		t.Error("Chain() should return the callable unchanged")
	}
}

func TestChain_SkipsNilWrappers(t *testing.T) {
	calls := 0
	wrapped := Chain(nil, WithHooks(nil, nil), nil)(newTestCallable("work", &calls))

	if _, err := wrapped.Invoke(context.Background(), Args{}); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWhen(t *testing.T) {
	calls := 0
	pres := 0
	w := WithHooks(func(ctx context.Context, meta Meta, args Args) { pres++ }, nil)

	enabled := When(true, w)(newTestCallable("a", &calls))
	disabled := When(false, w)(newTestCallable("b", &calls))

	_, _ = enabled.Invoke(context.Background(), Args{})
	_, _ = disabled.Invoke(context.Background(), Args{})

	if pres != 1 {
		t.Errorf("pre hook ran %d times, want 1", pres)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestWrapNil(t *testing.T) {
	wrapped := Wrap(nil, WithHooks(nil, nil))

	_, err := wrapped.Invoke(context.Background(), Args{})
	if !errors.Is(err, ErrNilCallable) {
		t.Errorf("Invoke() error = %v, want ErrNilCallable", err)
	}
}
