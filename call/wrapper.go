package call

import "context"

// Wrapper produces a new Callable around an inner one. The returned
// Callable must keep the inner callable's external surface: identical
// argument handling, identical result/error behavior apart from the
// behavior the wrapper itself adds.
type Wrapper func(Callable) Callable

// Hook runs before the inner call.
type Hook func(ctx context.Context, meta Meta, args Args)

// PostHook runs after the inner call with its outcome.
type PostHook func(ctx context.Context, meta Meta, args Args, result any, err error)

// hooked is the Callable produced by WithHooks. Meta delegates to the
// inner callable so metadata survives wrapping at any depth.
type hooked struct {
	inner Callable
	pre   Hook
	post  PostHook
}

func (h *hooked) Meta() Meta {
	return h.inner.Meta()
}

func (h *hooked) Invoke(ctx context.Context, args Args) (any, error) {
	if h.pre != nil {
		h.pre(ctx, h.inner.Meta(), args)
	}

	result, err := h.inner.Invoke(ctx, args)

	if h.post != nil {
		h.post(ctx, h.inner.Meta(), args, result, err)
	}

	return result, err
}

// WithHooks creates a Wrapper that runs pre before and post after the
// inner call. Arguments, result and error are forwarded unchanged; side
// effects are confined to the hooks. Either hook may be nil.
func WithHooks(pre Hook, post PostHook) Wrapper {
	return func(inner Callable) Callable {
		if inner == nil {
			return nilCallable{}
		}
		return &hooked{inner: inner, pre: pre, post: post}
	}
}

// Chain composes wrappers with strict LIFO nesting: the first wrapper
// is outermost (its pre-call logic runs first, its post-call logic runs
// last) and the last wrapper is closest to the actual computation.
//
//	Chain(a, b, c)(fn) == a(b(c(fn)))
//
// Chain with no wrappers returns the callable unchanged.
func Chain(wrappers ...Wrapper) Wrapper {
	return func(inner Callable) Callable {
		if inner == nil {
			return nilCallable{}
		}

		wrapped := inner
		for i := len(wrappers) - 1; i >= 0; i-- {
			if wrappers[i] == nil {
				continue
			}
			wrapped = wrappers[i](wrapped)
		}
		return wrapped
	}
}

// Wrap applies wrappers to a callable in Chain order.
func Wrap(c Callable, wrappers ...Wrapper) Callable {
	return Chain(wrappers...)(c)
}

// When applies the wrapper only if cond is true; otherwise the callable
// passes through unchanged.
func When(cond bool, w Wrapper) Wrapper {
	return func(inner Callable) Callable {
		if inner == nil {
			return nilCallable{}
		}
		if !cond || w == nil {
			return inner
		}
		return w(inner)
	}
}

// nilCallable is returned when a nil callable is wrapped. Every
// invocation fails with ErrNilCallable instead of panicking deep inside
// a wrapper chain.
type nilCallable struct{}

func (nilCallable) Meta() Meta {
	return Meta{}
}

func (nilCallable) Invoke(context.Context, Args) (any, error) {
	return nil, ErrNilCallable
}
