package policy

import (
	"context"

	"github.com/jonwraymond/callops/call"
)

// Repeat produces a Wrapper that invokes the inner callable n times per
// invocation and returns the last result. An error from any repetition
// stops the loop and propagates unchanged. n < 1 is treated as 1.
func Repeat(n int) call.Wrapper {
	if n < 1 {
		n = 1
	}
	return func(inner call.Callable) call.Callable {
		return &repeated{times: n, inner: inner}
	}
}

type repeated struct {
	times int
	inner call.Callable
}

func (c *repeated) Meta() call.Meta {
	return c.inner.Meta()
}

func (c *repeated) Invoke(ctx context.Context, args call.Args) (any, error) {
	var result any
	var err error

	for i := 0; i < c.times; i++ {
		result, err = c.inner.Invoke(ctx, args)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}
