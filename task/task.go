package task

import (
	"context"
	"time"
)

// Func is a transformation from I to O that may block until ctx is done.
type Func[I, O any] func(ctx context.Context, in I) (O, error)

// Middleware transforms a Func by wrapping it.
// The returned Func typically delegates to the original while adding
// cross-cutting behavior (logging, metrics, tracing).
type Middleware[I, O any] func(Func[I, O]) Func[I, O]

// Chain composes multiple middlewares into one. Middlewares are applied
// in order: the first middleware is outermost (executes first on the
// way in, last on the way out).
//
// Chain(a, b, c)(fn) is equivalent to a(b(c(fn))).
func Chain[I, O any](middlewares ...Middleware[I, O]) Middleware[I, O] {
	return func(inner Func[I, O]) Func[I, O] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// Pure lifts a non-blocking function into a Func.
func Pure[I, O any](fn func(I) O) Func[I, O] {
	return func(_ context.Context, in I) (O, error) {
		return fn(in), nil
	}
}

// Delayed returns a Func that waits d before calling fn. If ctx is done
// while waiting, fn is not called and the context error is returned.
func Delayed[I, O any](d time.Duration, fn Func[I, O]) Func[I, O] {
	return func(ctx context.Context, in I) (O, error) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return fn(ctx, in)
		case <-ctx.Done():
			var zero O
			return zero, ctx.Err()
		}
	}
}
