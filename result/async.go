package result

import (
	"context"

	"github.com/kbukum/asyncext/future"
)

// MapAsync returns a future that, for Ok(v), awaits f(v) and resolves to Ok of
// the result. For Err it resolves immediately to a Result carrying the same
// error and f is never called. f runs at most once.
func MapAsync[T, U any](r Result[T], f func(context.Context, T) (U, error)) future.Future[Result[U]] {
	if r.IsErr() {
		return future.Ready(Err[U](r.err))
	}
	v := r.value
	return future.Lazy(func(ctx context.Context) (Result[U], error) {
		out, err := f(ctx, v)
		if err != nil {
			return Result[U]{}, err
		}
		return Ok(out), nil
	})
}

// AndThenAsync is MapAsync for transformations that decide success or failure
// themselves. Their Result is returned as is.
func AndThenAsync[T, U any](r Result[T], f func(context.Context, T) (Result[U], error)) future.Future[Result[U]] {
	if r.IsErr() {
		return future.Ready(Err[U](r.err))
	}
	v := r.value
	return future.Lazy(func(ctx context.Context) (Result[U], error) {
		return f(ctx, v)
	})
}

// MapErrAsync replaces the error of an Err using f. Ok passes through and f
// is not called. The value f returns becomes the new carried error; a nil
// value keeps the original error so the Result stays an Err.
func MapErrAsync[T any](r Result[T], f func(context.Context, error) (error, error)) future.Future[Result[T]] {
	if r.IsOk() {
		return future.Ready(r)
	}
	e := r.err
	return future.Lazy(func(ctx context.Context) (Result[T], error) {
		mapped, err := f(ctx, e)
		if err != nil {
			return Result[T]{}, err
		}
		if mapped == nil {
			mapped = e
		}
		return Err[T](mapped), nil
	})
}

// OrElseAsync runs the fallback f for an Err and returns its Result.
// Ok passes through and f is not called.
func OrElseAsync[T any](r Result[T], f func(context.Context, error) (Result[T], error)) future.Future[Result[T]] {
	if r.IsOk() {
		return future.Ready(r)
	}
	e := r.err
	return future.Lazy(func(ctx context.Context) (Result[T], error) {
		return f(ctx, e)
	})
}

// IsOkAndAsync resolves to false for Err, otherwise to the result of pred.
func IsOkAndAsync[T any](r Result[T], pred func(context.Context, T) (bool, error)) future.Future[bool] {
	if r.IsErr() {
		return future.Ready(false)
	}
	v := r.value
	return future.Lazy(func(ctx context.Context) (bool, error) {
		return pred(ctx, v)
	})
}
