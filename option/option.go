package option

import (
	"context"
	"fmt"

	"github.com/kbukum/asyncext/future"
	"github.com/kbukum/asyncext/util"
)

// Option holds either a value (Some) or nothing (None).
// The zero value is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr returns Some(*p), or None when p is nil.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// IsSome reports whether the Option holds a value.
func (o Option[T]) IsSome() bool { return o.ok }

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool { return !o.ok }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// OrElse returns the value, or def when the Option is empty.
func (o Option[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when empty.
func (o Option[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	return util.Ptr(o.value)
}

// String implements fmt.Stringer.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// ─── Async adapters ──────────────────────────────────────────────────────────

// MapAsync returns a future that, for Some(v), awaits f(v) and resolves to
// Some of the result. For None it resolves immediately to None and f is never
// called. f runs at most once however many times the future is awaited. An
// error returned by f is the future's error, unchanged.
func MapAsync[T, U any](o Option[T], f func(context.Context, T) (U, error)) future.Future[Option[U]] {
	v, ok := o.Get()
	if !ok {
		return future.Ready(None[U]())
	}
	return future.Lazy(func(ctx context.Context) (Option[U], error) {
		out, err := f(ctx, v)
		if err != nil {
			return None[U](), err
		}
		return Some(out), nil
	})
}

// AndThenAsync is MapAsync for transformations that may themselves produce
// None. The result of f is returned as is, without extra wrapping.
func AndThenAsync[T, U any](o Option[T], f func(context.Context, T) (Option[U], error)) future.Future[Option[U]] {
	v, ok := o.Get()
	if !ok {
		return future.Ready(None[U]())
	}
	return future.Lazy(func(ctx context.Context) (Option[U], error) {
		return f(ctx, v)
	})
}

// IsSomeAndAsync resolves to false for None, otherwise to the result of pred.
func IsSomeAndAsync[T any](o Option[T], pred func(context.Context, T) (bool, error)) future.Future[bool] {
	v, ok := o.Get()
	if !ok {
		return future.Ready(false)
	}
	return future.Lazy(func(ctx context.Context) (bool, error) {
		return pred(ctx, v)
	})
}

// IsNoneOrAsync resolves to true for None, otherwise to the result of pred.
func IsNoneOrAsync[T any](o Option[T], pred func(context.Context, T) (bool, error)) future.Future[bool] {
	v, ok := o.Get()
	if !ok {
		return future.Ready(true)
	}
	return future.Lazy(func(ctx context.Context) (bool, error) {
		return pred(ctx, v)
	})
}
