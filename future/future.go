package future

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/kbukum/asyncext/errors"
)

// Future is a computation that eventually resolves to a T or fails.
type Future[T any] interface {
	// Await blocks until the value is available or ctx is done.
	Await(ctx context.Context) (T, error)
}

// ─── Resolved ────────────────────────────────────────────────────────────────

type resolved[T any] struct {
	value T
	err   error
}

func (r resolved[T]) Await(context.Context) (T, error) { return r.value, r.err }

// Ready returns a Future that is already resolved to v.
func Ready[T any](v T) Future[T] {
	return resolved[T]{value: v}
}

// Failed returns a Future that is already resolved to err.
func Failed[T any](err error) Future[T] {
	return resolved[T]{err: err}
}

// ─── Func ────────────────────────────────────────────────────────────────────

// Func adapts a blocking function to the Future interface.
// Every call to Await invokes the function again.
type Func[T any] func(ctx context.Context) (T, error)

// Await calls f with ctx.
func (f Func[T]) Await(ctx context.Context) (T, error) { return f(ctx) }

// ─── Lazy ────────────────────────────────────────────────────────────────────

type lazy[T any] struct {
	mu      sync.Mutex
	fn      func(context.Context) (T, error)
	started bool
	done    chan struct{}
	res     resolved[T]
}

// Lazy returns a Future that invokes fn at most once, on the first Await whose
// context is still live. The outcome, value or error, is cached and returned
// to every later caller. An Await with an already-cancelled context returns
// the context error without consuming the single invocation. While fn runs,
// other callers wait for it bounded by their own contexts.
func Lazy[T any](fn func(ctx context.Context) (T, error)) Future[T] {
	return &lazy[T]{fn: fn, done: make(chan struct{})}
}

func (l *lazy[T]) Await(ctx context.Context) (T, error) {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return l.wait(ctx)
	}
	if err := ctx.Err(); err != nil {
		l.mu.Unlock()
		var zero T
		return zero, err
	}
	l.started = true
	fn := l.fn
	l.fn = nil
	l.mu.Unlock()
	return l.run(ctx, fn)
}

// run invokes fn in the caller's goroutine. A panic resolves the waiters
// with an errors.ErrCodePanic error and is then re-raised to the caller.
func (l *lazy[T]) run(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	defer func() {
		if r := recover(); r != nil {
			l.res = resolved[T]{err: errors.Panic(r, debug.Stack())}
			close(l.done)
			panic(r)
		}
	}()
	v, err := fn(ctx)
	l.res = resolved[T]{value: v, err: err}
	close(l.done)
	return v, err
}

func (l *lazy[T]) wait(ctx context.Context) (T, error) {
	select {
	case <-l.done:
		return l.res.value, l.res.err
	default:
	}
	select {
	case <-l.done:
		return l.res.value, l.res.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// ─── Go ──────────────────────────────────────────────────────────────────────

// Promise is a Future whose computation runs in its own goroutine.
type Promise[T any] struct {
	done chan struct{}
	res  resolved[T]
}

// Go starts fn in a goroutine immediately and returns a Promise for its
// result. The goroutine receives ctx; cancelling it is how the caller asks fn
// to stop. A panic inside fn resolves the Promise with an errors.ErrCodePanic
// error instead of crashing the process.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Promise[T] {
	p := &Promise[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				p.res = resolved[T]{value: zero, err: errors.Panic(r, debug.Stack())}
			}
		}()
		v, err := fn(ctx)
		p.res = resolved[T]{value: v, err: err}
	}()
	return p
}

// Done returns a channel that is closed once the computation has finished.
func (p *Promise[T]) Done() <-chan struct{} { return p.done }

// Await blocks until the computation finishes or ctx is done.
// Safe to call multiple times and from multiple goroutines.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.res.value, p.res.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// ─── Composition ─────────────────────────────────────────────────────────────

// Then returns a Future that awaits f and passes its value to fn.
// A failure of f is returned unchanged and fn is not called.
// Nothing runs until the returned Future is awaited.
func Then[T, U any](f Future[T], fn func(ctx context.Context, v T) (U, error)) Future[U] {
	return Func[U](func(ctx context.Context) (U, error) {
		v, err := f.Await(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(ctx, v)
	})
}
