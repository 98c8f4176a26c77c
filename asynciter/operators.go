package asynciter

import (
	"context"
	stderrors "errors"

	"github.com/kbukum/asyncext/task"
)

// MapAsync returns an Iterator whose i-th element is fn applied to the i-th
// element of source. Building it does no work. Each Next pulls exactly one
// source element and awaits fn on it before returning.
//
// Once source is exhausted every further Next reports exhaustion. Once a pull
// or a call of fn fails, every further Next returns that same error. If ctx is
// already done, Next returns its error without pulling or calling fn.
func MapAsync[I, O any](source Iterator[I], fn task.Func[I, O]) Iterator[O] {
	return &mapIter[I, O]{source: source, fn: fn}
}

// FilterAsync returns an Iterator over the elements of source for which pred
// resolves to true, in source order.
func FilterAsync[T any](source Iterator[T], pred task.Func[T, bool]) Iterator[T] {
	return &filterIter[T]{source: source, pred: pred}
}

// TapAsync awaits fn for each element as a side effect, then passes the
// element through unchanged. An error from fn stops the sequence.
func TapAsync[T any](source Iterator[T], fn func(ctx context.Context, v T) error) Iterator[T] {
	return &tapIter[T]{source: source, fn: fn}
}

// Concat joins iterators sequentially.
// All values from the first iterator are yielded before the second, etc.
func Concat[T any](iters ...Iterator[T]) Iterator[T] {
	return &concatIter[T]{iters: iters}
}

// terminal records whether an adapter has reached the end of its sequence or
// failed. Both conditions are permanent.
type terminal struct {
	done bool
	err  error
}

// check reports whether Next may proceed. When it may not, err is the error
// Next should return (nil for a finished sequence).
func (t *terminal) check(ctx context.Context) (proceed bool, err error) {
	if t.err != nil {
		return false, t.err
	}
	if t.done {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return true, nil
}

// settle records the outcome of a source pull. It returns false when the
// caller must stop and return err.
func (t *terminal) settle(ok bool, err error) bool {
	if err != nil {
		t.err = err
		return false
	}
	if !ok {
		t.done = true
		return false
	}
	return true
}

// --- Iterator implementations ---

type mapIter[I, O any] struct {
	terminal
	source Iterator[I]
	fn     task.Func[I, O]
}

func (it *mapIter[I, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
	if proceed, err := it.check(ctx); !proceed {
		return zero, false, err
	}
	val, ok, err := it.source.Next(ctx)
	if !it.settle(ok, err) {
		return zero, false, err
	}
	out, err := it.fn(ctx, val)
	if err != nil {
		it.err = err
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[I, O]) SizeHint() (int, int, bool) { return sizeHint(it.source) }

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	terminal
	source Iterator[T]
	pred   task.Func[T, bool]
}

func (it *filterIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		if proceed, err := it.check(ctx); !proceed {
			return zero, false, err
		}
		val, ok, err := it.source.Next(ctx)
		if !it.settle(ok, err) {
			return zero, false, err
		}
		keep, err := it.pred(ctx, val)
		if err != nil {
			it.err = err
			return zero, false, err
		}
		if keep {
			return val, true, nil
		}
	}
}

// SizeHint keeps the upper bound only; any element may be dropped.
func (it *filterIter[T]) SizeHint() (int, int, bool) {
	_, upper, ok := sizeHint(it.source)
	return 0, upper, ok
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type tapIter[T any] struct {
	terminal
	source Iterator[T]
	fn     func(context.Context, T) error
}

func (it *tapIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if proceed, err := it.check(ctx); !proceed {
		return zero, false, err
	}
	val, ok, err := it.source.Next(ctx)
	if !it.settle(ok, err) {
		return zero, false, err
	}
	if err := it.fn(ctx, val); err != nil {
		it.err = err
		return zero, false, err
	}
	return val, true, nil
}

func (it *tapIter[T]) SizeHint() (int, int, bool) { return sizeHint(it.source) }

func (it *tapIter[T]) Close() error { return it.source.Close() }

type concatIter[T any] struct {
	terminal
	iters []Iterator[T]
	index int
}

func (it *concatIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		if proceed, err := it.check(ctx); !proceed {
			return zero, false, err
		}
		if it.index >= len(it.iters) {
			it.done = true
			return zero, false, nil
		}
		val, ok, err := it.iters[it.index].Next(ctx)
		if err != nil {
			it.err = err
			return zero, false, err
		}
		if ok {
			return val, true, nil
		}
		it.index++
	}
}

func (it *concatIter[T]) SizeHint() (int, int, bool) {
	var lower, upper int
	for _, sub := range it.iters[it.index:] {
		l, u, ok := sizeHint(sub)
		if !ok {
			return 0, 0, false
		}
		lower += l
		upper += u
	}
	return lower, upper, true
}

func (it *concatIter[T]) Close() error {
	var errs []error
	for _, sub := range it.iters {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
