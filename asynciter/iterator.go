package asynciter

import (
	"context"
	"iter"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// SizeHinter is implemented by iterators that know how many elements remain.
// upper is meaningful only when ok is true.
type SizeHinter interface {
	SizeHint() (lower, upper int, ok bool)
}

// sizeHint reports the remaining-size bounds, or (0, 0, false) if unknown.
func sizeHint(it any) (lower, upper int, ok bool) {
	if h, isHinter := it.(SizeHinter); isHinter {
		return h.SizeHint()
	}
	return 0, 0, false
}

// --- Constructors ---

// FromSlice returns an Iterator over items.
func FromSlice[T any](items []T) Iterator[T] {
	return &sliceIter[T]{items: items}
}

// FromSeq returns an Iterator over seq. The sequence is not started until the
// first call to Next; Close stops it.
func FromSeq[T any](seq iter.Seq[T]) Iterator[T] {
	return &seqIter[T]{seq: seq}
}

// FromFunc returns an Iterator that pulls values from gen until gen reports
// exhaustion or fails. gen is never called again after either.
func FromFunc[T any](gen func(ctx context.Context) (T, bool, error)) Iterator[T] {
	return &funcIter[T]{gen: gen}
}

// Empty returns an Iterator with no elements.
func Empty[T any]() Iterator[T] {
	return &sliceIter[T]{}
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) SizeHint() (int, int, bool) {
	n := len(it.items) - it.index
	return n, n, true
}

func (it *sliceIter[T]) Close() error { return nil }

type seqIter[T any] struct {
	seq  iter.Seq[T]
	next func() (T, bool)
	stop func()
}

func (it *seqIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.next == nil {
		if it.seq == nil {
			var zero T
			return zero, false, nil
		}
		it.next, it.stop = iter.Pull(it.seq)
	}
	val, ok := it.next()
	return val, ok, nil
}

func (it *seqIter[T]) Close() error {
	if it.stop != nil {
		it.stop()
	}
	it.seq = nil
	return nil
}

type funcIter[T any] struct {
	gen  func(ctx context.Context) (T, bool, error)
	done bool
	err  error
}

func (it *funcIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.err != nil {
		return zero, false, it.err
	}
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.gen(ctx)
	if err != nil {
		it.err = err
		return zero, false, err
	}
	if !ok {
		it.done = true
		return zero, false, nil
	}
	return val, true, nil
}

func (it *funcIter[T]) Close() error {
	it.done = true
	return nil
}
