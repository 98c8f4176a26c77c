package result

import "fmt"

// Result holds either a value (Ok) or an error (Err).
// The zero value is Ok with the zero value of T.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a successful Result holding v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err returns a failed Result holding err. A nil err yields Ok with the zero value.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Of builds a Result from the usual (value, error) pair.
func Of[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

// IsOk reports whether the Result is a success.
func (r Result[T]) IsOk() bool { return r.err == nil }

// IsErr reports whether the Result is a failure.
func (r Result[T]) IsErr() bool { return r.err != nil }

// Get returns the value and error as a pair.
func (r Result[T]) Get() (T, error) { return r.value, r.err }

// Value returns the value and whether the Result is a success.
func (r Result[T]) Value() (T, bool) {
	if r.err != nil {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Error returns the carried error, or nil for Ok.
func (r Result[T]) Error() error { return r.err }

// OrElse returns the value, or def for Err.
func (r Result[T]) OrElse(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// String implements fmt.Stringer.
func (r Result[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("Err(%v)", r.err)
	}
	return fmt.Sprintf("Ok(%v)", r.value)
}
