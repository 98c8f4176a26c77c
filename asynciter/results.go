package asynciter

import (
	"context"

	"github.com/kbukum/asyncext/result"
)

// Strategy decides how ProcessResults treats failed elements.
type Strategy int

const (
	// StrategyPartition drives the whole sequence, keeping successes and
	// failures apart.
	StrategyPartition Strategy = iota
	// StrategyBreakOnError stops pulling at the first failed element.
	// Successes seen before it are dropped.
	StrategyBreakOnError
)

func (s Strategy) String() string {
	switch s {
	case StrategyPartition:
		return "partition"
	case StrategyBreakOnError:
		return "break_on_error"
	default:
		return "unknown"
	}
}

// Results holds the outcome of ProcessResults.
type Results[T any] struct {
	Successes []T
	Errors    []error
}

// Failed reports whether any element failed.
func (r *Results[T]) Failed() bool { return len(r.Errors) > 0 }

// IntoResult returns Ok with the successes, or Err with the first failure.
func (r *Results[T]) IntoResult() result.Result[[]T] {
	if r.Failed() {
		return result.Err[[]T](r.Errors[0])
	}
	return result.Ok(r.Successes)
}

// ProcessResults drives a sequence of results and sorts its elements by
// outcome according to strategy.
//
// A failed element is data, not a drive failure: it lands in Results.Errors.
// The returned error is reserved for failures of the sequence itself, such
// as a failed pull or a cancelled context, in which case Results is nil.
func ProcessResults[T any](ctx context.Context, it Iterator[result.Result[T]], strategy Strategy, opts ...Option) (*Results[T], error) {
	res := &Results[T]{Successes: []T{}}
	d := NewDriver(it, append([]Option{WithName("process_results")}, opts...)...)
	err := d.run(ctx, "process_results", false, func(_ context.Context, r result.Result[T]) (bool, error) {
		v, rerr := r.Get()
		if rerr == nil {
			res.Successes = append(res.Successes, v)
			return true, nil
		}
		if strategy == StrategyBreakOnError {
			res.Successes = []T{}
			res.Errors = []error{rerr}
			return false, nil
		}
		res.Errors = append(res.Errors, rerr)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
