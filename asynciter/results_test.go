package asynciter_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kbukum/asyncext/asynciter"
	"github.com/kbukum/asyncext/result"
)

var (
	errFirst  = errors.New("first")
	errSecond = errors.New("second")
)

func mixed() []result.Result[int] {
	return []result.Result[int]{
		result.Ok(1),
		result.Err[int](errFirst),
		result.Ok(2),
		result.Err[int](errSecond),
		result.Ok(3),
	}
}

func TestProcessResults(t *testing.T) {
	tests := []struct {
		name      string
		input     []result.Result[int]
		strategy  asynciter.Strategy
		successes []int
		errs      []error
		pulls     int
	}{
		{"partition mixed", mixed(), asynciter.StrategyPartition, []int{1, 2, 3}, []error{errFirst, errSecond}, 6},
		{"partition all ok", []result.Result[int]{result.Ok(1), result.Ok(2)}, asynciter.StrategyPartition, []int{1, 2}, nil, 3},
		{"break on error", mixed(), asynciter.StrategyBreakOnError, []int{}, []error{errFirst}, 2},
		{"break without errors", []result.Result[int]{result.Ok(4)}, asynciter.StrategyBreakOnError, []int{4}, nil, 2},
		{"empty", nil, asynciter.StrategyPartition, []int{}, nil, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := track(asynciter.FromSlice(tc.input))
			res, err := asynciter.ProcessResults[int](context.Background(), src, tc.strategy)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(res.Successes, tc.successes) {
				t.Errorf("successes: expected %v, got %v", tc.successes, res.Successes)
			}
			if !slices.Equal(res.Errors, tc.errs) {
				t.Errorf("errors: expected %v, got %v", tc.errs, res.Errors)
			}
			if src.pulls != tc.pulls {
				t.Errorf("expected %d pulls, got %d", tc.pulls, src.pulls)
			}
			if src.closes != 1 {
				t.Errorf("expected source closed once, got %d", src.closes)
			}
		})
	}
}

func TestProcessResults_SequenceFailure(t *testing.T) {
	src := asynciter.FromFunc(func(context.Context) (result.Result[int], bool, error) {
		return result.Result[int]{}, false, errBoom
	})
	res, err := asynciter.ProcessResults(context.Background(), src, asynciter.StrategyPartition)
	if err != errBoom {
		t.Fatalf("expected errBoom, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil results, got %+v", res)
	}
}

func TestProcessResults_WithMapAsync(t *testing.T) {
	parse := func(_ context.Context, s string) (result.Result[int], error) {
		if s == "" {
			return result.Err[int](errFirst), nil
		}
		return result.Ok(len(s)), nil
	}
	src := asynciter.MapAsync(asynciter.FromSlice([]string{"ab", "", "abc"}), parse)
	res, err := asynciter.ProcessResults(context.Background(), src, asynciter.StrategyPartition)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(res.Successes, []int{2, 3}) || len(res.Errors) != 1 {
		t.Fatalf("unexpected results %+v", res)
	}
}

func TestResults_IntoResult(t *testing.T) {
	ok := (&asynciter.Results[int]{Successes: []int{1, 2}}).IntoResult()
	if v, isOk := ok.Value(); !isOk || !slices.Equal(v, []int{1, 2}) {
		t.Fatalf("expected Ok([1 2]), got %v", ok)
	}

	failed := &asynciter.Results[int]{Successes: []int{1}, Errors: []error{errFirst, errSecond}}
	if !failed.Failed() {
		t.Fatal("expected Failed")
	}
	if r := failed.IntoResult(); !errors.Is(r.Error(), errFirst) {
		t.Fatalf("expected Err(first), got %v", r)
	}
}

func TestStrategyString(t *testing.T) {
	if asynciter.StrategyPartition.String() != "partition" {
		t.Error("unexpected partition name")
	}
	if asynciter.StrategyBreakOnError.String() != "break_on_error" {
		t.Error("unexpected break_on_error name")
	}
}
