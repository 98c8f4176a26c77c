package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kbukum/asyncext/asynciter"
	"github.com/kbukum/asyncext/future"
	"github.com/kbukum/asyncext/logger"
	"github.com/kbukum/asyncext/observability"
	"github.com/kbukum/asyncext/option"
	"github.com/kbukum/asyncext/result"
	"github.com/kbukum/asyncext/task"
)

// demo drives the configured workload through every adapter and driver.
type demo struct {
	cfg     WorkloadConfig
	service string
	log     *logger.Logger
	metrics *observability.Metrics
	tracing bool
}

// report is what a demo run produced. Tests inspect it directly.
type report struct {
	Doubled    []int
	Octupled   []int
	EvenSum    int
	Visited    []string
	Some       option.Option[int]
	None       option.Option[int]
	OkResult   result.Result[int]
	ErrResult  result.Result[int]
	Parsed     *asynciter.Results[int]
	Background []int
}

func (d *demo) driverOptions(name string) []asynciter.Option {
	opts := []asynciter.Option{asynciter.WithName(name), asynciter.WithLogger(d.log)}
	if d.tracing {
		opts = append(opts, asynciter.WithTracing(d.service))
	}
	if d.metrics != nil {
		opts = append(opts, asynciter.WithMetrics(d.metrics))
	}
	return opts
}

// double is the instrumented per-element transformation.
func (d *demo) double() task.Func[int, int] {
	middlewares := []task.Middleware[int, int]{task.WithLogging[int, int](d.log, "double")}
	if d.tracing {
		middlewares = append(middlewares, task.WithTracing[int, int](d.service, "double"))
	}
	if d.metrics != nil {
		middlewares = append(middlewares, task.WithMetrics[int, int](d.metrics, d.service, "double"))
	}
	fn := task.Delayed(d.cfg.Delay, task.Pure(func(n int) int { return n * 2 }))
	return task.Chain(middlewares...)(fn)
}

func (d *demo) run(ctx context.Context) (*report, error) {
	var (
		rep report
		err error
	)
	double := d.double()

	// Collect: one transformation per element, in order.
	rep.Doubled, err = asynciter.Collect(ctx,
		asynciter.MapAsync(asynciter.FromSlice(d.cfg.Elements), double),
		d.driverOptions("doubled")...)
	if err != nil {
		return nil, err
	}
	d.log.Info("collected", logger.Fields("values", rep.Doubled))

	// Chained adapters.
	chained := asynciter.MapAsync(asynciter.MapAsync(asynciter.MapAsync(
		asynciter.FromSlice(d.cfg.Elements), double), double), double)
	rep.Octupled, err = asynciter.Collect(ctx, chained, d.driverOptions("octupled")...)
	if err != nil {
		return nil, err
	}
	d.log.Info("collected", logger.Fields("values", rep.Octupled))

	// Fold with a filter in front.
	evens := asynciter.FilterAsync(asynciter.FromSlice(d.cfg.Elements),
		task.Pure(func(n int) bool { return n%2 == 0 }))
	rep.EvenSum, err = asynciter.Fold(ctx, evens, 0, func(acc, n int) int { return acc + n },
		d.driverOptions("even_sum")...)
	if err != nil {
		return nil, err
	}

	// ForEach awaits the callback before the next element.
	err = asynciter.ForEach(ctx, asynciter.MapAsync(asynciter.FromSlice(d.cfg.Elements), double),
		func(_ context.Context, n int) error {
			rep.Visited = append(rep.Visited, fmt.Sprintf("visited %d", n))
			return nil
		}, d.driverOptions("visit")...)
	if err != nil {
		return nil, err
	}

	// Optional and fallible single values.
	if rep.Some, err = option.MapAsync(option.Some(d.cfg.Elements[0]), double).Await(ctx); err != nil {
		return nil, err
	}
	if rep.None, err = option.MapAsync(option.None[int](), double).Await(ctx); err != nil {
		return nil, err
	}
	if rep.OkResult, err = result.MapAsync(result.Ok(d.cfg.Elements[0]), double).Await(ctx); err != nil {
		return nil, err
	}
	if rep.ErrResult, err = result.MapAsync(result.Err[int](errNotANumber), double).Await(ctx); err != nil {
		return nil, err
	}
	d.log.Info("single values", logger.Fields(
		"some", rep.Some.String(), "none", rep.None.String(),
		"ok", rep.OkResult.String(), "err", rep.ErrResult.String(),
	))

	// Partition a sequence of results.
	parsed := asynciter.MapAsync(asynciter.FromSlice(d.cfg.Inputs), parse)
	if rep.Parsed, err = asynciter.ProcessResults(ctx, parsed, asynciter.StrategyPartition,
		d.driverOptions("parse")...); err != nil {
		return nil, err
	}
	d.log.Info("parsed", logger.Fields("successes", rep.Parsed.Successes, "failures", len(rep.Parsed.Errors)))

	// A drive handed to a goroutine and awaited later.
	bg := future.Go(ctx, func(ctx context.Context) ([]int, error) {
		return asynciter.Collect(ctx,
			asynciter.MapAsync(asynciter.FromSlice(d.cfg.Elements), double),
			d.driverOptions("background")...)
	})
	if rep.Background, err = bg.Await(ctx); err != nil {
		return nil, err
	}

	return &rep, nil
}

var errNotANumber = fmt.Errorf("not a number")

// parse turns a string into a Result. A bad input is data, not a failure.
func parse(_ context.Context, s string) (result.Result[int], error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return result.Err[int](fmt.Errorf("%q: %w", s, errNotANumber)), nil
	}
	return result.Ok(n), nil
}
