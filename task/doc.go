// Package task defines the per-element transformation type used by asynciter
// adapters, and middleware that instruments transformations with logging,
// tracing and metrics.
//
// A transformation is a blocking call that takes a context:
//
//	double := task.Func[int, int](func(ctx context.Context, n int) (int, error) {
//		return n * 2, nil
//	})
//
// Middleware wraps a transformation without changing what it returns:
//
//	traced := task.Chain(
//		task.WithLogging[int, int](log, "double"),
//		task.WithTracing[int, int]("demo", "double"),
//	)(double)
package task
