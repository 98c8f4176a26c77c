package task

import (
	"context"
	"time"

	"github.com/kbukum/asyncext/observability"
)

// WithMetrics returns a Middleware that records call count, duration and
// errors using the observability.Metrics instruments.
func WithMetrics[I, O any](metrics *observability.Metrics, serviceName, name string) Middleware[I, O] {
	return func(inner Func[I, O]) Func[I, O] {
		return func(ctx context.Context, in I) (O, error) {
			start := time.Now()
			out, err := inner(ctx, in)
			duration := time.Since(start)

			status := "ok"
			if err != nil {
				status = "error"
				metrics.RecordError(ctx, "task", name)
			}
			metrics.RecordOperation(ctx, serviceName, name, status, duration)

			return out, err
		}
	}
}
