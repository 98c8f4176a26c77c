package task

import (
	"context"
	"time"

	"github.com/kbukum/asyncext/logger"
)

// WithLogging returns a Middleware that logs each call of the transformation.
// Successful calls are logged at debug, failures at error level.
func WithLogging[I, O any](log *logger.Logger, name string) Middleware[I, O] {
	return func(inner Func[I, O]) Func[I, O] {
		return func(ctx context.Context, in I) (O, error) {
			start := time.Now()
			out, err := inner(ctx, in)
			duration := time.Since(start)

			fields := map[string]interface{}{
				logger.FieldTask:     name,
				logger.FieldDuration: duration.Milliseconds(),
			}

			l := log.WithContext(ctx)
			if err != nil {
				fields[logger.FieldError] = err.Error()
				l.Error("task failed", fields)
			} else if l.DebugEnabled() {
				l.Debug("task ok", fields)
			}

			return out, err
		}
	}
}
