package task

import (
	"context"

	"github.com/kbukum/asyncext/observability"
)

// WithTracing returns a Middleware that creates an OpenTelemetry span
// around each call. The span name is "{serviceName}.{name}".
func WithTracing[I, O any](serviceName, name string) Middleware[I, O] {
	spanName := serviceName + "." + name
	return func(inner Func[I, O]) Func[I, O] {
		return func(ctx context.Context, in I) (O, error) {
			ctx, span := observability.StartSpan(ctx, spanName)
			defer span.End()

			observability.SetSpanAttribute(ctx, observability.AttrServiceName, serviceName)
			observability.SetSpanAttribute(ctx, observability.AttrTaskName, name)

			out, err := inner(ctx, in)
			if err != nil {
				observability.SetSpanError(ctx, err)
			}
			return out, err
		}
	}
}
