package asynciter

import (
	"context"
	"iter"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/asyncext/errors"
	"github.com/kbukum/asyncext/logger"
	"github.com/kbukum/asyncext/observability"
	"github.com/kbukum/asyncext/util"
)

// State is the lifecycle stage of a Driver.
type State int32

const (
	// StateIdle means the driver has not started.
	StateIdle State = iota
	// StateAwaitingElement means the driver is waiting on the next element.
	StateAwaitingElement
	// StateAwaitingCallback means the driver is waiting on a per-element callback.
	StateAwaitingCallback
	// StateDone means the sequence was exhausted.
	StateDone
	// StateFailed means an element or callback failed, or the context ended.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingElement:
		return "awaiting_element"
	case StateAwaitingCallback:
		return "awaiting_callback"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Option configures a Driver.
type Option func(*options)

type options struct {
	name    string
	log     *logger.Logger
	service string
	tracing bool
	metrics *observability.Metrics
}

// WithName sets the operation name used in logs, spans and metrics.
// Defaults to the driver method ("collect", "for_each", ...).
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger. Defaults to logger.Get("asynciter").
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracing wraps each drive in an OpenTelemetry span tagged with serviceName.
func WithTracing(serviceName string) Option {
	return func(o *options) {
		o.tracing = true
		o.service = serviceName
	}
}

// WithMetrics records drive and element metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Driver exhausts an Iterator exactly once.
// A Driver is not safe for concurrent drives; State may be read from any goroutine.
type Driver[T any] struct {
	it    Iterator[T]
	opts  options
	state atomic.Int32
	ran   atomic.Bool
}

// NewDriver returns a Driver for it. Nothing is pulled until a drive method runs.
func NewDriver[T any](it Iterator[T], opts ...Option) *Driver[T] {
	d := &Driver[T]{it: it}
	for _, opt := range opts {
		opt(&d.opts)
	}
	if d.opts.log == nil {
		d.opts.log = logger.Get("asynciter")
	}
	return d
}

// State returns the current lifecycle stage.
func (d *Driver[T]) State() State { return State(d.state.Load()) }

func (d *Driver[T]) setState(s State) { d.state.Store(int32(s)) }

// Collect gathers every element into a slice, in order. An exhausted empty
// sequence yields an empty, non-nil slice. On failure the gathered elements
// are discarded and the error is returned unchanged.
func (d *Driver[T]) Collect(ctx context.Context) ([]T, error) {
	lower, _, _ := sizeHint(d.it)
	out := make([]T, 0, max(lower, 0))
	err := d.run(ctx, "collect", false, func(_ context.Context, v T) (bool, error) {
		out = append(out, v)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ForEach awaits g for each element before requesting the next one.
// The first error from the sequence or from g stops the drive.
func (d *Driver[T]) ForEach(ctx context.Context, g func(ctx context.Context, v T) error) error {
	return d.run(ctx, "for_each", true, func(ctx context.Context, v T) (bool, error) {
		return true, g(ctx, v)
	})
}

// run pulls elements one at a time and hands each to visit. visit returning
// false ends the drive successfully without pulling further elements.
func (d *Driver[T]) run(ctx context.Context, op string, callback bool, visit func(context.Context, T) (bool, error)) (err error) {
	operation := util.Coalesce(d.opts.name, op)
	if !d.ran.CompareAndSwap(false, true) {
		return errors.AlreadyDriven(operation)
	}

	runID := uuid.NewString()
	start := time.Now()
	elements := 0

	var span trace.Span
	if d.opts.tracing {
		ctx, span = observability.StartSpan(ctx, observability.SpanDrive)
		defer span.End()
		observability.SetSpanAttribute(ctx, observability.AttrServiceName, d.opts.service)
		observability.SetSpanAttribute(ctx, observability.AttrOperationName, operation)
		observability.SetSpanAttribute(ctx, observability.AttrRunID, runID)
	}
	if d.opts.metrics != nil {
		d.opts.metrics.RecordDriveStart(ctx)
	}

	log := d.opts.log.WithContext(ctx)
	if log.DebugEnabled() {
		log.Debug("drive started", map[string]interface{}{
			logger.FieldRunID:     runID,
			logger.FieldOperation: operation,
		})
	}

	defer func() {
		if cerr := d.it.Close(); cerr != nil {
			log.Warn("iterator close failed", map[string]interface{}{
				logger.FieldRunID: runID,
				logger.FieldError: cerr.Error(),
			})
		}
		d.finish(ctx, log, runID, operation, elements, time.Since(start), err)
	}()

	for {
		if err = ctx.Err(); err != nil {
			return err
		}
		d.setState(StateAwaitingElement)
		v, ok, nextErr := d.it.Next(ctx)
		if nextErr != nil {
			return nextErr
		}
		if !ok {
			return nil
		}
		elements++
		if d.opts.metrics != nil {
			d.opts.metrics.RecordElement(ctx, operation)
		}
		if callback {
			d.setState(StateAwaitingCallback)
		}
		more, visitErr := visit(ctx, v)
		if visitErr != nil {
			return visitErr
		}
		if !more {
			return nil
		}
	}
}

func (d *Driver[T]) finish(ctx context.Context, log *logger.Logger, runID, operation string, elements int, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		d.setState(StateFailed)
	} else {
		d.setState(StateDone)
	}

	if d.opts.tracing {
		observability.SetSpanAttribute(ctx, observability.AttrElements, elements)
		observability.SetSpanAttribute(ctx, observability.AttrStatus, status)
		if err != nil {
			observability.SetSpanError(ctx, err)
		}
	}
	if d.opts.metrics != nil {
		d.opts.metrics.RecordDrive(ctx, operation, status, elements, duration)
	}

	fields := map[string]interface{}{
		logger.FieldRunID:     runID,
		logger.FieldOperation: operation,
		logger.FieldElements:  elements,
		logger.FieldDuration:  duration.Milliseconds(),
	}
	switch {
	case err != nil:
		fields[logger.FieldError] = err.Error()
		log.Error("drive failed", fields)
	case log.DebugEnabled():
		log.Debug("drive finished", fields)
	}
}

// --- Package-level drivers ---

// Collect drives it to completion and returns its elements as a slice.
// See Driver.Collect.
func Collect[T any](ctx context.Context, it Iterator[T], opts ...Option) ([]T, error) {
	return NewDriver(it, opts...).Collect(ctx)
}

// Fold drives it to completion, combining each element into an accumulator
// that starts as init. On failure the accumulator is discarded and the zero C
// is returned with the error.
func Fold[T, C any](ctx context.Context, it Iterator[T], init C, add func(C, T) C, opts ...Option) (C, error) {
	acc := init
	err := NewDriver(it, opts...).run(ctx, "fold", false, func(_ context.Context, v T) (bool, error) {
		acc = add(acc, v)
		return true, nil
	})
	if err != nil {
		var zero C
		return zero, err
	}
	return acc, nil
}

// Resolve drives it to completion and returns the elements as a synchronous
// sequence, ready for further non-blocking processing.
func Resolve[T any](ctx context.Context, it Iterator[T], opts ...Option) (iter.Seq[T], error) {
	items, err := Collect(ctx, it, append([]Option{WithName("resolve")}, opts...)...)
	if err != nil {
		return nil, err
	}
	return slices.Values(items), nil
}

// ForEach drives it, awaiting g for each element in order.
// See Driver.ForEach.
func ForEach[T any](ctx context.Context, it Iterator[T], g func(ctx context.Context, v T) error, opts ...Option) error {
	return NewDriver(it, opts...).ForEach(ctx, g)
}
