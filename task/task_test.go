package task_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/asyncext/logger"
	"github.com/kbukum/asyncext/observability"
	"github.com/kbukum/asyncext/task"
)

var errBoom = errors.New("boom")

func double(_ context.Context, n int) (int, error) { return n * 2, nil }

func failing(_ context.Context, _ int) (int, error) { return 0, errBoom }

// --- Chain tests ---

func TestChain_Empty(t *testing.T) {
	wrapped := task.Chain[int, int]()(double)
	got, err := wrapped(context.Background(), 3)
	if err != nil || got != 6 {
		t.Fatalf("expected 6, got %d, err %v", got, err)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string

	mw := func(tag string) task.Middleware[int, int] {
		return func(inner task.Func[int, int]) task.Func[int, int] {
			return func(ctx context.Context, n int) (int, error) {
				order = append(order, tag+":before")
				out, err := inner(ctx, n)
				order = append(order, tag+":after")
				return out, err
			}
		}
	}

	wrapped := task.Chain(mw("A"), mw("B"), mw("C"))(double)
	if _, err := wrapped(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	want := []string{"A:before", "B:before", "C:before", "C:after", "B:after", "A:after"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, order)
	}
}

// --- Pure / Delayed ---

func TestPure(t *testing.T) {
	f := task.Pure(func(s string) int { return len(s) })
	got, err := f(context.Background(), "four")
	if err != nil || got != 4 {
		t.Fatalf("expected 4, got %d, err %v", got, err)
	}
}

func TestDelayed(t *testing.T) {
	f := task.Delayed(5*time.Millisecond, double)
	start := time.Now()
	got, err := f(context.Background(), 21)
	if err != nil || got != 42 {
		t.Fatalf("expected 42, got %d, err %v", got, err)
	}
	if time.Since(start) < 5*time.Millisecond {
		t.Error("expected Delayed to wait before calling fn")
	}
}

func TestDelayed_Cancelled(t *testing.T) {
	called := false
	f := task.Delayed(time.Hour, func(ctx context.Context, n int) (int, error) {
		called = true
		return n, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("fn must not be called after cancellation")
	}
}

// --- Logging ---

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)

	wrapped := task.WithLogging[int, int](log, "double")(double)
	got, err := wrapped(context.Background(), 2)
	if err != nil || got != 4 {
		t.Fatalf("expected 4, got %d, err %v", got, err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "debug" || entry[logger.FieldTask] != "double" {
		t.Errorf("unexpected log entry: %v", entry)
	}
	if _, ok := entry[logger.FieldDuration]; !ok {
		t.Errorf("expected %s field, got %v", logger.FieldDuration, entry)
	}
}

func TestWithLogging_Error(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "test", &buf)

	wrapped := task.WithLogging[int, int](log, "failing")(failing)
	_, err := wrapped(context.Background(), 1)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom unchanged, got %v", err)
	}
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("expected error to be logged, got %q", buf.String())
	}
}

func TestWithLogging_InfoLevelSkipsSuccess(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "test", &buf)

	wrapped := task.WithLogging[int, int](log, "double")(double)
	if _, err := wrapped(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}

// --- Tracing ---

func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func TestWithTracing(t *testing.T) {
	sr := useRecorder(t)

	wrapped := task.WithTracing[int, int]("demo", "double")(double)
	got, err := wrapped(context.Background(), 5)
	if err != nil || got != 10 {
		t.Fatalf("expected 10, got %d, err %v", got, err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "demo.double" {
		t.Errorf("expected span 'demo.double', got %q", spans[0].Name())
	}
	if spans[0].Status().Code == codes.Error {
		t.Error("expected span without error status")
	}
}

func TestWithTracing_Error(t *testing.T) {
	sr := useRecorder(t)

	wrapped := task.WithTracing[int, int]("demo", "failing")(failing)
	_, err := wrapped(context.Background(), 5)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom unchanged, got %v", err)
	}
	if sr.Ended()[0].Status().Code != codes.Error {
		t.Error("expected span error status")
	}
}

// --- Metrics ---

func TestWithMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	ok := task.WithMetrics[int, int](metrics, "demo", "double")(double)
	bad := task.WithMetrics[int, int](metrics, "demo", "failing")(failing)

	ctx := context.Background()
	if _, err := ok(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := bad(ctx, 1); !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom unchanged, got %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatal(err)
	}

	var calls, errs int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, isSum := m.Data.(metricdata.Sum[int64])
			if !isSum {
				continue
			}
			for _, dp := range sum.DataPoints {
				switch m.Name {
				case observability.MetricOperationTotal:
					calls += dp.Value
				case observability.MetricErrorTotal:
					errs += dp.Value
				}
			}
		}
	}
	if calls != 2 {
		t.Errorf("expected 2 calls recorded, got %d", calls)
	}
	if errs != 1 {
		t.Errorf("expected 1 error recorded, got %d", errs)
	}
}
