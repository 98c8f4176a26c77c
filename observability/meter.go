package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/asyncext/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricDriveTotal        = "asynciter.drive.total"
	MetricDriveDuration     = "asynciter.drive.duration"
	MetricDriveElements     = "asynciter.drive.elements"
	MetricDriveActive       = "asynciter.drive.active"
	MetricElementTotal      = "asynciter.element.total"
	MetricOperationTotal    = "task.operation.total"
	MetricOperationDuration = "task.operation.duration"
	MetricErrorTotal        = "task.error.total"
)

// Metrics holds OpenTelemetry metric instruments for drivers and tasks.
type Metrics struct {
	driveTotal        metric.Int64Counter
	driveDuration     metric.Float64Histogram
	driveElements     metric.Int64Histogram
	driveActive       metric.Int64UpDownCounter
	elementTotal      metric.Int64Counter
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	driveTotal, err := meter.Int64Counter(MetricDriveTotal,
		metric.WithDescription("Total number of completed sequence drives"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricDriveTotal, err)
	}

	driveDuration, err := meter.Float64Histogram(MetricDriveDuration,
		metric.WithDescription("Duration of sequence drives in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDriveDuration, err)
	}

	driveElements, err := meter.Int64Histogram(MetricDriveElements,
		metric.WithDescription("Number of elements resolved per drive"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDriveElements, err)
	}

	driveActive, err := meter.Int64UpDownCounter(MetricDriveActive,
		metric.WithDescription("Number of drives currently in progress"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricDriveActive, err)
	}

	elementTotal, err := meter.Int64Counter(MetricElementTotal,
		metric.WithDescription("Total number of elements resolved by drives"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricElementTotal, err)
	}

	operationTotal, err := meter.Int64Counter(MetricOperationTotal,
		metric.WithDescription("Total number of transformation calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricOperationTotal, err)
	}

	operationDuration, err := meter.Float64Histogram(MetricOperationDuration,
		metric.WithDescription("Duration of transformation calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricOperationDuration, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrorTotal,
		metric.WithDescription("Total transformation errors by task"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrorTotal, err)
	}

	return &Metrics{
		driveTotal:        driveTotal,
		driveDuration:     driveDuration,
		driveElements:     driveElements,
		driveActive:       driveActive,
		elementTotal:      elementTotal,
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
		errorTotal:        errorTotal,
	}, nil
}

// RecordDriveStart increments the active drive count.
func (m *Metrics) RecordDriveStart(ctx context.Context) {
	m.driveActive.Add(ctx, 1)
}

// RecordElement counts one element resolved during a drive.
func (m *Metrics) RecordElement(ctx context.Context, operation string) {
	m.elementTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordDrive decrements active drives and records a finished drive.
func (m *Metrics) RecordDrive(ctx context.Context, operation, status string, elements int, duration time.Duration) {
	opAttr := attribute.String("operation", operation)
	m.driveActive.Add(ctx, -1)
	m.driveTotal.Add(ctx, 1, metric.WithAttributes(opAttr, attribute.String("status", status)))
	m.driveDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(opAttr))
	m.driveElements.Record(ctx, int64(elements), metric.WithAttributes(opAttr))
}

// RecordOperation records a transformation call.
func (m *Metrics) RecordOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	m.operationTotal.Add(ctx, 1, attrs)
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
	))
}

// RecordError records a failed transformation call.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
