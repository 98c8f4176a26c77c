package main

import (
	"time"

	"github.com/kbukum/asyncext/config"
	"github.com/kbukum/asyncext/observability"
	"github.com/kbukum/asyncext/validation"
)

// DemoConfig is the asyncdemo configuration.
type DemoConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Tracing observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig              `yaml:"metrics" mapstructure:"metrics"`
	Demo    WorkloadConfig             `yaml:"demo" mapstructure:"demo"`
}

// MetricsConfig toggles OTLP metric export.
type MetricsConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// WorkloadConfig describes the sequences the demo drives.
type WorkloadConfig struct {
	Elements []int         `yaml:"elements" mapstructure:"elements" validate:"required,min=1"`
	Inputs   []string      `yaml:"inputs" mapstructure:"inputs"`
	Delay    time.Duration `yaml:"delay" mapstructure:"delay" validate:"gte=0"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
}

// ApplyDefaults fills unset values.
func (c *DemoConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()

	tracingDefaults := observability.DefaultTracerConfig(c.Name)
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = tracingDefaults.ServiceName
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = c.Version
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = tracingDefaults.Endpoint
	}

	meterDefaults := observability.DefaultMeterConfig(c.Name)
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = meterDefaults.Endpoint
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = meterDefaults.Interval
	}

	if len(c.Demo.Elements) == 0 {
		c.Demo.Elements = []int{1, 2, 3, 4}
	}
	if c.Demo.Timeout == 0 {
		c.Demo.Timeout = 30 * time.Second
	}
}

// Validate checks the base config and every tagged field.
func (c *DemoConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}

// meterConfig converts the metrics section into an observability.MeterConfig.
func (c *DemoConfig) meterConfig() *observability.MeterConfig {
	return &observability.MeterConfig{
		ServiceName:    c.Name,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		Endpoint:       c.Metrics.Endpoint,
		Insecure:       c.Metrics.Insecure,
		Interval:       c.Metrics.Interval,
	}
}
