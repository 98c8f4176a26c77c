// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment.
//
// # Usage
//
//	type DemoConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Workers int `yaml:"workers" mapstructure:"workers"`
//	}
//
//	var cfg DemoConfig
//	if err := config.LoadConfig("asyncdemo", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
//
// Sources are layered in order: config.yml, then the environment (after the
// .env file, if any, has been loaded into it). An environment variable such as
// LOGGING_LEVEL overrides the nested key logging.level.
package config
