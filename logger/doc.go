// Package logger provides structured logging for asyncext using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. Loggers enriched from a context pick up the
// OpenTelemetry trace and span IDs of the active span.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("asynciter")
//	log.Debug("drive finished", logger.Fields("elements", 4))
package logger
