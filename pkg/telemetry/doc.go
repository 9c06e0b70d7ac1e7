// Package telemetry groups the observability helpers used by the
// metrics service itself.
//
// The logging subpackage builds slog loggers from configuration. The
// metric data the service collects is exposed through the storage
// drivers, not through this package.
package telemetry
