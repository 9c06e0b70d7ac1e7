// Package metrics implements a Prometheus-compatible metrics engine:
// metric registration, mutable storage for counters, gauges, histograms,
// summaries and daily unique-identifier tracking, and a renderer for the
// text exposition format.
//
// # Overview
//
// The package is organized around a storage-driver contract:
//
//   - Driver: the operation set every backend implements
//   - MemoryDriver: the reference in-memory backend (default)
//   - redis.Driver, sqlite.Driver: remote and file-based backends
//     implementing the same contract (subpackages)
//   - LoggingDriver: a decorator that forwards to an inner driver and
//     logs every mutation
//
// # Usage
//
//	driver := metrics.NewMemoryDriver(nil)
//
//	// Register metrics up front.
//	driver.RegisterCounter("http_requests_total", "Total HTTP requests.",
//	    []string{"method", "path", "status"})
//
//	// Record observations on the hot path. Mutators never return errors;
//	// recoverable input problems are corrected and logged.
//	driver.IncrementCounter("http_requests_total", metrics.Labels{
//	    {Name: "method", Value: "GET"},
//	    {Name: "path", Value: "/api/users"},
//	    {Name: "status", Value: "200"},
//	}, 1)
//
//	// Render the exposition body.
//	body := driver.Metrics()
//
// # Validation
//
// Metric and label names are normalized rather than rejected: dashes and
// dots become underscores, illegal characters are stripped, reserved label
// prefixes are rewritten. Validators are pure functions returning the
// corrected identifier together with diagnostic events; drivers route the
// diagnostics to a structured logger. The only hard errors are registration
// conflicts (same name under a different kind, or a reserved label such as
// "le" declared explicitly), surfaced as *DriverError.
//
// # Thread Safety
//
// All drivers are safe for concurrent use from multiple goroutines.
// Rendering takes a point-in-time snapshot; Flush takes exclusive access
// for the duration of the clear.
package metrics
