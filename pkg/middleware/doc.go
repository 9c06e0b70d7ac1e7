// Package middleware provides net/http instrumentation backed by a
// metrics storage driver, plus the exposition endpoint handler.
//
// # Overview
//
// Instrument wraps a handler and records a request counter and a
// duration histogram per method, path and status class. Handler serves
// the driver's exposition text. An ExclusionList keeps noisy paths
// (health checks, the metrics endpoint itself, static assets) out of
// the recorded data and can hot-reload its patterns from a YAML file.
//
// # Usage
//
//	driver := metrics.NewMemoryDriver(logger)
//	mw, err := middleware.New(driver, middleware.Config{}, logger)
//	if err != nil {
//		...
//	}
//	mux.Handle("/metrics", middleware.Handler(driver))
//	srv := &http.Server{Handler: mw.Instrument(mux)}
package middleware
