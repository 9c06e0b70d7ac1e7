package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"helios-hq/pulse/pkg/metrics"
)

const (
	requestsMetric = "http_requests_total"
	durationMetric = "http_request_duration_seconds"
	inflightMetric = "http_requests_in_flight"
)

// Config configures the instrumentation middleware.
type Config struct {
	// Buckets overrides the duration histogram buckets.
	// Default: metrics.DefBuckets
	Buckets []float64

	// ExclusionFile is an optional YAML file of path patterns to skip.
	// When set, the file is watched and reloaded on change.
	ExclusionFile string

	// Exclusions is a static pattern list applied in addition to the
	// file-based one.
	Exclusions []string
}

// Middleware instruments HTTP handlers against a metrics driver.
type Middleware struct {
	driver     metrics.Driver
	logger     *slog.Logger
	exclusions *ExclusionList
}

// New registers the middleware's metrics on the driver and, when an
// exclusion file is configured, starts watching it for changes.
func New(driver metrics.Driver, cfg Config, logger *slog.Logger) (*Middleware, error) {
	if driver == nil {
		return nil, fmt.Errorf("driver cannot be nil")
	}
	if logger == nil {
		logger = slog.Default().With("component", "middleware")
	}

	if _, err := driver.RegisterCounter(requestsMetric, "Total HTTP requests processed.", []string{"method", "path", "status"}); err != nil {
		return nil, fmt.Errorf("failed to register request counter: %w", err)
	}
	if _, err := driver.RegisterHistogram(durationMetric, "HTTP request duration in seconds.", []string{"method", "path"}, cfg.Buckets); err != nil {
		return nil, fmt.Errorf("failed to register duration histogram: %w", err)
	}
	if _, err := driver.RegisterGauge(inflightMetric, "HTTP requests currently being served.", nil); err != nil {
		return nil, fmt.Errorf("failed to register in-flight gauge: %w", err)
	}

	exclusions := NewExclusionList(cfg.Exclusions, logger)
	if cfg.ExclusionFile != "" {
		if err := exclusions.WatchFile(cfg.ExclusionFile); err != nil {
			return nil, fmt.Errorf("failed to watch exclusion file: %w", err)
		}
	}

	return &Middleware{
		driver:     driver,
		logger:     logger,
		exclusions: exclusions,
	}, nil
}

// Instrument wraps next with request counting and duration recording.
// Excluded paths pass through untouched.
func (m *Middleware) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.exclusions.Match(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		m.driver.IncrementGauge(inflightMetric, 1, nil)
		defer m.driver.DecrementGauge(inflightMetric, 1, nil)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start).Seconds()

		m.driver.IncrementCounter(requestsMetric, metrics.Labels{
			metrics.L("method", r.Method),
			metrics.L("path", r.URL.Path),
			metrics.L("status", strconv.Itoa(rec.status)),
		}, 1)
		m.driver.ObserveHistogram(durationMetric, elapsed, metrics.Labels{
			metrics.L("method", r.Method),
			metrics.L("path", r.URL.Path),
		}, nil)
	})
}

// Exclusions exposes the live exclusion list.
func (m *Middleware) Exclusions() *ExclusionList {
	return m.exclusions
}

// Close stops the exclusion file watcher, if any.
func (m *Middleware) Close() error {
	return m.exclusions.Close()
}

// statusRecorder captures the response status code for labeling.
// WriteHeader may never be called; the zero case defaults to 200.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.wroteHeader = true
	}
	return r.ResponseWriter.Write(b)
}

// Handler serves the driver's exposition text.
func Handler(driver metrics.Driver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body := driver.Metrics()
		w.Header().Set("Content-Type", metrics.ExpositionContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		if r.Method == http.MethodHead {
			return
		}
		fmt.Fprint(w, body)
	})
}
