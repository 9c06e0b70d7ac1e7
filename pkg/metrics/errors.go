package metrics

import (
	"errors"
	"fmt"
)

var (
	// ErrKindConflict is returned when a metric name is re-registered
	// under a different kind. Proceeding would produce ambiguous
	// exposition output, so this is a hard error.
	ErrKindConflict = errors.New("metric already registered with a different kind")

	// ErrReservedLabel is returned when a protocol-reserved label name
	// ("le", "quantile") is declared explicitly. Those labels are only
	// synthesized by the renderer.
	ErrReservedLabel = errors.New("label name is reserved for exposition output")
)

// DriverError is the error type raised by registration operations.
// Run-time mutators never return errors; registration conflicts are the
// one case where failing loudly beats producing invalid output.
type DriverError struct {
	// Metric is the normalized metric name involved.
	Metric string

	// Err is the underlying cause, one of the sentinel errors above.
	Err error
}

// Error implements the error interface.
func (e *DriverError) Error() string {
	return fmt.Sprintf("metrics driver: %s: %v", e.Metric, e.Err)
}

// Unwrap exposes the sentinel cause for errors.Is.
func (e *DriverError) Unwrap() error {
	return e.Err
}

// newDriverError wraps a sentinel cause with the metric it concerns.
func newDriverError(metric string, cause error) *DriverError {
	return &DriverError{Metric: metric, Err: cause}
}
