package metrics

import "log/slog"

// LoggingDriver is a decorator that forwards every operation to an inner
// driver and logs the traffic. It preserves the full Driver capability
// surface, so wrapped and unwrapped drivers are interchangeable.
//
// Mutations log at debug level to stay cheap on the hot path; flushes
// and registration failures log at info/error.
type LoggingDriver struct {
	inner  Driver
	logger *slog.Logger
}

// NewLoggingDriver wraps inner with operation logging. A nil logger
// defaults to slog.Default tagged with the component name.
func NewLoggingDriver(inner Driver, logger *slog.Logger) *LoggingDriver {
	if logger == nil {
		logger = slog.Default().With("component", "metrics.logging")
	}
	return &LoggingDriver{inner: inner, logger: logger}
}

// RegisterCounter implements Driver.
func (d *LoggingDriver) RegisterCounter(name, help string, labelNames []string) (*Descriptor, error) {
	desc, err := d.inner.RegisterCounter(name, help, labelNames)
	d.logRegistration("counter", name, err)
	return desc, err
}

// RegisterGauge implements Driver.
func (d *LoggingDriver) RegisterGauge(name, help string, labelNames []string) (*Descriptor, error) {
	desc, err := d.inner.RegisterGauge(name, help, labelNames)
	d.logRegistration("gauge", name, err)
	return desc, err
}

// RegisterHistogram implements Driver.
func (d *LoggingDriver) RegisterHistogram(name, help string, labelNames []string, buckets []float64) (*Descriptor, error) {
	desc, err := d.inner.RegisterHistogram(name, help, labelNames, buckets)
	d.logRegistration("histogram", name, err)
	return desc, err
}

// RegisterSummary implements Driver.
func (d *LoggingDriver) RegisterSummary(name, help string, labelNames []string, quantiles map[float64]float64) (*Descriptor, error) {
	desc, err := d.inner.RegisterSummary(name, help, labelNames, quantiles)
	d.logRegistration("summary", name, err)
	return desc, err
}

// IncrementCounter implements Driver.
func (d *LoggingDriver) IncrementCounter(name string, labels Labels, delta uint64) {
	d.logger.Debug("increment counter", "metric", name, "delta", delta, "labels", len(labels))
	d.inner.IncrementCounter(name, labels, delta)
}

// ObserveHistogram implements Driver.
func (d *LoggingDriver) ObserveHistogram(name string, value float64, labels Labels, buckets []float64) {
	d.logger.Debug("observe histogram", "metric", name, "value", value, "labels", len(labels))
	d.inner.ObserveHistogram(name, value, labels, buckets)
}

// SetGauge implements Driver.
func (d *LoggingDriver) SetGauge(name string, value float64, labels Labels) {
	d.logger.Debug("set gauge", "metric", name, "value", value, "labels", len(labels))
	d.inner.SetGauge(name, value, labels)
}

// IncrementGauge implements Driver.
func (d *LoggingDriver) IncrementGauge(name string, delta float64, labels Labels) {
	d.logger.Debug("increment gauge", "metric", name, "delta", delta, "labels", len(labels))
	d.inner.IncrementGauge(name, delta, labels)
}

// DecrementGauge implements Driver.
func (d *LoggingDriver) DecrementGauge(name string, delta float64, labels Labels) {
	d.logger.Debug("decrement gauge", "metric", name, "delta", delta, "labels", len(labels))
	d.inner.DecrementGauge(name, delta, labels)
}

// ObserveSummary implements Driver.
func (d *LoggingDriver) ObserveSummary(name string, value float64, labels Labels, quantiles map[float64]float64) {
	d.logger.Debug("observe summary", "metric", name, "value", value, "labels", len(labels))
	d.inner.ObserveSummary(name, value, labels, quantiles)
}

// TrackUnique implements Driver.
func (d *LoggingDriver) TrackUnique(name, identifier string, labels Labels) {
	d.logger.Debug("track unique", "metric", name, "labels", len(labels))
	d.inner.TrackUnique(name, identifier, labels)
}

// CounterValue implements Driver.
func (d *LoggingDriver) CounterValue(name string, labels Labels) uint64 {
	return d.inner.CounterValue(name, labels)
}

// HistogramSum implements Driver.
func (d *LoggingDriver) HistogramSum(name string, labels Labels) float64 {
	return d.inner.HistogramSum(name, labels)
}

// HistogramCount implements Driver.
func (d *LoggingDriver) HistogramCount(name string, labels Labels) uint64 {
	return d.inner.HistogramCount(name, labels)
}

// GaugeValue implements Driver.
func (d *LoggingDriver) GaugeValue(name string, labels Labels) float64 {
	return d.inner.GaugeValue(name, labels)
}

// SummarySum implements Driver.
func (d *LoggingDriver) SummarySum(name string, labels Labels) float64 {
	return d.inner.SummarySum(name, labels)
}

// SummaryCount implements Driver.
func (d *LoggingDriver) SummaryCount(name string, labels Labels) uint64 {
	return d.inner.SummaryCount(name, labels)
}

// Metrics implements Driver.
func (d *LoggingDriver) Metrics() string {
	return d.inner.Metrics()
}

// Flush implements Driver.
func (d *LoggingDriver) Flush() bool {
	ok := d.inner.Flush()
	if ok {
		d.logger.Info("metrics flushed")
	} else {
		d.logger.Error("metrics flush failed")
	}
	return ok
}

// Close implements Driver.
func (d *LoggingDriver) Close() error {
	return d.inner.Close()
}

// logRegistration reports registration outcomes.
func (d *LoggingDriver) logRegistration(kind, name string, err error) {
	if err != nil {
		d.logger.Error("metric registration failed", "kind", kind, "metric", name, "error", err)
		return
	}
	d.logger.Debug("metric registered", "kind", kind, "metric", name)
}
