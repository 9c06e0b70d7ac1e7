package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"helios-hq/pulse/pkg/metrics"
)

// Config configures the SQLite driver.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// Driver implements the metrics storage-driver contract on a SQLite
// file. Accumulator updates are SQL upserts executed on a single writer
// connection, and registered descriptors are persisted so exposition
// metadata survives restarts.
//
// Mutators follow the engine-wide contract: store failures are logged
// and swallowed, never surfaced to the instrumented request path.
type Driver struct {
	db       *sql.DB
	registry *metrics.Registry
	logger   *slog.Logger
	now      func() time.Time
}

var _ metrics.Driver = (*Driver)(nil)

// New opens (or creates) the database file, initializes the schema and
// reloads any persisted descriptors. A nil logger defaults to
// slog.Default tagged with the component name.
func New(cfg Config, logger *slog.Logger) (*Driver, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default().With("component", "metrics.sqlite")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	d := &Driver{
		db:       db,
		registry: metrics.NewRegistry(),
		logger:   logger,
		now:      time.Now,
	}

	if err := d.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := d.loadDescriptors(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load descriptors: %w", err)
	}

	return d, nil
}

func (d *Driver) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS descriptors (
		name TEXT PRIMARY KEY,
		kind INTEGER NOT NULL,
		help TEXT NOT NULL,
		label_names TEXT,
		buckets TEXT,
		quantiles TEXT
	);

	CREATE TABLE IF NOT EXISTS counters (
		name TEXT NOT NULL,
		label_key TEXT NOT NULL,
		value INTEGER NOT NULL,
		PRIMARY KEY (name, label_key)
	);

	CREATE TABLE IF NOT EXISTS gauges (
		name TEXT NOT NULL,
		label_key TEXT NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (name, label_key)
	);

	CREATE TABLE IF NOT EXISTS histograms (
		name TEXT NOT NULL,
		label_key TEXT NOT NULL,
		count INTEGER NOT NULL,
		sum REAL NOT NULL,
		buckets TEXT NOT NULL,
		PRIMARY KEY (name, label_key)
	);

	CREATE TABLE IF NOT EXISTS histogram_buckets (
		name TEXT NOT NULL,
		label_key TEXT NOT NULL,
		bound TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (name, label_key, bound)
	);

	CREATE TABLE IF NOT EXISTS summaries (
		name TEXT NOT NULL,
		label_key TEXT NOT NULL,
		count INTEGER NOT NULL,
		sum REAL NOT NULL,
		PRIMARY KEY (name, label_key)
	);

	CREATE TABLE IF NOT EXISTS summary_values (
		name TEXT NOT NULL,
		label_key TEXT NOT NULL,
		value REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS unique_identifiers (
		name TEXT NOT NULL,
		label_key TEXT NOT NULL,
		identifier TEXT NOT NULL,
		PRIMARY KEY (name, label_key, identifier)
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

// loadDescriptors re-registers every persisted descriptor so exposition
// metadata is available before the embedding process registers anything.
func (d *Driver) loadDescriptors() error {
	rows, err := d.db.Query(`SELECT name, kind, help, label_names, buckets, quantiles FROM descriptors`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name, help                          string
			kind                                int
			labelsJSON, bucketsJSON, quantsJSON sql.NullString
		)
		if err := rows.Scan(&name, &kind, &help, &labelsJSON, &bucketsJSON, &quantsJSON); err != nil {
			return err
		}

		var labelNames []string
		if labelsJSON.Valid && labelsJSON.String != "" {
			if err := json.Unmarshal([]byte(labelsJSON.String), &labelNames); err != nil {
				return fmt.Errorf("corrupt label names for %s: %w", name, err)
			}
		}

		switch metrics.Kind(kind) {
		case metrics.KindCounter:
			_, _, err = d.registry.RegisterCounter(name, help, labelNames)
		case metrics.KindGauge:
			_, _, err = d.registry.RegisterGauge(name, help, labelNames)
		case metrics.KindHistogram:
			var buckets []float64
			if bucketsJSON.Valid && bucketsJSON.String != "" {
				if err := json.Unmarshal([]byte(bucketsJSON.String), &buckets); err != nil {
					return fmt.Errorf("corrupt buckets for %s: %w", name, err)
				}
			}
			_, _, err = d.registry.RegisterHistogram(name, help, labelNames, buckets)
		case metrics.KindSummary:
			var quantiles map[float64]float64
			if quantsJSON.Valid && quantsJSON.String != "" {
				var raw map[string]float64
				if err := json.Unmarshal([]byte(quantsJSON.String), &raw); err != nil {
					return fmt.Errorf("corrupt quantiles for %s: %w", name, err)
				}
				quantiles = make(map[float64]float64, len(raw))
				for k, v := range raw {
					q, perr := strconv.ParseFloat(k, 64)
					if perr != nil {
						return fmt.Errorf("corrupt quantile key for %s: %w", name, perr)
					}
					quantiles[q] = v
				}
			}
			_, _, err = d.registry.RegisterSummary(name, help, labelNames, quantiles)
		default:
			d.logger.Warn("skipping descriptor with unknown kind", "metric", name, "kind", kind)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to restore descriptor %s: %w", name, err)
		}
	}
	return rows.Err()
}

// saveDescriptor persists a freshly registered descriptor.
func (d *Driver) saveDescriptor(desc *metrics.Descriptor) error {
	labelsJSON, err := json.Marshal(desc.LabelNames)
	if err != nil {
		return err
	}
	var bucketsJSON []byte
	if len(desc.Buckets) > 0 {
		// +Inf is not valid JSON; it is re-appended on load.
		finite := make([]float64, 0, len(desc.Buckets))
		for _, b := range desc.Buckets {
			if !math.IsInf(b, 1) {
				finite = append(finite, b)
			}
		}
		if bucketsJSON, err = json.Marshal(finite); err != nil {
			return err
		}
	}
	var quantsJSON []byte
	if len(desc.Quantiles) > 0 {
		raw := make(map[string]float64, len(desc.Quantiles))
		for q, e := range desc.Quantiles {
			raw[strconv.FormatFloat(q, 'g', -1, 64)] = e
		}
		if quantsJSON, err = json.Marshal(raw); err != nil {
			return err
		}
	}

	_, err = d.db.Exec(`
		INSERT INTO descriptors (name, kind, help, label_names, buckets, quantiles)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			help = excluded.help,
			label_names = excluded.label_names,
			buckets = excluded.buckets,
			quantiles = excluded.quantiles
	`, desc.Name, int(desc.Kind), desc.Help, string(labelsJSON), string(bucketsJSON), string(quantsJSON))
	return err
}

// Registry exposes the driver's metric metadata registry.
func (d *Driver) Registry() *metrics.Registry {
	return d.registry
}

// RegisterCounter implements metrics.Driver.
func (d *Driver) RegisterCounter(name, help string, labelNames []string) (*metrics.Descriptor, error) {
	desc, diags, err := d.registry.RegisterCounter(name, help, labelNames)
	d.logDiags(diags)
	if err != nil {
		return nil, err
	}
	if serr := d.saveDescriptor(desc); serr != nil {
		d.logOpError("save_descriptor", desc.Name, serr)
	}
	return desc, nil
}

// RegisterGauge implements metrics.Driver.
func (d *Driver) RegisterGauge(name, help string, labelNames []string) (*metrics.Descriptor, error) {
	desc, diags, err := d.registry.RegisterGauge(name, help, labelNames)
	d.logDiags(diags)
	if err != nil {
		return nil, err
	}
	if serr := d.saveDescriptor(desc); serr != nil {
		d.logOpError("save_descriptor", desc.Name, serr)
	}
	return desc, nil
}

// RegisterHistogram implements metrics.Driver.
func (d *Driver) RegisterHistogram(name, help string, labelNames []string, buckets []float64) (*metrics.Descriptor, error) {
	desc, diags, err := d.registry.RegisterHistogram(name, help, labelNames, buckets)
	d.logDiags(diags)
	if err != nil {
		return nil, err
	}
	if serr := d.saveDescriptor(desc); serr != nil {
		d.logOpError("save_descriptor", desc.Name, serr)
	}
	return desc, nil
}

// RegisterSummary implements metrics.Driver.
func (d *Driver) RegisterSummary(name, help string, labelNames []string, quantiles map[float64]float64) (*metrics.Descriptor, error) {
	desc, diags, err := d.registry.RegisterSummary(name, help, labelNames, quantiles)
	d.logDiags(diags)
	if err != nil {
		return nil, err
	}
	if serr := d.saveDescriptor(desc); serr != nil {
		d.logOpError("save_descriptor", desc.Name, serr)
	}
	return desc, nil
}

// IncrementCounter implements metrics.Driver.
func (d *Driver) IncrementCounter(name string, labels metrics.Labels, delta uint64) {
	if delta == 0 {
		delta = 1
	}
	canonical, diags := metrics.CanonicalCounterName(name)
	d.logDiags(diags)
	key := d.labelKey(labels)

	_, err := d.db.Exec(`
		INSERT INTO counters (name, label_key, value) VALUES (?, ?, ?)
		ON CONFLICT (name, label_key) DO UPDATE SET value = value + excluded.value
	`, canonical, key, int64(delta))
	if err != nil {
		d.logOpError("increment_counter", canonical, err)
	}
}

// ObserveHistogram implements metrics.Driver.
func (d *Driver) ObserveHistogram(name string, value float64, labels metrics.Labels, buckets []float64) {
	canonical := d.canonicalName(name)
	key := d.labelKey(labels)
	bounds := d.bucketsFor(canonical, buckets)

	tx, err := d.db.Begin()
	if err != nil {
		d.logOpError("observe_histogram", canonical, err)
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO histograms (name, label_key, count, sum, buckets) VALUES (?, ?, 1, ?, ?)
		ON CONFLICT (name, label_key) DO UPDATE SET
			count = count + 1,
			sum = sum + excluded.sum
	`, canonical, key, value, encodeBounds(bounds)); err != nil {
		d.logOpError("observe_histogram", canonical, err)
		return
	}

	bound := formatBound(bucketFor(bounds, value))
	if _, err := tx.Exec(`
		INSERT INTO histogram_buckets (name, label_key, bound, count) VALUES (?, ?, ?, 1)
		ON CONFLICT (name, label_key, bound) DO UPDATE SET count = count + 1
	`, canonical, key, bound); err != nil {
		d.logOpError("observe_histogram", canonical, err)
		return
	}

	if err := tx.Commit(); err != nil {
		d.logOpError("observe_histogram", canonical, err)
	}
}

// SetGauge implements metrics.Driver.
func (d *Driver) SetGauge(name string, value float64, labels metrics.Labels) {
	canonical := d.canonicalName(name)
	key := d.labelKey(labels)

	_, err := d.db.Exec(`
		INSERT INTO gauges (name, label_key, value) VALUES (?, ?, ?)
		ON CONFLICT (name, label_key) DO UPDATE SET value = excluded.value
	`, canonical, key, value)
	if err != nil {
		d.logOpError("set_gauge", canonical, err)
	}
}

// IncrementGauge implements metrics.Driver.
func (d *Driver) IncrementGauge(name string, delta float64, labels metrics.Labels) {
	d.incrGauge("increment_gauge", name, delta, labels)
}

// DecrementGauge implements metrics.Driver.
func (d *Driver) DecrementGauge(name string, delta float64, labels metrics.Labels) {
	d.incrGauge("decrement_gauge", name, -delta, labels)
}

func (d *Driver) incrGauge(op, name string, delta float64, labels metrics.Labels) {
	canonical := d.canonicalName(name)
	key := d.labelKey(labels)

	_, err := d.db.Exec(`
		INSERT INTO gauges (name, label_key, value) VALUES (?, ?, ?)
		ON CONFLICT (name, label_key) DO UPDATE SET value = value + excluded.value
	`, canonical, key, delta)
	if err != nil {
		d.logOpError(op, canonical, err)
	}
}

// ObserveSummary implements metrics.Driver.
func (d *Driver) ObserveSummary(name string, value float64, labels metrics.Labels, quantiles map[float64]float64) {
	canonical := d.canonicalName(name)
	key := d.labelKey(labels)

	tx, err := d.db.Begin()
	if err != nil {
		d.logOpError("observe_summary", canonical, err)
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO summaries (name, label_key, count, sum) VALUES (?, ?, 1, ?)
		ON CONFLICT (name, label_key) DO UPDATE SET
			count = count + 1,
			sum = sum + excluded.sum
	`, canonical, key, value); err != nil {
		d.logOpError("observe_summary", canonical, err)
		return
	}

	if _, err := tx.Exec(`
		INSERT INTO summary_values (name, label_key, value) VALUES (?, ?, ?)
	`, canonical, key, value); err != nil {
		d.logOpError("observe_summary", canonical, err)
		return
	}

	// Keep the raw-value ring bounded.
	if _, err := tx.Exec(`
		DELETE FROM summary_values
		WHERE name = ? AND label_key = ? AND rowid NOT IN (
			SELECT rowid FROM summary_values
			WHERE name = ? AND label_key = ?
			ORDER BY rowid DESC LIMIT ?
		)
	`, canonical, key, canonical, key, summaryRetention); err != nil {
		d.logOpError("observe_summary", canonical, err)
		return
	}

	if err := tx.Commit(); err != nil {
		d.logOpError("observe_summary", canonical, err)
	}
}

// TrackUnique implements metrics.Driver. INSERT OR IGNORE makes
// re-tracking the same identifier a no-op.
func (d *Driver) TrackUnique(name, identifier string, labels metrics.Labels) {
	canonical, diags := metrics.CanonicalUniqueName(name)
	d.logDiags(diags)
	key := d.labelKey(labels.With("date", d.now().Format("2006-01-02")))

	_, err := d.db.Exec(`
		INSERT OR IGNORE INTO unique_identifiers (name, label_key, identifier) VALUES (?, ?, ?)
	`, canonical, key, identifier)
	if err != nil {
		d.logOpError("track_unique", canonical, err)
	}
}

// CounterValue implements metrics.Driver.
func (d *Driver) CounterValue(name string, labels metrics.Labels) uint64 {
	canonical, _ := metrics.CanonicalCounterName(name)
	var v int64
	err := d.db.QueryRow(`SELECT value FROM counters WHERE name = ? AND label_key = ?`,
		canonical, d.labelKey(labels)).Scan(&v)
	if err != nil {
		return 0
	}
	return uint64(v)
}

// HistogramSum implements metrics.Driver.
func (d *Driver) HistogramSum(name string, labels metrics.Labels) float64 {
	var v float64
	err := d.db.QueryRow(`SELECT sum FROM histograms WHERE name = ? AND label_key = ?`,
		d.canonicalName(name), d.labelKey(labels)).Scan(&v)
	if err != nil {
		return 0
	}
	return v
}

// HistogramCount implements metrics.Driver.
func (d *Driver) HistogramCount(name string, labels metrics.Labels) uint64 {
	var v int64
	err := d.db.QueryRow(`SELECT count FROM histograms WHERE name = ? AND label_key = ?`,
		d.canonicalName(name), d.labelKey(labels)).Scan(&v)
	if err != nil {
		return 0
	}
	return uint64(v)
}

// GaugeValue implements metrics.Driver.
func (d *Driver) GaugeValue(name string, labels metrics.Labels) float64 {
	var v float64
	err := d.db.QueryRow(`SELECT value FROM gauges WHERE name = ? AND label_key = ?`,
		d.canonicalName(name), d.labelKey(labels)).Scan(&v)
	if err != nil {
		return 0
	}
	return v
}

// SummarySum implements metrics.Driver.
func (d *Driver) SummarySum(name string, labels metrics.Labels) float64 {
	var v float64
	err := d.db.QueryRow(`SELECT sum FROM summaries WHERE name = ? AND label_key = ?`,
		d.canonicalName(name), d.labelKey(labels)).Scan(&v)
	if err != nil {
		return 0
	}
	return v
}

// SummaryCount implements metrics.Driver.
func (d *Driver) SummaryCount(name string, labels metrics.Labels) uint64 {
	var v int64
	err := d.db.QueryRow(`SELECT count FROM summaries WHERE name = ? AND label_key = ?`,
		d.canonicalName(name), d.labelKey(labels)).Scan(&v)
	if err != nil {
		return 0
	}
	return uint64(v)
}

// Metrics implements metrics.Driver.
func (d *Driver) Metrics() string {
	snap, err := d.snapshot()
	if err != nil {
		d.logger.Error("failed to snapshot metrics from sqlite", "error", err)
		return fmt.Sprintf("# Error generating metrics: %v\n", err)
	}
	return metrics.RenderText(d.registry, snap)
}

// Flush implements metrics.Driver. Accumulator tables are cleared in one
// transaction; descriptors are kept, matching the in-process registry.
func (d *Driver) Flush() bool {
	tx, err := d.db.Begin()
	if err != nil {
		d.logger.Error("metrics flush failed", "error", err)
		return false
	}
	defer tx.Rollback()

	for _, table := range []string{
		"counters", "gauges", "histograms", "histogram_buckets",
		"summaries", "summary_values", "unique_identifiers",
	} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			d.logger.Error("metrics flush failed", "table", table, "error", err)
			return false
		}
	}

	if err := tx.Commit(); err != nil {
		d.logger.Error("metrics flush failed", "error", err)
		return false
	}
	return true
}

// Close implements metrics.Driver.
func (d *Driver) Close() error {
	return d.db.Close()
}

// summaryRetention mirrors the engine default for raw summary values.
const summaryRetention = 1000

// snapshot reads the full stored state into renderer input.
func (d *Driver) snapshot() (*metrics.Snapshot, error) {
	snap := metrics.NewSnapshot()

	rows, err := d.db.Query(`SELECT name, label_key, value FROM counters`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name, key string
		var v int64
		if err := rows.Scan(&name, &key, &v); err != nil {
			rows.Close()
			return nil, err
		}
		if snap.Counters[name] == nil {
			snap.Counters[name] = make(map[string]uint64)
		}
		snap.Counters[name][key] = uint64(v)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = d.db.Query(`SELECT name, label_key, value FROM gauges`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name, key string
		var v float64
		if err := rows.Scan(&name, &key, &v); err != nil {
			rows.Close()
			return nil, err
		}
		if snap.Gauges[name] == nil {
			snap.Gauges[name] = make(map[string]float64)
		}
		snap.Gauges[name][key] = v
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = d.db.Query(`SELECT name, label_key, count, sum, buckets FROM histograms`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name, key, bounds string
		var count int64
		var sum float64
		if err := rows.Scan(&name, &key, &count, &sum, &bounds); err != nil {
			rows.Close()
			return nil, err
		}
		if snap.Histograms[name] == nil {
			snap.Histograms[name] = make(map[string]metrics.HistogramData)
		}
		snap.Histograms[name][key] = metrics.HistogramData{
			Count:        uint64(count),
			Sum:          sum,
			Buckets:      decodeBounds(bounds),
			BucketCounts: make(map[float64]uint64),
		}
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = d.db.Query(`SELECT name, label_key, bound, count FROM histogram_buckets`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name, key, bound string
		var count int64
		if err := rows.Scan(&name, &key, &bound, &count); err != nil {
			rows.Close()
			return nil, err
		}
		data, ok := snap.Histograms[name][key]
		if !ok {
			continue
		}
		if b, ok := parseBound(bound); ok {
			data.BucketCounts[b] = uint64(count)
		}
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = d.db.Query(`SELECT name, label_key, count, sum FROM summaries`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name, key string
		var count int64
		var sum float64
		if err := rows.Scan(&name, &key, &count, &sum); err != nil {
			rows.Close()
			return nil, err
		}
		if snap.Summaries[name] == nil {
			snap.Summaries[name] = make(map[string]metrics.SummaryData)
		}
		snap.Summaries[name][key] = metrics.SummaryData{Count: uint64(count), Sum: sum}
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = d.db.Query(`
		SELECT name, label_key, COUNT(DISTINCT identifier)
		FROM unique_identifiers
		GROUP BY name, label_key
	`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name, key string
		var count int64
		if err := rows.Scan(&name, &key, &count); err != nil {
			rows.Close()
			return nil, err
		}
		if snap.Unique[name] == nil {
			snap.Unique[name] = make(map[string]uint64)
		}
		snap.Unique[name][key] = uint64(count)
	}
	return snap, closeRows(rows)
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

// bucketsFor resolves the bucket set: registered buckets win, then the
// caller-supplied list, then the engine default.
func (d *Driver) bucketsFor(name string, override []float64) []float64 {
	if desc := d.registry.Lookup(name); desc != nil && desc.Kind == metrics.KindHistogram && len(desc.Buckets) > 0 {
		return desc.Buckets
	}
	return metrics.NormalizeBuckets(override)
}

// bucketFor returns the smallest bound covering value.
func bucketFor(bounds []float64, value float64) float64 {
	for _, b := range bounds {
		if value <= b {
			return b
		}
	}
	return math.Inf(1)
}

func encodeBounds(bounds []float64) string {
	parts := make([]string, len(bounds))
	for i, b := range bounds {
		parts[i] = formatBound(b)
	}
	return strings.Join(parts, ",")
}

func decodeBounds(raw string) []float64 {
	if raw == "" {
		return nil
	}
	var bounds []float64
	for _, p := range strings.Split(raw, ",") {
		if b, ok := parseBound(p); ok {
			bounds = append(bounds, b)
		}
	}
	return bounds
}

func formatBound(b float64) string {
	if math.IsInf(b, 1) {
		return "+Inf"
	}
	return strconv.FormatFloat(b, 'g', -1, 64)
}

func parseBound(raw string) (float64, bool) {
	if raw == "+Inf" {
		return math.Inf(1), true
	}
	b, err := strconv.ParseFloat(raw, 64)
	return b, err == nil
}

func (d *Driver) canonicalName(name string) string {
	normalized, diags := metrics.ValidateMetricName(name)
	d.logDiags(diags)
	return normalized
}

func (d *Driver) labelKey(labels metrics.Labels) string {
	key, diags := metrics.GenerateLabelKey(labels)
	if len(diags) > 0 {
		d.logDiags(diags)
	}
	return key
}

func (d *Driver) logDiags(diags []metrics.Diagnostic) {
	metrics.LogDiagnostics(d.logger, diags)
}

func (d *Driver) logOpError(op, metric string, err error) {
	d.logger.Error("metrics operation failed",
		"op", op,
		"metric", metric,
		"error", err,
	)
}
