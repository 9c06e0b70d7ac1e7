package redis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"helios-hq/pulse/pkg/metrics"
)

// Config configures the Redis driver.
type Config struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// Password authenticates the connection. Empty means no auth.
	Password string

	// DB selects the Redis database number.
	DB int

	// KeyPrefix namespaces every key written by the driver.
	// Default: "pulse"
	KeyPrefix string

	// TTL is the per-key expiry applied to written keys so metric data
	// (unique-tracking sets in particular) ages out of the store.
	// Zero disables expiry.
	TTL time.Duration

	// OpTimeout bounds each store round-trip. Default: 3 seconds.
	OpTimeout time.Duration
}

// Driver implements the metrics storage-driver contract against Redis.
// Counters use HINCRBY and unique tracking uses SADD, so atomicity is
// provided by the store itself and multiple processes can share one
// metric namespace.
//
// Mutators follow the engine-wide contract: store failures are logged
// and swallowed, never surfaced to the instrumented request path.
type Driver struct {
	client    *goredis.Client
	registry  *metrics.Registry
	logger    *slog.Logger
	prefix    string
	ttl       time.Duration
	opTimeout time.Duration
	now       func() time.Time
}

var _ metrics.Driver = (*Driver)(nil)

// New connects to Redis and verifies the connection with a ping.
// A nil logger defaults to slog.Default tagged with the component name.
func New(cfg Config, logger *slog.Logger) (*Driver, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "pulse"
	}
	if cfg.OpTimeout == 0 {
		cfg.OpTimeout = 3 * time.Second
	}
	if logger == nil {
		logger = slog.Default().With("component", "metrics.redis")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &Driver{
		client:    client,
		registry:  metrics.NewRegistry(),
		logger:    logger,
		prefix:    cfg.KeyPrefix,
		ttl:       cfg.TTL,
		opTimeout: cfg.OpTimeout,
		now:       time.Now,
	}, nil
}

// Registry exposes the driver's in-process metric metadata registry.
func (d *Driver) Registry() *metrics.Registry {
	return d.registry
}

// RegisterCounter implements metrics.Driver.
func (d *Driver) RegisterCounter(name, help string, labelNames []string) (*metrics.Descriptor, error) {
	desc, diags, err := d.registry.RegisterCounter(name, help, labelNames)
	d.logDiags(diags)
	return desc, err
}

// RegisterGauge implements metrics.Driver.
func (d *Driver) RegisterGauge(name, help string, labelNames []string) (*metrics.Descriptor, error) {
	desc, diags, err := d.registry.RegisterGauge(name, help, labelNames)
	d.logDiags(diags)
	return desc, err
}

// RegisterHistogram implements metrics.Driver.
func (d *Driver) RegisterHistogram(name, help string, labelNames []string, buckets []float64) (*metrics.Descriptor, error) {
	desc, diags, err := d.registry.RegisterHistogram(name, help, labelNames, buckets)
	d.logDiags(diags)
	return desc, err
}

// RegisterSummary implements metrics.Driver.
func (d *Driver) RegisterSummary(name, help string, labelNames []string, quantiles map[float64]float64) (*metrics.Descriptor, error) {
	desc, diags, err := d.registry.RegisterSummary(name, help, labelNames, quantiles)
	d.logDiags(diags)
	return desc, err
}

// IncrementCounter implements metrics.Driver.
func (d *Driver) IncrementCounter(name string, labels metrics.Labels, delta uint64) {
	if delta == 0 {
		delta = 1
	}
	canonical, diags := metrics.CanonicalCounterName(name)
	d.logDiags(diags)
	key := d.labelKey(labels)

	ctx, cancel := d.opCtx()
	defer cancel()
	hash := d.counterHash(canonical)
	if err := d.client.HIncrBy(ctx, hash, key, int64(delta)).Err(); err != nil {
		d.logOpError("increment_counter", canonical, err)
		return
	}
	d.touch(ctx, hash)
}

// ObserveHistogram implements metrics.Driver.
func (d *Driver) ObserveHistogram(name string, value float64, labels metrics.Labels, buckets []float64) {
	canonical := d.canonicalName(name)
	key := d.labelKey(labels)
	bounds := d.bucketsFor(canonical, buckets)

	ctx, cancel := d.opCtx()
	defer cancel()
	hash := d.histogramHash(canonical, key)

	pipe := d.client.Pipeline()
	pipe.SAdd(ctx, d.histogramKeySet(canonical), key)
	pipe.HSetNX(ctx, hash, "buckets", encodeBounds(bounds))
	pipe.HIncrBy(ctx, hash, "count", 1)
	pipe.HIncrByFloat(ctx, hash, "sum", value)
	pipe.HIncrBy(ctx, hash, "b:"+formatBound(bucketFor(bounds, value)), 1)
	if d.ttl > 0 {
		pipe.Expire(ctx, d.histogramKeySet(canonical), d.ttl)
		pipe.Expire(ctx, hash, d.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		d.logOpError("observe_histogram", canonical, err)
	}
}

// SetGauge implements metrics.Driver.
func (d *Driver) SetGauge(name string, value float64, labels metrics.Labels) {
	canonical := d.canonicalName(name)
	key := d.labelKey(labels)

	ctx, cancel := d.opCtx()
	defer cancel()
	hash := d.gaugeHash(canonical)
	if err := d.client.HSet(ctx, hash, key, strconv.FormatFloat(value, 'g', -1, 64)).Err(); err != nil {
		d.logOpError("set_gauge", canonical, err)
		return
	}
	d.touch(ctx, hash)
}

// IncrementGauge implements metrics.Driver.
func (d *Driver) IncrementGauge(name string, delta float64, labels metrics.Labels) {
	d.incrGauge("increment_gauge", name, delta, labels)
}

// DecrementGauge implements metrics.Driver.
func (d *Driver) DecrementGauge(name string, delta float64, labels metrics.Labels) {
	d.incrGauge("decrement_gauge", name, -delta, labels)
}

// incrGauge applies a signed delta through HINCRBYFLOAT.
func (d *Driver) incrGauge(op, name string, delta float64, labels metrics.Labels) {
	canonical := d.canonicalName(name)
	key := d.labelKey(labels)

	ctx, cancel := d.opCtx()
	defer cancel()
	hash := d.gaugeHash(canonical)
	if err := d.client.HIncrByFloat(ctx, hash, key, delta).Err(); err != nil {
		d.logOpError(op, canonical, err)
		return
	}
	d.touch(ctx, hash)
}

// ObserveSummary implements metrics.Driver.
func (d *Driver) ObserveSummary(name string, value float64, labels metrics.Labels, quantiles map[float64]float64) {
	canonical := d.canonicalName(name)
	key := d.labelKey(labels)

	ctx, cancel := d.opCtx()
	defer cancel()
	hash := d.summaryHash(canonical, key)
	values := hash + ":values"

	pipe := d.client.Pipeline()
	pipe.SAdd(ctx, d.summaryKeySet(canonical), key)
	pipe.HIncrBy(ctx, hash, "count", 1)
	pipe.HIncrByFloat(ctx, hash, "sum", value)
	pipe.LPush(ctx, values, strconv.FormatFloat(value, 'g', -1, 64))
	pipe.LTrim(ctx, values, 0, summaryRetention-1)
	if d.ttl > 0 {
		pipe.Expire(ctx, d.summaryKeySet(canonical), d.ttl)
		pipe.Expire(ctx, hash, d.ttl)
		pipe.Expire(ctx, values, d.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		d.logOpError("observe_summary", canonical, err)
	}
}

// TrackUnique implements metrics.Driver. SADD makes re-tracking the same
// identifier a store-side no-op; SCARD is the cached count.
func (d *Driver) TrackUnique(name, identifier string, labels metrics.Labels) {
	canonical, diags := metrics.CanonicalUniqueName(name)
	d.logDiags(diags)
	key := d.labelKey(labels.With("date", d.now().Format("2006-01-02")))

	ctx, cancel := d.opCtx()
	defer cancel()
	set := d.uniqueSet(canonical, key)

	pipe := d.client.Pipeline()
	pipe.SAdd(ctx, d.uniqueNamesKey(), canonical)
	pipe.SAdd(ctx, d.uniqueKeySet(canonical), key)
	pipe.SAdd(ctx, set, identifier)
	if d.ttl > 0 {
		pipe.Expire(ctx, d.uniqueKeySet(canonical), d.ttl)
		pipe.Expire(ctx, set, d.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		d.logOpError("track_unique", canonical, err)
	}
}

// CounterValue implements metrics.Driver.
func (d *Driver) CounterValue(name string, labels metrics.Labels) uint64 {
	canonical, _ := metrics.CanonicalCounterName(name)
	key := d.labelKey(labels)

	ctx, cancel := d.opCtx()
	defer cancel()
	raw, err := d.client.HGet(ctx, d.counterHash(canonical), key).Result()
	if err != nil {
		return 0
	}
	v, _ := strconv.ParseUint(raw, 10, 64)
	return v
}

// HistogramSum implements metrics.Driver.
func (d *Driver) HistogramSum(name string, labels metrics.Labels) float64 {
	return d.hashFloat(d.histogramHash(d.canonicalName(name), d.labelKey(labels)), "sum")
}

// HistogramCount implements metrics.Driver.
func (d *Driver) HistogramCount(name string, labels metrics.Labels) uint64 {
	return d.hashUint(d.histogramHash(d.canonicalName(name), d.labelKey(labels)), "count")
}

// GaugeValue implements metrics.Driver.
func (d *Driver) GaugeValue(name string, labels metrics.Labels) float64 {
	canonical := d.canonicalName(name)
	key := d.labelKey(labels)

	ctx, cancel := d.opCtx()
	defer cancel()
	raw, err := d.client.HGet(ctx, d.gaugeHash(canonical), key).Result()
	if err != nil {
		return 0
	}
	v, _ := strconv.ParseFloat(raw, 64)
	return v
}

// SummarySum implements metrics.Driver.
func (d *Driver) SummarySum(name string, labels metrics.Labels) float64 {
	return d.hashFloat(d.summaryHash(d.canonicalName(name), d.labelKey(labels)), "sum")
}

// SummaryCount implements metrics.Driver.
func (d *Driver) SummaryCount(name string, labels metrics.Labels) uint64 {
	return d.hashUint(d.summaryHash(d.canonicalName(name), d.labelKey(labels)), "count")
}

// Metrics implements metrics.Driver. The snapshot is assembled from the
// store and rendered by the shared renderer; any store failure degrades
// the whole response to the error comment line.
func (d *Driver) Metrics() string {
	ctx, cancel := d.opCtx()
	defer cancel()
	snap, err := d.snapshot(ctx)
	if err != nil {
		d.logger.Error("failed to snapshot metrics from redis", "error", err)
		return fmt.Sprintf("# Error generating metrics: %v\n", err)
	}
	return metrics.RenderText(d.registry, snap)
}

// Flush implements metrics.Driver. All keys under the prefix are
// deleted; the in-process registry is kept, since remote data may be
// shared and every embedding process re-registers at startup anyway.
func (d *Driver) Flush() bool {
	ctx, cancel := d.opCtx()
	defer cancel()

	var cursor uint64
	for {
		keys, next, err := d.client.Scan(ctx, cursor, d.prefix+":*", 200).Result()
		if err != nil {
			d.logger.Error("metrics flush failed", "error", err)
			return false
		}
		if len(keys) > 0 {
			if err := d.client.Del(ctx, keys...).Err(); err != nil {
				d.logger.Error("metrics flush failed", "error", err)
				return false
			}
		}
		cursor = next
		if cursor == 0 {
			return true
		}
	}
}

// Close implements metrics.Driver.
func (d *Driver) Close() error {
	return d.client.Close()
}

// snapshot reads the stored state for every registered descriptor, any
// data written without registration (discovered from the key space),
// and the unique-tracking groups.
func (d *Driver) snapshot(ctx context.Context) (*metrics.Snapshot, error) {
	snap := metrics.NewSnapshot()

	for _, desc := range d.registry.Descriptors() {
		var err error
		switch desc.Kind {
		case metrics.KindCounter:
			snap.Counters[desc.Name], err = d.loadCounter(ctx, desc.Name)
		case metrics.KindGauge:
			snap.Gauges[desc.Name], err = d.loadGauge(ctx, desc.Name)
		case metrics.KindHistogram:
			snap.Histograms[desc.Name], err = d.loadHistogram(ctx, desc.Name)
		case metrics.KindSummary:
			snap.Summaries[desc.Name], err = d.loadSummary(ctx, desc.Name)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := d.discoverUnregistered(ctx, snap); err != nil {
		return nil, err
	}

	names, err := d.client.SMembers(ctx, d.uniqueNamesKey()).Result()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		keys, err := d.client.SMembers(ctx, d.uniqueKeySet(name)).Result()
		if err != nil {
			return nil, err
		}
		samples := make(map[string]uint64, len(keys))
		for _, key := range keys {
			count, err := d.client.SCard(ctx, d.uniqueSet(name, key)).Result()
			if err != nil {
				return nil, err
			}
			if count > 0 {
				samples[key] = uint64(count)
			}
		}
		if len(samples) > 0 {
			snap.Unique[name] = samples
		}
	}

	return snap, nil
}

// loadCounter reads every sample stored under one counter hash.
func (d *Driver) loadCounter(ctx context.Context, name string) (map[string]uint64, error) {
	fields, err := d.client.HGetAll(ctx, d.counterHash(name)).Result()
	if err != nil {
		return nil, err
	}
	samples := make(map[string]uint64, len(fields))
	for key, raw := range fields {
		v, _ := strconv.ParseUint(raw, 10, 64)
		samples[key] = v
	}
	return samples, nil
}

// loadGauge reads every sample stored under one gauge hash.
func (d *Driver) loadGauge(ctx context.Context, name string) (map[string]float64, error) {
	fields, err := d.client.HGetAll(ctx, d.gaugeHash(name)).Result()
	if err != nil {
		return nil, err
	}
	samples := make(map[string]float64, len(fields))
	for key, raw := range fields {
		v, _ := strconv.ParseFloat(raw, 64)
		samples[key] = v
	}
	return samples, nil
}

// loadHistogram rebuilds accumulator data for every label combination
// recorded in the histogram's key set.
func (d *Driver) loadHistogram(ctx context.Context, name string) (map[string]metrics.HistogramData, error) {
	keys, err := d.client.SMembers(ctx, d.histogramKeySet(name)).Result()
	if err != nil {
		return nil, err
	}
	samples := make(map[string]metrics.HistogramData, len(keys))
	for _, key := range keys {
		fields, err := d.client.HGetAll(ctx, d.histogramHash(name, key)).Result()
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			continue
		}
		samples[key] = decodeHistogram(fields)
	}
	return samples, nil
}

// loadSummary reads count and sum for every label combination recorded
// in the summary's key set.
func (d *Driver) loadSummary(ctx context.Context, name string) (map[string]metrics.SummaryData, error) {
	keys, err := d.client.SMembers(ctx, d.summaryKeySet(name)).Result()
	if err != nil {
		return nil, err
	}
	samples := make(map[string]metrics.SummaryData, len(keys))
	for _, key := range keys {
		fields, err := d.client.HGetAll(ctx, d.summaryHash(name, key)).Result()
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			continue
		}
		count, _ := strconv.ParseUint(fields["count"], 10, 64)
		sum, _ := strconv.ParseFloat(fields["sum"], 64)
		samples[key] = metrics.SummaryData{Count: count, Sum: sum}
	}
	return samples, nil
}

// discoverUnregistered walks the key space for metric data written
// without a local descriptor. The store is shared, so another process
// may have written metrics this one never registered; they still have
// to appear in the exposition.
func (d *Driver) discoverUnregistered(ctx context.Context, snap *metrics.Snapshot) error {
	counterKeys, err := d.scanKeys(ctx, d.prefix+":counter:*")
	if err != nil {
		return err
	}
	for _, key := range counterKeys {
		name := strings.TrimPrefix(key, d.prefix+":counter:")
		if _, ok := snap.Counters[name]; ok {
			continue
		}
		samples, err := d.loadCounter(ctx, name)
		if err != nil {
			return err
		}
		if len(samples) > 0 {
			snap.Counters[name] = samples
		}
	}

	gaugeKeys, err := d.scanKeys(ctx, d.prefix+":gauge:*")
	if err != nil {
		return err
	}
	for _, key := range gaugeKeys {
		name := strings.TrimPrefix(key, d.prefix+":gauge:")
		if _, ok := snap.Gauges[name]; ok {
			continue
		}
		samples, err := d.loadGauge(ctx, name)
		if err != nil {
			return err
		}
		if len(samples) > 0 {
			snap.Gauges[name] = samples
		}
	}

	// Histograms and summaries are discovered through their key sets;
	// per-label hashes and summary value lists never end in ":keys".
	histKeys, err := d.scanKeys(ctx, d.prefix+":histogram:*")
	if err != nil {
		return err
	}
	for _, key := range histKeys {
		if !strings.HasSuffix(key, ":keys") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(key, d.prefix+":histogram:"), ":keys")
		if _, ok := snap.Histograms[name]; ok {
			continue
		}
		samples, err := d.loadHistogram(ctx, name)
		if err != nil {
			return err
		}
		if len(samples) > 0 {
			snap.Histograms[name] = samples
		}
	}

	summaryKeys, err := d.scanKeys(ctx, d.prefix+":summary:*")
	if err != nil {
		return err
	}
	for _, key := range summaryKeys {
		if !strings.HasSuffix(key, ":keys") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(key, d.prefix+":summary:"), ":keys")
		if _, ok := snap.Summaries[name]; ok {
			continue
		}
		samples, err := d.loadSummary(ctx, name)
		if err != nil {
			return err
		}
		if len(samples) > 0 {
			snap.Summaries[name] = samples
		}
	}

	return nil
}

// scanKeys collects every key matching pattern with the same cursor
// walk Flush uses.
func (d *Driver) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := d.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// summaryRetention mirrors the engine default for raw summary values.
const summaryRetention = 1000

// decodeHistogram rebuilds accumulator data from hash fields.
func decodeHistogram(fields map[string]string) metrics.HistogramData {
	count, _ := strconv.ParseUint(fields["count"], 10, 64)
	sum, _ := strconv.ParseFloat(fields["sum"], 64)
	data := metrics.HistogramData{
		Count:        count,
		Sum:          sum,
		Buckets:      decodeBounds(fields["buckets"]),
		BucketCounts: make(map[float64]uint64),
	}
	for field, raw := range fields {
		if !strings.HasPrefix(field, "b:") {
			continue
		}
		bound, ok := parseBound(field[2:])
		if !ok {
			continue
		}
		v, _ := strconv.ParseUint(raw, 10, 64)
		data.BucketCounts[bound] = v
	}
	return data
}

// encodeBounds serializes a bucket list for the "buckets" hash field.
func encodeBounds(bounds []float64) string {
	parts := make([]string, len(bounds))
	for i, b := range bounds {
		parts[i] = formatBound(b)
	}
	return strings.Join(parts, ",")
}

// decodeBounds parses the "buckets" hash field.
func decodeBounds(raw string) []float64 {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	bounds := make([]float64, 0, len(parts))
	for _, p := range parts {
		if b, ok := parseBound(p); ok {
			bounds = append(bounds, b)
		}
	}
	return bounds
}

// formatBound renders a bucket upper bound as a stable field token.
func formatBound(b float64) string {
	if math.IsInf(b, 1) {
		return "+Inf"
	}
	return strconv.FormatFloat(b, 'g', -1, 64)
}

// parseBound is the inverse of formatBound.
func parseBound(raw string) (float64, bool) {
	if raw == "+Inf" {
		return math.Inf(1), true
	}
	b, err := strconv.ParseFloat(raw, 64)
	return b, err == nil
}

// bucketFor returns the smallest bound covering value. bounds always
// ends with +Inf, so there is always a match.
func bucketFor(bounds []float64, value float64) float64 {
	for _, b := range bounds {
		if value <= b {
			return b
		}
	}
	return math.Inf(1)
}

// bucketsFor resolves the bucket set: registered buckets win, then the
// caller-supplied list, then the engine default.
func (d *Driver) bucketsFor(name string, override []float64) []float64 {
	if desc := d.registry.Lookup(name); desc != nil && desc.Kind == metrics.KindHistogram && len(desc.Buckets) > 0 {
		return desc.Buckets
	}
	return metrics.NormalizeBuckets(override)
}

// canonicalName normalizes a metric name, logging corrections.
func (d *Driver) canonicalName(name string) string {
	normalized, diags := metrics.ValidateMetricName(name)
	d.logDiags(diags)
	return normalized
}

// labelKey encodes labels, logging corrections.
func (d *Driver) labelKey(labels metrics.Labels) string {
	key, diags := metrics.GenerateLabelKey(labels)
	if len(diags) > 0 {
		d.logDiags(diags)
	}
	return key
}

// hashFloat reads a float hash field, 0 on any failure.
func (d *Driver) hashFloat(hash, field string) float64 {
	ctx, cancel := d.opCtx()
	defer cancel()
	raw, err := d.client.HGet(ctx, hash, field).Result()
	if err != nil {
		return 0
	}
	v, _ := strconv.ParseFloat(raw, 64)
	return v
}

// hashUint reads an integer hash field, 0 on any failure.
func (d *Driver) hashUint(hash, field string) uint64 {
	ctx, cancel := d.opCtx()
	defer cancel()
	raw, err := d.client.HGet(ctx, hash, field).Result()
	if err != nil {
		return 0
	}
	v, _ := strconv.ParseUint(raw, 10, 64)
	return v
}

// touch applies the configured TTL to a key.
func (d *Driver) touch(ctx context.Context, key string) {
	if d.ttl > 0 {
		d.client.Expire(ctx, key, d.ttl)
	}
}

// opCtx bounds one store round-trip.
func (d *Driver) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.opTimeout)
}

// logDiags routes validation diagnostics to the driver logger.
func (d *Driver) logDiags(diags []metrics.Diagnostic) {
	metrics.LogDiagnostics(d.logger, diags)
}

// logOpError reports a swallowed hot-path failure with full context.
func (d *Driver) logOpError(op, metric string, err error) {
	d.logger.Error("metrics operation failed",
		"op", op,
		"metric", metric,
		"error", err,
	)
}

func (d *Driver) counterHash(name string) string {
	return d.prefix + ":counter:" + name
}

func (d *Driver) gaugeHash(name string) string {
	return d.prefix + ":gauge:" + name
}

func (d *Driver) histogramKeySet(name string) string {
	return d.prefix + ":histogram:" + name + ":keys"
}

func (d *Driver) histogramHash(name, labelKey string) string {
	return d.prefix + ":histogram:" + name + ":" + labelKey
}

func (d *Driver) summaryKeySet(name string) string {
	return d.prefix + ":summary:" + name + ":keys"
}

func (d *Driver) summaryHash(name, labelKey string) string {
	return d.prefix + ":summary:" + name + ":" + labelKey
}

func (d *Driver) uniqueNamesKey() string {
	return d.prefix + ":unique:names"
}

func (d *Driver) uniqueKeySet(name string) string {
	return d.prefix + ":unique:" + name + ":keys"
}

func (d *Driver) uniqueSet(name, labelKey string) string {
	return d.prefix + ":unique:" + name + ":" + labelKey
}
