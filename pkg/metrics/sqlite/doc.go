// Package sqlite implements the metrics storage-driver contract on a
// local SQLite file, for single-instance deployments where metric data
// must survive process restarts.
//
// # Schema
//
//   - descriptors          one row per registered metric, JSON-encoded
//     label names, buckets and quantiles
//   - counters             (name, label_key) -> value, upsert-incremented
//   - gauges               (name, label_key) -> value
//   - histograms           (name, label_key) -> count, sum, bucket list
//   - histogram_buckets    (name, label_key, bound) -> occurrence count
//   - summaries            (name, label_key) -> count, sum
//   - summary_values       bounded ring of raw summary observations
//   - unique_identifiers   (name, label_key, identifier), INSERT OR IGNORE
//
// Descriptors are persisted and reloaded at open, so a restarted process
// renders HELP and TYPE lines for metrics it has not re-registered yet.
//
// The database runs in WAL mode with a single writer connection. All
// increments are SQL upserts, so the usual read-modify-write race does
// not arise.
package sqlite
