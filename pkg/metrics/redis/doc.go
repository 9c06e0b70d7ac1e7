// Package redis implements the metrics storage-driver contract against a
// Redis server, for deployments where several processes share one metric
// store.
//
// # Data Layout
//
// All keys carry a configurable prefix (default "pulse"):
//
//   - <prefix>:counter:<name>          hash: label key -> value
//   - <prefix>:gauge:<name>            hash: label key -> value
//   - <prefix>:histogram:<name>:keys   set of label keys
//   - <prefix>:histogram:<name>:<key>  hash: count, sum, buckets, b:<bound>
//   - <prefix>:summary:<name>:keys     set of label keys
//   - <prefix>:summary:<name>:<key>    hash: count, sum
//   - <prefix>:unique:names            set of unique-tracking metric names
//   - <prefix>:unique:<name>:keys      set of label keys
//   - <prefix>:unique:<name>:<key>     set of seen identifiers
//
// # Atomicity
//
// Counters map to HINCRBY, sums to HINCRBYFLOAT, unique tracking to SADD,
// so concurrent writers from any number of processes cannot corrupt a
// value. A configurable per-key TTL lets unique-tracking sets age out;
// expiry is delegated entirely to Redis.
//
// Metric metadata (descriptors) stays in-process: each embedding process
// registers its own metrics at startup, as with the in-memory driver.
package redis
