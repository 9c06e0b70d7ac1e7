// Package config handles YAML configuration for the metrics service:
// backend selection, driver settings, middleware exclusions, the flush
// schedule and logging.
//
// Loading follows a fixed sequence: parse the YAML file, apply
// defaults, optionally apply PULSE_* environment overrides, then
// validate. Environment variables always take precedence over the file.
package config
