// Pulse is a Prometheus-compatible metrics collection toolkit with
// interchangeable storage backends.
//
// The pulse command is the operational companion to the library: it
// connects to the configured backend and inspects or clears the stored
// metric data.
//
// Usage:
//
//	# Print the exposition body from the configured backend
//	pulse dump --config /path/to/config.yaml
//
//	# Clear all accumulated metric data
//	pulse flush --config /path/to/config.yaml
//
//	# Show version information
//	pulse version
package main

func main() {
	Execute()
}
