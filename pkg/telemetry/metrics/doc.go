// Package metrics exposes Prometheus instrumentation for the gateway:
// request counts and latency per provider/model, filter denials per
// filter, and stream chunk counts.
package metrics
