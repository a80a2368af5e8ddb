// Package server assembles and runs the proxy: the HTTP listener, the
// gateway pipeline with its middleware chain, the audit recorder and
// its sinks, the pattern-file watcher, and the metrics endpoint. It
// owns the lifecycle of all of them, including graceful shutdown.
package server
