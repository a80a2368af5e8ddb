// Package audit records one structured entry per proxied request.
//
// Recording is fire-and-forget relative to the response path: records
// go into a buffered channel drained by a background worker, and a
// full buffer drops the record with a self-logged warning rather than
// blocking the client. Sensitive headers and body fields are replaced
// with a fixed mask before a record leaves this package; the mask is
// unconditional and independent of verbosity. Verbosity only controls
// whether prompt text appears at all.
//
// Two sinks are provided: a structured slog sink, always on, and an
// optional append-only SQLite store with cron-scheduled retention
// pruning.
package audit
