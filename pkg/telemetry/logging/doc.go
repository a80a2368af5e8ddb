// Package logging configures the process-wide structured logger and
// carries per-request log fields through context.
package logging
