package audit

import (
	"time"
)

// Record is one audit entry, created after the relay completes
// (success or failure) or after a filter denial.
type Record struct {
	// RequestID correlates the record with the request's log entries.
	RequestID string

	// Timestamp is when the request completed.
	Timestamp time.Time

	// Method and Path describe the inbound call.
	Method string
	Path   string

	// Provider is the routed backend, empty when routing failed.
	Provider string

	// RequestedModel is the model the client asked for.
	RequestedModel string

	// Model is the model actually forwarded upstream.
	Model string

	// Headers is the redacted inbound header set.
	Headers map[string]string

	// BodySummary is the redacted request body summary.
	BodySummary string

	// Status is the HTTP status returned to the client.
	Status int

	// ResponseSummary is the redacted response body summary, or a
	// "streamed, N chunks" marker for streamed responses.
	ResponseSummary string

	// Streamed reports streaming delivery; Chunks is the number of
	// chunks forwarded before completion or truncation.
	Streamed bool
	Chunks   int

	// Duration is the wall time of the whole exchange.
	Duration time.Duration

	// Filter names the denying filter, if the request was denied.
	Filter string

	// Error describes the failure, if any. Full causes live only
	// here, never in the client response.
	Error string
}
