package relay

import (
	"fmt"
)

// Relay failure kinds.
const (
	// KindConnect covers failures before any response arrived:
	// unreachable upstream, TLS errors, connection refused.
	KindConnect = "connect"

	// KindTimeout covers an expired first-byte or response deadline.
	KindTimeout = "timeout"

	// KindStream covers a mid-stream upstream failure after the status
	// was already committed to the client.
	KindStream = "stream"
)

// RelayError is returned when the upstream exchange fails. Connect and
// timeout failures map to 502/504; stream failures truncate the client
// response and are only visible in the audit log.
type RelayError struct {
	// Provider is the backend the exchange targeted.
	Provider string

	// Kind classifies the failure.
	Kind string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *RelayError) Error() string {
	return fmt.Sprintf("relay %s failure for provider %q: %v", e.Kind, e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *RelayError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the failure was a deadline expiry.
func (e *RelayError) Timeout() bool {
	return e.Kind == KindTimeout
}
