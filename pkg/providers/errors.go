package providers

import (
	"fmt"
)

// AdapterError is returned when provider-shape translation is
// impossible: a malformed body that must be transformed, or an upstream
// response the adapter cannot map back. It surfaces to the client as a
// 502 and is never silently swallowed.
type AdapterError struct {
	// Provider is the backend whose adapter failed.
	Provider string

	// Message describes the translation failure.
	Message string

	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *AdapterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("adapter %q: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("adapter %q: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *AdapterError) Unwrap() error {
	return e.Cause
}
