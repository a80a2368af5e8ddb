package routing

import (
	"errors"
	"fmt"
)

// ErrNoRoute is returned when no provider serves the requested path.
// Use errors.Is() to match wrapped RouteErrors.
var ErrNoRoute = errors.New("no route for path")

// RouteError is returned when the router cannot map a request to any
// configured provider backend. It is terminal for the request: the
// gateway responds 404 without contacting an upstream.
type RouteError struct {
	// Path is the inbound path that matched no provider.
	Path string

	// Method is the HTTP method of the request.
	Method string
}

// Error implements the error interface.
func (e *RouteError) Error() string {
	return fmt.Sprintf("no provider route for %s %s", e.Method, e.Path)
}

// Is implements error matching for errors.Is().
func (e *RouteError) Is(target error) bool {
	return target == ErrNoRoute
}
