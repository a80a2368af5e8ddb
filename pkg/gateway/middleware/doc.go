// Package middleware provides the HTTP middleware chain wrapped around
// the gateway handler: request-id assignment, structured request
// logging, panic recovery, and CORS.
package middleware
