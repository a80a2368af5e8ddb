// Package types contains the request, response, and error types shared by
// the gateway pipeline components.
//
// These types sit below routing, filters, providers, and relay so that the
// leaf packages can exchange data without importing the gateway package
// itself. A Request is owned by a single pipeline invocation and is never
// shared across requests.
package types
