package providers

import (
	"net/http"

	"firegate-hq/firegate/pkg/gateway/types"
	"firegate-hq/firegate/pkg/routing"
)

// CallSpec describes a fully prepared upstream HTTP call: target URL,
// final header set (auth, org, browser emulation applied), and the
// transformed body. Built once per request by an adapter and executed
// by the relay engine.
type CallSpec struct {
	// Method is the HTTP method to use upstream.
	Method string

	// URL is the absolute upstream URL, including any query string.
	URL string

	// Header is the final outbound header set.
	Header http.Header

	// Body is the transformed request body. Nil for bodyless methods.
	Body []byte

	// Provider identifies the backend for logs, metrics, and audit.
	Provider string

	// Compat marks a call whose body was translated from the OpenAI
	// chat shape into the provider's native shape. The adapter
	// translates the buffered response back; streamed responses are
	// relayed in the provider's native framing.
	Compat bool
}

// Adapter translates between the client-facing wire shape and one
// provider's native shape.
type Adapter interface {
	// Name returns the provider identifier.
	Name() string

	// BuildCall prepares the upstream call for a routed request.
	BuildCall(req *types.Request, dec *routing.Decision) (*CallSpec, error)

	// AdaptResponse translates a buffered upstream response back into
	// the shape the client expects. Pass-through adapters return the
	// response unchanged. Streamed responses bypass this method.
	AdaptResponse(spec *CallSpec, resp *types.UpstreamResponse) (*types.UpstreamResponse, error)
}
