package routing

import (
	"strings"

	"firegate-hq/firegate/pkg/config"
	"firegate-hq/firegate/pkg/gateway/types"
)

// Provider identifiers used in routing decisions, metrics labels, and
// audit records.
const (
	// ProviderOpenAI is the OpenAI-compatible backend.
	ProviderOpenAI = "openai"

	// ProviderAnthropic is the Anthropic backend.
	ProviderAnthropic = "anthropic"

	// ProviderCerebras is the Cerebras backend.
	ProviderCerebras = "cerebras"
)

// anthropicPrefix is the inbound path prefix that selects the Anthropic
// backend unconditionally.
const anthropicPrefix = "/anthropic"

// Decision is the outcome of routing a single request. It is derived once
// per request and immutable after creation.
type Decision struct {
	// Provider is the selected provider identifier.
	Provider string

	// BaseURL is the upstream base URL of the selected provider.
	BaseURL string

	// UpstreamPath is the path to request on the upstream, with any
	// provider selection prefix already stripped.
	UpstreamPath string

	// RequestedModel is the model the client asked for, unmodified.
	// Audit records carry this value even when the forwarded body
	// carries a remapped model.
	RequestedModel string

	// Model is the model the upstream will actually serve. Equal to
	// RequestedModel except under a Cerebras remap.
	Model string
}

// Remapped reports whether the forwarded model differs from the one the
// client requested.
func (d *Decision) Remapped() bool {
	return d.Model != d.RequestedModel
}

// Router maps inbound requests onto provider backends. Exactly three
// backends are known; selection depends only on the request path, the
// request body's model field, and static configuration.
type Router struct {
	providers config.ProvidersConfig
}

// NewRouter creates a router over the configured provider backends.
func NewRouter(providers config.ProvidersConfig) *Router {
	return &Router{providers: providers}
}

// Route derives the routing decision for a request. It returns a
// *RouteError when no backend serves the path.
func (rt *Router) Route(req *types.Request) (*Decision, error) {
	model := req.Model()

	if req.Path == anthropicPrefix || strings.HasPrefix(req.Path, anthropicPrefix+"/") {
		return &Decision{
			Provider:       ProviderAnthropic,
			BaseURL:        rt.providers.Anthropic.BaseURL,
			UpstreamPath:   strings.TrimPrefix(req.Path, anthropicPrefix),
			RequestedModel: model,
			Model:          model,
		}, nil
	}

	if rt.cerebrasEligible(req.Path) {
		return &Decision{
			Provider:       ProviderCerebras,
			BaseURL:        rt.providers.Cerebras.BaseURL,
			UpstreamPath:   req.Path,
			RequestedModel: model,
			Model:          rt.providers.Cerebras.DefaultModel,
		}, nil
	}

	if strings.HasPrefix(req.Path, "/v1/") {
		return &Decision{
			Provider:       ProviderOpenAI,
			BaseURL:        rt.providers.OpenAI.BaseURL,
			UpstreamPath:   req.Path,
			RequestedModel: model,
			Model:          model,
		}, nil
	}

	return nil, &RouteError{Path: req.Path, Method: req.Method}
}

// cerebrasEligible reports whether a path should be redirected to
// Cerebras. Redirection requires a configured Cerebras credential and a
// chat/completions-shaped path.
func (rt *Router) cerebrasEligible(path string) bool {
	if rt.providers.Cerebras.APIKey == "" {
		return false
	}
	return path == "/v1/chat/completions" || path == "/v1/completions"
}
