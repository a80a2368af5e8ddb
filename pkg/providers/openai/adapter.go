package openai

import (
	"net/http"

	"firegate-hq/firegate/pkg/config"
	"firegate-hq/firegate/pkg/gateway/types"
	"firegate-hq/firegate/pkg/providers"
	"firegate-hq/firegate/pkg/routing"
)

// referer is the console site sent with the browser-emulation header set.
const referer = "https://platform.openai.com/"

// Adapter is the OpenAI-compatible backend adapter.
type Adapter struct {
	cfg     config.OpenAIConfig
	browser *providers.BrowserHeaders
}

// New creates the OpenAI adapter.
func New(cfg config.OpenAIConfig, browser *providers.BrowserHeaders) *Adapter {
	return &Adapter{cfg: cfg, browser: browser}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return routing.ProviderOpenAI
}

// BuildCall prepares a pass-through upstream call. A client-supplied
// Authorization header takes precedence over the configured key; a
// missing key is forwarded as is and the upstream's 401 is relayed.
func (a *Adapter) BuildCall(req *types.Request, dec *routing.Decision) (*providers.CallSpec, error) {
	h := http.Header{}
	a.browser.Apply(h, referer)
	h.Set("Content-Type", "application/json")

	auth := req.Header.Get("Authorization")
	if auth == "" && a.cfg.APIKey != "" {
		auth = "Bearer " + a.cfg.APIKey
	}
	if auth != "" {
		h.Set("Authorization", auth)
	}

	providers.ApplyOrg(h, req.Header, a.cfg.OrgID)

	if accept := req.Header.Get("Accept"); accept != "" {
		h.Set("Accept", accept)
	}

	u := providers.JoinURL(a.cfg.BaseURL, dec.UpstreamPath)
	if req.Query != "" {
		u += "?" + req.Query
	}

	return &providers.CallSpec{
		Method:   req.Method,
		URL:      u,
		Header:   h,
		Body:     req.Body,
		Provider: a.Name(),
	}, nil
}

// AdaptResponse is the identity for this pass-through adapter.
func (a *Adapter) AdaptResponse(_ *providers.CallSpec, resp *types.UpstreamResponse) (*types.UpstreamResponse, error) {
	return resp, nil
}
