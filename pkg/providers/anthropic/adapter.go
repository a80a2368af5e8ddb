package anthropic

import (
	"net/http"

	"firegate-hq/firegate/pkg/config"
	"firegate-hq/firegate/pkg/gateway/types"
	"firegate-hq/firegate/pkg/providers"
	"firegate-hq/firegate/pkg/routing"
)

// referer is the console site sent with the browser-emulation header set.
const referer = "https://console.anthropic.com/"

// compatPath is the OpenAI-shape endpoint the adapter translates to
// the native messages endpoint.
const compatPath = "/v1/chat/completions"

// messagesPath is Anthropic's native endpoint.
const messagesPath = "/v1/messages"

// Adapter is the Anthropic backend adapter.
type Adapter struct {
	cfg     config.AnthropicConfig
	browser *providers.BrowserHeaders
}

// New creates the Anthropic adapter.
func New(cfg config.AnthropicConfig, browser *providers.BrowserHeaders) *Adapter {
	return &Adapter{cfg: cfg, browser: browser}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return routing.ProviderAnthropic
}

// BuildCall prepares the upstream call. Native-shape requests pass
// through; the OpenAI chat path is translated to the messages endpoint.
func (a *Adapter) BuildCall(req *types.Request, dec *routing.Decision) (*providers.CallSpec, error) {
	path := dec.UpstreamPath
	body := req.Body
	compat := path == compatPath

	if compat {
		translated, err := translateRequest(req.Body)
		if err != nil {
			return nil, &providers.AdapterError{
				Provider: a.Name(),
				Message:  "failed to translate chat completion request",
				Cause:    err,
			}
		}
		body = translated
		path = messagesPath
	}

	h := http.Header{}
	a.browser.Apply(h, referer)
	h.Set("Content-Type", "application/json")

	apiKey := req.Header.Get("x-api-key")
	if apiKey == "" {
		apiKey = a.cfg.APIKey
	}
	if apiKey != "" {
		h.Set("x-api-key", apiKey)
	}

	version := req.Header.Get("anthropic-version")
	if version == "" {
		version = a.cfg.Version
	}
	h.Set("anthropic-version", version)

	if accept := req.Header.Get("Accept"); accept != "" {
		h.Set("Accept", accept)
	}

	u := providers.JoinURL(a.cfg.BaseURL, path)
	if req.Query != "" {
		u += "?" + req.Query
	}

	return &providers.CallSpec{
		Method:   req.Method,
		URL:      u,
		Header:   h,
		Body:     body,
		Provider: a.Name(),
		Compat:   compat,
	}, nil
}

// AdaptResponse translates a successful buffered compat response back
// into the OpenAI chat completion shape. Native responses and upstream
// error bodies pass through unchanged.
func (a *Adapter) AdaptResponse(spec *providers.CallSpec, resp *types.UpstreamResponse) (*types.UpstreamResponse, error) {
	if !spec.Compat || resp.IsStream() || resp.Status != http.StatusOK {
		return resp, nil
	}

	body, err := translateResponse(resp.Body)
	if err != nil {
		return nil, &providers.AdapterError{
			Provider: a.Name(),
			Message:  "failed to translate messages response",
			Cause:    err,
		}
	}
	resp.Body = body
	return resp, nil
}
