package cerebras

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"firegate-hq/firegate/pkg/config"
	"firegate-hq/firegate/pkg/gateway/types"
	"firegate-hq/firegate/pkg/providers"
	"firegate-hq/firegate/pkg/routing"
)

// referer is the console site sent with the browser-emulation header set.
const referer = "https://cloud.cerebras.ai/"

// Adapter is the Cerebras backend adapter.
type Adapter struct {
	cfg     config.CerebrasConfig
	browser *providers.BrowserHeaders
}

// New creates the Cerebras adapter.
func New(cfg config.CerebrasConfig, browser *providers.BrowserHeaders) *Adapter {
	return &Adapter{cfg: cfg, browser: browser}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return routing.ProviderCerebras
}

// BuildCall remaps the model to the routed Cerebras model and rewrites
// the body into the shape Cerebras accepts.
func (a *Adapter) BuildCall(req *types.Request, dec *routing.Decision) (*providers.CallSpec, error) {
	body, err := transformBody(req.Body, dec.Model)
	if err != nil {
		return nil, &providers.AdapterError{
			Provider: a.Name(),
			Message:  "failed to transform request body",
			Cause:    err,
		}
	}

	h := http.Header{}
	a.browser.Apply(h, referer)
	h.Set("Content-Type", "application/json")
	if a.cfg.APIKey != "" {
		h.Set("Authorization", "Bearer "+a.cfg.APIKey)
	}
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
		Body:     body,
		Provider: a.Name(),
	}, nil
}

// AdaptResponse is the identity: Cerebras answers in the OpenAI shape.
func (a *Adapter) AdaptResponse(_ *providers.CallSpec, resp *types.UpstreamResponse) (*types.UpstreamResponse, error) {
	return resp, nil
}

// transformBody applies the three Cerebras rewrites: model remap,
// system folding, and tool strictness.
func transformBody(body []byte, model string) ([]byte, error) {
	if len(body) == 0 {
		return body, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("request body is not valid JSON")
	}

	out, err := sjson.SetBytes(body, "model", model)
	if err != nil {
		return nil, err
	}

	if out, err = foldSystem(out); err != nil {
		return nil, err
	}
	return applyToolStrictness(out)
}

// foldSystem moves a top-level system field to the front of the
// messages list as a system-role message. Cerebras rejects the bare
// parameter.
func foldSystem(body []byte) ([]byte, error) {
	system := gjson.GetBytes(body, "system")
	if !system.Exists() {
		return body, nil
	}

	messages := gjson.GetBytes(body, "messages")
	folded := []interface{}{map[string]interface{}{
		"role":    "system",
		"content": system.Value(),
	}}
	if messages.IsArray() {
		for _, m := range messages.Array() {
			folded = append(folded, m.Value())
		}
	}

	out, err := sjson.SetBytes(body, "messages", folded)
	if err != nil {
		return nil, err
	}
	return sjson.DeleteBytes(out, "system")
}

// applyToolStrictness forces parallel_tool_calls=false and strict=true
// on every tool function when tools are present, setting rather than
// erroring when the fields are absent.
func applyToolStrictness(body []byte) ([]byte, error) {
	tools := gjson.GetBytes(body, "tools")
	if !tools.IsArray() || len(tools.Array()) == 0 {
		return body, nil
	}

	out, err := sjson.SetBytes(body, "parallel_tool_calls", false)
	if err != nil {
		return nil, err
	}

	for i := range tools.Array() {
		path := fmt.Sprintf("tools.%d.function.strict", i)
		if gjson.GetBytes(out, path).Exists() {
			continue
		}
		if out, err = sjson.SetBytes(out, path, true); err != nil {
			return nil, err
		}
	}
	return out, nil
}
