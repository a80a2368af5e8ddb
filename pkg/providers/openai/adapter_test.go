package openai

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"firegate-hq/firegate/pkg/config"
	"firegate-hq/firegate/pkg/gateway/types"
	"firegate-hq/firegate/pkg/providers"
	"firegate-hq/firegate/pkg/routing"
)

func newAdapter(apiKey, orgID string) *Adapter {
	return New(config.OpenAIConfig{
		BaseURL: "https://api.openai.com/v1",
		APIKey:  apiKey,
		OrgID:   orgID,
	}, providers.NewBrowserHeaders(nil, []string{"test-agent/1.0"}))
}

func buildCall(t *testing.T, a *Adapter, setup func(*types.Request)) *providers.CallSpec {
	t.Helper()
	body := `{"model":"gpt-4o","messages":[{"role":"user","content":"hi"}]}`
	r := httptest.NewRequest("POST", "/v1/chat/completions?foo=bar", strings.NewReader(body))
	req := types.NewRequest(r, []byte(body), "req-test")
	if setup != nil {
		setup(req)
	}

	dec := &routing.Decision{
		Provider:       routing.ProviderOpenAI,
		BaseURL:        "https://api.openai.com/v1",
		UpstreamPath:   "/v1/chat/completions",
		RequestedModel: "gpt-4o",
		Model:          "gpt-4o",
	}

	spec, err := a.BuildCall(req, dec)
	if err != nil {
		t.Fatalf("BuildCall() error = %v", err)
	}
	return spec
}

func TestBuildCallPassThrough(t *testing.T) {
	a := newAdapter("sk-config", "")
	spec := buildCall(t, a, nil)

	if spec.URL != "https://api.openai.com/v1/chat/completions?foo=bar" {
		t.Errorf("URL = %s", spec.URL)
	}
	if spec.Method != "POST" {
		t.Errorf("Method = %s, want POST", spec.Method)
	}
	if !bytes.Contains(spec.Body, []byte(`"gpt-4o"`)) {
		t.Error("body not forwarded unmodified")
	}
	if got := spec.Header.Get("Authorization"); got != "Bearer sk-config" {
		t.Errorf("Authorization = %q, want configured key", got)
	}
	if spec.Header.Get("User-Agent") != "test-agent/1.0" {
		t.Error("browser emulation headers not applied")
	}
	if spec.Compat {
		t.Error("Compat = true for pass-through call")
	}
}

func TestBuildCallClientAuthWins(t *testing.T) {
	a := newAdapter("sk-config", "")
	spec := buildCall(t, a, func(req *types.Request) {
		req.Header.Set("Authorization", "Bearer sk-client")
	})

	if got := spec.Header.Get("Authorization"); got != "Bearer sk-client" {
		t.Errorf("Authorization = %q, want client key", got)
	}
}

func TestBuildCallOrgPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		clientOrg string
		configOrg string
		wantOrg   string
		wantSet   bool
	}{
		{"client org wins", "org-client", "org-config", "org-client", true},
		{"config org fallback", "", "org-config", "org-config", true},
		{"neither omits header", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAdapter("sk-config", tt.configOrg)
			spec := buildCall(t, a, func(req *types.Request) {
				if tt.clientOrg != "" {
					req.Header.Set(providers.OrgHeader, tt.clientOrg)
				}
			})

			_, present := spec.Header[providers.OrgHeader]
			if present != tt.wantSet {
				t.Fatalf("org header present = %v, want %v", present, tt.wantSet)
			}
			if got := spec.Header.Get(providers.OrgHeader); got != tt.wantOrg {
				t.Errorf("org header = %q, want %q", got, tt.wantOrg)
			}
		})
	}
}

func TestBuildCallForwardsAccept(t *testing.T) {
	a := newAdapter("sk-config", "")
	spec := buildCall(t, a, func(req *types.Request) {
		req.Header.Set("Accept", "text/event-stream")
	})

	if got := spec.Header.Get("Accept"); got != "text/event-stream" {
		t.Errorf("Accept = %q, want text/event-stream", got)
	}
}
