package routing

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"firegate-hq/firegate/pkg/config"
	"firegate-hq/firegate/pkg/gateway/types"
)

func testProviders(cerebrasKey string) config.ProvidersConfig {
	return config.ProvidersConfig{
		OpenAI: config.OpenAIConfig{
			BaseURL: "https://api.openai.com/v1",
		},
		Anthropic: config.AnthropicConfig{
			BaseURL: "https://api.anthropic.com",
		},
		Cerebras: config.CerebrasConfig{
			BaseURL:      "https://api.cerebras.ai/v1",
			APIKey:       cerebrasKey,
			DefaultModel: "llama-3.3-70b",
		},
	}
}

func routeRequest(t *testing.T, rt *Router, path, body string) (*Decision, error) {
	t.Helper()
	r := httptest.NewRequest("POST", path, strings.NewReader(body))
	req := types.NewRequest(r, []byte(body), "req-test")
	return rt.Route(req)
}

func TestRouterAnthropicPrefix(t *testing.T) {
	// The explicit prefix wins even when a Cerebras credential would
	// otherwise claim a completions path.
	rt := NewRouter(testProviders("csk-key"))

	dec, err := routeRequest(t, rt, "/anthropic/v1/messages", `{"model":"claude-3-opus-20240229"}`)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if dec.Provider != ProviderAnthropic {
		t.Errorf("Provider = %s, want %s", dec.Provider, ProviderAnthropic)
	}
	if dec.UpstreamPath != "/v1/messages" {
		t.Errorf("UpstreamPath = %s, want /v1/messages", dec.UpstreamPath)
	}
	if dec.Model != "claude-3-opus-20240229" {
		t.Errorf("Model = %s, want claude-3-opus-20240229", dec.Model)
	}
	if dec.Remapped() {
		t.Error("Remapped() = true, want false")
	}
}

func TestRouterCerebrasRedirect(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		cerebrasKey  string
		wantProvider string
		wantModel    string
	}{
		{
			name:         "chat completions with credential",
			path:         "/v1/chat/completions",
			cerebrasKey:  "csk-key",
			wantProvider: ProviderCerebras,
			wantModel:    "llama-3.3-70b",
		},
		{
			name:         "legacy completions with credential",
			path:         "/v1/completions",
			cerebrasKey:  "csk-key",
			wantProvider: ProviderCerebras,
			wantModel:    "llama-3.3-70b",
		},
		{
			name:         "chat completions without credential",
			path:         "/v1/chat/completions",
			cerebrasKey:  "",
			wantProvider: ProviderOpenAI,
			wantModel:    "gpt-4o",
		},
		{
			name:         "non-completions path with credential",
			path:         "/v1/embeddings",
			cerebrasKey:  "csk-key",
			wantProvider: ProviderOpenAI,
			wantModel:    "gpt-4o",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := NewRouter(testProviders(tt.cerebrasKey))
			dec, err := routeRequest(t, rt, tt.path, `{"model":"gpt-4o"}`)
			if err != nil {
				t.Fatalf("Route() error = %v", err)
			}
			if dec.Provider != tt.wantProvider {
				t.Errorf("Provider = %s, want %s", dec.Provider, tt.wantProvider)
			}
			if dec.Model != tt.wantModel {
				t.Errorf("Model = %s, want %s", dec.Model, tt.wantModel)
			}
			if dec.RequestedModel != "gpt-4o" {
				t.Errorf("RequestedModel = %s, want gpt-4o", dec.RequestedModel)
			}
		})
	}
}

func TestRouterRemappedPreservesRequestedModel(t *testing.T) {
	rt := NewRouter(testProviders("csk-key"))

	dec, err := routeRequest(t, rt, "/v1/chat/completions", `{"model":"gpt-4o"}`)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if !dec.Remapped() {
		t.Error("Remapped() = false, want true")
	}
	if dec.RequestedModel != "gpt-4o" {
		t.Errorf("RequestedModel = %s, want gpt-4o", dec.RequestedModel)
	}
	if dec.Model != "llama-3.3-70b" {
		t.Errorf("Model = %s, want llama-3.3-70b", dec.Model)
	}
}

func TestRouterNoRoute(t *testing.T) {
	rt := NewRouter(testProviders(""))

	for _, path := range []string{"/", "/health", "/v2/things", "/anthropicx/v1/messages"} {
		t.Run(path, func(t *testing.T) {
			_, err := routeRequest(t, rt, path, `{}`)
			if err == nil {
				t.Fatal("Route() error = nil, want RouteError")
			}
			if !errors.Is(err, ErrNoRoute) {
				t.Errorf("errors.Is(err, ErrNoRoute) = false for %v", err)
			}
			var routeErr *RouteError
			if !errors.As(err, &routeErr) {
				t.Fatalf("error is not *RouteError: %v", err)
			}
			if routeErr.Path != path {
				t.Errorf("RouteError.Path = %s, want %s", routeErr.Path, path)
			}
		})
	}
}
