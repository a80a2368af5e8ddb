package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  listen_address: \"0.0.0.0:9000\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9000" {
		t.Errorf("listen_address = %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("write_timeout = %v", cfg.Server.WriteTimeout)
	}
	if cfg.Providers.OpenAI.BaseURL != DefaultOpenAIBaseURL {
		t.Errorf("openai base_url = %q", cfg.Providers.OpenAI.BaseURL)
	}
	if cfg.Providers.Anthropic.Version != DefaultAnthropicVersion {
		t.Errorf("anthropic version = %q", cfg.Providers.Anthropic.Version)
	}
	if !cfg.Filters.Enabled {
		t.Error("filters should default to enabled")
	}
	if cfg.Filters.MaxTokens != DefaultMaxTokens {
		t.Errorf("max_tokens = %d", cfg.Filters.MaxTokens)
	}
	if len(cfg.Filters.AllowedModels) == 0 {
		t.Error("allowed_models should default to the built-in list")
	}
	if cfg.Audit.Buffer != DefaultAuditBuffer {
		t.Errorf("audit buffer = %d", cfg.Audit.Buffer)
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("log format = %q", cfg.Telemetry.Logging.Format)
	}
}

func TestLoadConfigExplicitEmptyAllowlist(t *testing.T) {
	path := writeConfig(t, "filters:\n  allowed_models: []\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Filters.AllowedModels == nil || len(cfg.Filters.AllowedModels) != 0 {
		t.Errorf("allowed_models = %v, want explicit empty list preserved", cfg.Filters.AllowedModels)
	}
}

func TestLoadConfigDisableFilters(t *testing.T) {
	path := writeConfig(t, "filters:\n  enabled: false\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Filters.Enabled {
		t.Error("explicit enabled: false should stick")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("FIREGATE_OPENAI_API_KEY", "sk-from-env")
	t.Setenv("FIREGATE_LISTEN_ADDRESS", "127.0.0.1:9999")
	t.Setenv("FIREGATE_MOCK_RESPONSES", "true")
	t.Setenv("FIREGATE_FIRST_BYTE_TIMEOUT", "15s")

	path := writeConfig(t, "providers:\n  openai:\n    api_key: \"sk-from-file\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Providers.OpenAI.APIKey != "sk-from-env" {
		t.Errorf("api_key = %q, env must win over file", cfg.Providers.OpenAI.APIKey)
	}
	if cfg.Server.ListenAddress != "127.0.0.1:9999" {
		t.Errorf("listen_address = %q", cfg.Server.ListenAddress)
	}
	if !cfg.MockResponses {
		t.Error("mock_responses override not applied")
	}
	if cfg.Relay.FirstByteTimeout != 15*time.Second {
		t.Errorf("first_byte_timeout = %v", cfg.Relay.FirstByteTimeout)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a mapping\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.ListenAddress = "no-port"
	cfg.Providers.OpenAI.BaseURL = "ftp://example.com/v1"
	cfg.Filters.RateLimit = -1
	cfg.Telemetry.Logging.Level = "loud"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	verr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if len(verr.Errors) != 4 {
		t.Errorf("got %d errors, want all 4: %v", len(verr.Errors), err)
	}
	for _, want := range []string{
		"server.listen_address",
		"providers.openai.base_url",
		"filters.rate_limit",
		"telemetry.logging.level",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing field %s", err.Error(), want)
		}
	}
}

func TestValidateCerebrasModelRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Providers.Cerebras.APIKey = "csk-test"
	cfg.Providers.Cerebras.DefaultModel = ""

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for missing Cerebras default model")
	}
}

func TestValidateWatchRequiresFile(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Filters.WatchPatterns = true
	cfg.Filters.PatternsFile = ""

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for watch_patterns without patterns_file")
	}
}

func TestValidateDefaultConfigIsValid(t *testing.T) {
	if err := Validate(NewDefaultConfig()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
