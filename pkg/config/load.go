package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults and
// environment overrides, and validates the result.
//
// The loading sequence is:
//  1. Parse YAML into a seeded Config (boolean flags default on)
//  2. Apply default values
//  3. Apply FIREGATE_* environment overrides
//  4. Validate the final configuration
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := newSeedConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables always take precedence over file-based configuration; they are
// the expected channel for credentials.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("FIREGATE_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("FIREGATE_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("FIREGATE_OPENAI_API_KEY"); val != "" {
		cfg.Providers.OpenAI.APIKey = val
	}
	if val := os.Getenv("FIREGATE_OPENAI_ORG_ID"); val != "" {
		cfg.Providers.OpenAI.OrgID = val
	}
	if val := os.Getenv("FIREGATE_ANTHROPIC_API_KEY"); val != "" {
		cfg.Providers.Anthropic.APIKey = val
	}
	if val := os.Getenv("FIREGATE_CEREBRAS_API_KEY"); val != "" {
		cfg.Providers.Cerebras.APIKey = val
	}
	if val := os.Getenv("FIREGATE_MOCK_RESPONSES"); val != "" {
		cfg.MockResponses = val == "true" || val == "1"
	}
	if val := os.Getenv("FIREGATE_FIRST_BYTE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Relay.FirstByteTimeout = d
		}
	}
}
