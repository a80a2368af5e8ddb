package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 10 * time.Minute
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// CORS defaults
	DefaultCORSEnabled = true
	DefaultCORSMaxAge  = 3600

	// Provider defaults
	DefaultOpenAIBaseURL    = "https://api.openai.com/v1"
	DefaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	DefaultAnthropicVersion = "2023-06-01"
	DefaultCerebrasBaseURL  = "https://api.cerebras.ai/v1"
	DefaultCerebrasModel    = "llama-3.3-70b"

	// Relay defaults
	DefaultFirstByteTimeout = 60 * time.Second
	DefaultResponseTimeout  = 5 * time.Minute
	DefaultMaxIdleConns     = 100
	DefaultIdleConnTimeout  = 90 * time.Second

	// Filter defaults
	DefaultFiltersEnabled = true
	DefaultMaxTokens      = 8192
	DefaultRateLimit      = 100
	DefaultRateWindow     = time.Minute
	DefaultCharsPerToken  = 4.0

	// Audit defaults
	DefaultAuditBuffer   = 1024
	DefaultRetention     = 30 * 24 * time.Hour
	DefaultPruneSchedule = "0 3 * * *"

	// Telemetry defaults
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "firegate"
	DefaultMetricsPath      = "/metrics"
)

// DefaultAllowedModels is the built-in model allowlist. An explicitly empty
// allowed_models list in the config file disables the restriction.
var DefaultAllowedModels = []string{
	"gpt-3.5-turbo", "gpt-4", "gpt-4-turbo", "gpt-4.1", "gpt-4o", "gpt-4o-mini",
	"text-embedding-ada-002",
	"claude-3-opus-20240229", "claude-3-sonnet-20240229", "claude-3-haiku-20240307",
	"claude-3-5-sonnet-20240620", "claude-3-7-sonnet-20250219",
}

// DefaultSensitiveKeys is the built-in redaction set for audit records.
var DefaultSensitiveKeys = []string{
	"authorization", "x-api-key", "api-key", "api_key", "apikey",
	"token", "secret", "openai-organization",
}

// ApplyDefaults fills zero-valued fields with their documented defaults.
// It is called by LoadConfig before validation; calling it on an already
// defaulted Config is a no-op.
func ApplyDefaults(cfg *Config) {
	// Server
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.CORS.AllowedOrigins == nil {
		cfg.Server.CORS.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.CORS.AllowedHeaders == nil {
		cfg.Server.CORS.AllowedHeaders = []string{
			"Authorization", "Content-Type", "X-Request-ID",
			"OpenAI-Organization", "x-api-key", "anthropic-version",
		}
	}
	if cfg.Server.CORS.MaxAge == 0 {
		cfg.Server.CORS.MaxAge = DefaultCORSMaxAge
	}

	// Providers
	if cfg.Providers.OpenAI.BaseURL == "" {
		cfg.Providers.OpenAI.BaseURL = DefaultOpenAIBaseURL
	}
	if cfg.Providers.Anthropic.BaseURL == "" {
		cfg.Providers.Anthropic.BaseURL = DefaultAnthropicBaseURL
	}
	if cfg.Providers.Anthropic.Version == "" {
		cfg.Providers.Anthropic.Version = DefaultAnthropicVersion
	}
	if cfg.Providers.Cerebras.BaseURL == "" {
		cfg.Providers.Cerebras.BaseURL = DefaultCerebrasBaseURL
	}
	if cfg.Providers.Cerebras.DefaultModel == "" {
		cfg.Providers.Cerebras.DefaultModel = DefaultCerebrasModel
	}

	// Relay
	if cfg.Relay.FirstByteTimeout == 0 {
		cfg.Relay.FirstByteTimeout = DefaultFirstByteTimeout
	}
	if cfg.Relay.ResponseTimeout == 0 {
		cfg.Relay.ResponseTimeout = DefaultResponseTimeout
	}
	if cfg.Relay.MaxIdleConns == 0 {
		cfg.Relay.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.Relay.IdleConnTimeout == 0 {
		cfg.Relay.IdleConnTimeout = DefaultIdleConnTimeout
	}

	// Filters. AllowedModels distinguishes nil (use defaults) from an
	// explicitly empty list (no restriction).
	if cfg.Filters.AllowedModels == nil {
		cfg.Filters.AllowedModels = DefaultAllowedModels
	}
	if cfg.Filters.MaxTokens == 0 {
		cfg.Filters.MaxTokens = DefaultMaxTokens
	}
	if cfg.Filters.RateLimit == 0 {
		cfg.Filters.RateLimit = DefaultRateLimit
	}
	if cfg.Filters.RateWindow == 0 {
		cfg.Filters.RateWindow = DefaultRateWindow
	}
	if cfg.Filters.CharsPerToken == 0 {
		cfg.Filters.CharsPerToken = DefaultCharsPerToken
	}

	// Audit
	if cfg.Audit.Buffer == 0 {
		cfg.Audit.Buffer = DefaultAuditBuffer
	}
	if cfg.Audit.SensitiveKeys == nil {
		cfg.Audit.SensitiveKeys = DefaultSensitiveKeys
	}
	if cfg.Audit.Retention == 0 {
		cfg.Audit.Retention = DefaultRetention
	}
	if cfg.Audit.PruneSchedule == "" {
		cfg.Audit.PruneSchedule = DefaultPruneSchedule
	}

	// Telemetry
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}

// NewDefaultConfig returns a Config with every default applied. Useful for
// tests and for running without a config file.
func NewDefaultConfig() *Config {
	cfg := newSeedConfig()
	ApplyDefaults(cfg)
	return cfg
}

// newSeedConfig returns a Config whose boolean flags default to true.
// YAML unmarshaling into this seed leaves absent fields at their seeded
// value, so only an explicit `enabled: false` disables a subsystem.
func newSeedConfig() *Config {
	cfg := &Config{}
	cfg.Filters.Enabled = DefaultFiltersEnabled
	cfg.Server.CORS.Enabled = DefaultCORSEnabled
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	return cfg
}
