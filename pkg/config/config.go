package config

import "time"

// Config is the root configuration structure for Firegate.
type Config struct {
	// Server contains HTTP server configuration including listen address
	// and timeouts.
	Server ServerConfig `yaml:"server"`

	// Providers contains configuration for the three upstream providers.
	Providers ProvidersConfig `yaml:"providers"`

	// Relay contains configuration for the upstream relay engine.
	Relay RelayConfig `yaml:"relay"`

	// Filters contains configuration for the security filter chain.
	Filters FiltersConfig `yaml:"filters"`

	// Audit contains configuration for the audit logger and its storage.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// MockResponses makes the gateway answer completion endpoints with
	// canned responses without contacting any upstream. Intended for
	// integration tests and offline development.
	MockResponses bool `yaml:"mock_responses"`
}

// ServerConfig contains configuration for the inbound HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response
	// writes. Must be generous enough for long streamed completions.
	// Default: 10m
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS configuration for browser clients.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted and OPTIONS
	// preflight requests are answered locally.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins lists allowed origins. ["*"] allows all.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedHeaders lists allowed request headers for preflight.
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the preflight cache duration in seconds.
	// Default: 3600
	MaxAge int `yaml:"max_age"`
}

// ProvidersConfig groups the per-provider upstream settings.
//
// Exactly three providers are known to the router; there is no open
// extension point.
type ProvidersConfig struct {
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Cerebras  CerebrasConfig  `yaml:"cerebras"`

	// BrowserHeaders is the static browser-emulation header set applied to
	// every outbound call. Values here override the built-in defaults.
	BrowserHeaders map[string]string `yaml:"browser_headers"`

	// UserAgents overrides the built-in pool of browser user-agent strings.
	UserAgents []string `yaml:"user_agents"`
}

// OpenAIConfig configures the OpenAI-compatible upstream.
type OpenAIConfig struct {
	// BaseURL is the API endpoint base, including the /v1 segment.
	// Default: "https://api.openai.com/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey is used when the client does not supply its own Authorization
	// header. Typically set via FIREGATE_OPENAI_API_KEY.
	APIKey string `yaml:"api_key"`

	// OrgID is the default organization header value. A client-supplied
	// OpenAI-Organization header takes precedence; when both are absent the
	// header is omitted entirely.
	OrgID string `yaml:"org_id"`
}

// AnthropicConfig configures the Anthropic upstream.
type AnthropicConfig struct {
	// BaseURL is the API endpoint base, including the /v1 segment.
	// Default: "https://api.anthropic.com/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey is used when the client does not supply its own x-api-key
	// header. Typically set via FIREGATE_ANTHROPIC_API_KEY.
	APIKey string `yaml:"api_key"`

	// Version is the anthropic-version header value.
	// Default: "2023-06-01"
	Version string `yaml:"version"`
}

// CerebrasConfig configures the Cerebras upstream.
//
// Cerebras routing is active only when APIKey is non-empty; completion
// requests are then remapped to DefaultModel regardless of the model the
// client asked for.
type CerebrasConfig struct {
	// BaseURL is the API endpoint base, including the /v1 segment.
	// Default: "https://api.cerebras.ai/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey enables Cerebras routing when non-empty.
	APIKey string `yaml:"api_key"`

	// DefaultModel replaces the client-requested model in forwarded bodies.
	// Default: "llama-3.3-70b"
	DefaultModel string `yaml:"default_model"`
}

// RelayConfig contains configuration for the relay engine.
type RelayConfig struct {
	// FirstByteTimeout bounds the wait for the upstream's response headers.
	// On expiry the request fails with a gateway-timeout classification.
	// Default: 60s
	FirstByteTimeout time.Duration `yaml:"first_byte_timeout"`

	// ResponseTimeout bounds a whole buffered exchange. Streaming responses
	// are exempt; they end on upstream close or client disconnect.
	// Default: 5m
	ResponseTimeout time.Duration `yaml:"response_timeout"`

	// MaxIdleConns is the connection pool size shared across upstreams.
	// Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// IdleConnTimeout is how long an idle upstream connection is kept.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// FiltersConfig contains configuration for the security filter chain.
type FiltersConfig struct {
	// Enabled controls the whole chain. When false every filter is a no-op
	// allow, checked once at the top of evaluation.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedModels is the model allowlist. An empty list means no
	// restriction.
	AllowedModels []string `yaml:"allowed_models"`

	// MaxTokens is the ceiling for the request's max_tokens field, or for
	// the estimated prompt size when the field is absent.
	// Default: 8192
	MaxTokens int `yaml:"max_tokens"`

	// BlockedPatterns lists case-insensitive substring/glob patterns that
	// deny a request when matched against its prompt text.
	BlockedPatterns []string `yaml:"blocked_patterns"`

	// PatternsFile optionally points at a file with one pattern per line,
	// merged with BlockedPatterns.
	PatternsFile string `yaml:"patterns_file"`

	// WatchPatterns reloads PatternsFile on change via fsnotify.
	// Default: false
	WatchPatterns bool `yaml:"watch_patterns"`

	// RateLimit is the allowed request count per key per window.
	// Zero disables the request-rate filter.
	// Default: 100
	RateLimit int `yaml:"rate_limit"`

	// RateWindow is the trailing window for the rate limiter.
	// Default: 1m
	RateWindow time.Duration `yaml:"rate_window"`

	// TokensPerMinute caps recorded token usage per key per minute.
	// Zero disables the token-usage limiter.
	TokensPerMinute int `yaml:"tokens_per_minute"`

	// CharsPerToken is the characters-per-token ratio used by the prompt
	// size estimator. Treated as an upper-bound heuristic, not a tokenizer.
	// Default: 4.0
	CharsPerToken float64 `yaml:"chars_per_token"`
}

// AuditConfig contains configuration for the audit logger.
type AuditConfig struct {
	// Buffer is the size of the async record channel. Records are dropped
	// (with a self-logged warning) when the buffer is full; audit writes
	// never block or fail the client response.
	// Default: 1024
	Buffer int `yaml:"buffer"`

	// SensitiveKeys lists header and body field names whose values are
	// replaced with a fixed mask before a record is persisted. Redaction is
	// unconditional and independent of verbosity.
	SensitiveKeys []string `yaml:"sensitive_keys"`

	// LogPrompts includes full prompt text in audit records. Secrets are
	// masked regardless of this setting.
	// Default: false
	LogPrompts bool `yaml:"log_prompts"`

	// SQLitePath enables the SQLite audit store when non-empty.
	SQLitePath string `yaml:"sqlite_path"`

	// Retention is how long stored records are kept before pruning.
	// Default: 720h (30 days)
	Retention time.Duration `yaml:"retention"`

	// PruneSchedule is the cron expression for the retention pruner.
	// Default: "0 3 * * *" (daily at 03:00)
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains logging and metrics configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled controls whether /metrics is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace prefixes every metric name.
	// Default: "firegate"
	Namespace string `yaml:"namespace"`

	// Path is the HTTP path for the metrics handler.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
