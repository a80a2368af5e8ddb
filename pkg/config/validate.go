package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// FieldError describes a single invalid configuration field.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates all invalid fields found during validation.
type ValidationError struct {
	Errors []FieldError
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration for errors. All fields are checked so a
// single run reports every problem at once.
func Validate(cfg *Config) error {
	var errs []FieldError

	if _, _, err := net.SplitHostPort(cfg.Server.ListenAddress); err != nil {
		errs = append(errs, FieldError{"server.listen_address", fmt.Sprintf("invalid address: %v", err)})
	}

	errs = append(errs, validateBaseURL("providers.openai.base_url", cfg.Providers.OpenAI.BaseURL)...)
	errs = append(errs, validateBaseURL("providers.anthropic.base_url", cfg.Providers.Anthropic.BaseURL)...)
	errs = append(errs, validateBaseURL("providers.cerebras.base_url", cfg.Providers.Cerebras.BaseURL)...)

	if cfg.Providers.Cerebras.APIKey != "" && cfg.Providers.Cerebras.DefaultModel == "" {
		errs = append(errs, FieldError{"providers.cerebras.default_model", "required when a Cerebras API key is configured"})
	}

	if cfg.Relay.FirstByteTimeout <= 0 {
		errs = append(errs, FieldError{"relay.first_byte_timeout", "must be positive"})
	}

	if cfg.Filters.MaxTokens < 0 {
		errs = append(errs, FieldError{"filters.max_tokens", "must not be negative"})
	}
	if cfg.Filters.RateLimit < 0 {
		errs = append(errs, FieldError{"filters.rate_limit", "must not be negative"})
	}
	if cfg.Filters.RateWindow <= 0 {
		errs = append(errs, FieldError{"filters.rate_window", "must be positive"})
	}
	if cfg.Filters.CharsPerToken <= 0 {
		errs = append(errs, FieldError{"filters.chars_per_token", "must be positive"})
	}
	if cfg.Filters.WatchPatterns && cfg.Filters.PatternsFile == "" {
		errs = append(errs, FieldError{"filters.patterns_file", "required when watch_patterns is enabled"})
	}

	if cfg.Audit.Buffer <= 0 {
		errs = append(errs, FieldError{"audit.buffer", "must be positive"})
	}
	if cfg.Audit.Retention <= 0 {
		errs = append(errs, FieldError{"audit.retention", "must be positive"})
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{"telemetry.logging.level", fmt.Sprintf("unknown level %q", cfg.Telemetry.Logging.Level)})
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{"telemetry.logging.format", fmt.Sprintf("unknown format %q", cfg.Telemetry.Logging.Format)})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateBaseURL(field, raw string) []FieldError {
	u, err := url.Parse(raw)
	if err != nil {
		return []FieldError{{field, fmt.Sprintf("invalid URL: %v", err)}}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return []FieldError{{field, fmt.Sprintf("unsupported scheme %q", u.Scheme)}}
	}
	if u.Host == "" {
		return []FieldError{{field, "missing host"}}
	}
	return nil
}
