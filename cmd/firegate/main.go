// Firegate is a security-focused reverse proxy for LLM API traffic.
//
// It routes OpenAI-compatible, Anthropic, and Cerebras requests through
// a security filter chain (model allowlist, token ceilings, forbidden
// instructions, rate and usage limits), relays buffered and streamed
// responses, and writes a redacted audit trail.
//
// Usage:
//
//	# Start with default configuration
//	firegate run
//
//	# Start with a custom configuration file
//	firegate run --config /etc/firegate/config.yaml
//
//	# Show version information
//	firegate version
package main

func main() {
	Execute()
}
