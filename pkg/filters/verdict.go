package filters

// Filter name constants used in verdicts, metrics labels, and audit
// records.
const (
	// FilterModelAllowlist rejects models outside the configured set.
	FilterModelAllowlist = "model_allowlist"

	// FilterTokenLimit rejects requests exceeding the token ceiling.
	FilterTokenLimit = "token_limit"

	// FilterBlockedPattern rejects prompts matching a forbidden pattern.
	FilterBlockedPattern = "blocked_pattern"

	// FilterRateLimit rejects keys over their request budget.
	FilterRateLimit = "rate_limit"

	// FilterUsageLimit rejects keys over their token budget.
	FilterUsageLimit = "usage_limit"
)

// Verdict is the outcome of evaluating the filter chain for one
// request. The chain produces exactly one verdict per request; a deny
// short-circuits before any upstream call.
type Verdict struct {
	// Allowed reports whether the request may proceed upstream.
	Allowed bool

	// Filter names the denying filter. Empty on allow.
	Filter string

	// Reason is the human-readable denial reason. Empty on allow.
	Reason string

	// Status is the HTTP status to respond with on deny. Zero on allow.
	Status int
}

// Allow is the verdict for a request that passed every filter.
func Allow() Verdict {
	return Verdict{Allowed: true}
}

// Deny builds a denial verdict for the named filter.
func Deny(filter, reason string, status int) Verdict {
	return Verdict{Filter: filter, Reason: reason, Status: status}
}
