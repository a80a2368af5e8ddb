// Package filters implements the security filter chain evaluated before
// any upstream call.
//
// Filters run in a fixed order and the chain short-circuits on the
// first deny: model allowlist, token ceiling, forbidden-instruction
// patterns, request rate limit, then token-usage budget. Disabling the
// chain via configuration turns every filter into a no-op allow,
// checked once at the top of Evaluate.
//
// Pattern matching is a pure string predicate over the request's
// concatenated prompt text, not a semantic classifier. The pattern set
// can be hot-reloaded from a file via PatternWatcher.
package filters
