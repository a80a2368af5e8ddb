// Package ratelimit provides keyed sliding-window rate limiting.
//
// Two limiters are provided:
//
//   - KeyedLimiter: request-count limiting over a rolling window,
//     keyed by client identity (API key or source address).
//   - UsageLimiter: token-consumption limiting over a rolling window,
//     keyed the same way.
//
// Both prune expired entries lazily on each check; there is no
// background sweep. State is process-local and resets on restart.
//
// # Thread Safety
//
// Window state is guarded per key so concurrent requests for different
// keys never contend. The check is read-modify-write under the key's
// lock: prune expired entries, compare against the limit, then record.
package ratelimit
