// Package tokens provides character-based token estimation.
//
// The estimator divides character count by a configured
// characters-per-token ratio (about 4 for most chat models). It is a
// fast heuristic for budget enforcement when a request carries no
// explicit max_tokens field, not an exact tokenizer.
package tokens
