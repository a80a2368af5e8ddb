package tokens

import (
	"firegate-hq/firegate/pkg/gateway/types"
)

// messageOverhead approximates the formatting tokens a chat model spends
// per conversation (role markers, message boundaries).
const messageOverhead = 3

// Estimator estimates token counts from character length.
type Estimator struct {
	charsPerToken float64
}

// NewEstimator creates an estimator with the given characters-per-token
// ratio. Ratios at or below zero fall back to 4.0.
func NewEstimator(charsPerToken float64) *Estimator {
	if charsPerToken <= 0 {
		charsPerToken = 4.0
	}
	return &Estimator{charsPerToken: charsPerToken}
}

// EstimateText estimates the token count of a text string. Non-empty
// text estimates to at least one token.
func (e *Estimator) EstimateText(text string) int64 {
	if text == "" {
		return 0
	}
	tokens := float64(len(text)) / e.charsPerToken
	if tokens < 1.0 {
		tokens = 1.0
	}
	return int64(tokens + 0.5)
}

// EstimateRequest estimates the prompt-side token count of a request:
// the concatenated message, prompt, and system text plus a small
// formatting overhead.
func (e *Estimator) EstimateRequest(req *types.Request) int64 {
	text := req.PromptText()
	if text == "" {
		return 0
	}
	return e.EstimateText(text) + messageOverhead
}
