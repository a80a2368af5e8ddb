package gateway

import (
	"encoding/json"
	"net/http"

	"firegate-hq/firegate/pkg/filters"
	"firegate-hq/firegate/pkg/gateway/types"
)

// writeError writes an error response in the OpenAI-compatible shape
// with the status derived from the error type.
func writeError(w http.ResponseWriter, resp *types.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Error.HTTPStatusCode())
	_ = json.NewEncoder(w).Encode(resp)
}

// verdictError maps a filter denial onto the client-facing error shape.
// Limiter denials map to rate-limit errors, everything else to invalid
// request with a filter-specific code.
func verdictError(v filters.Verdict) *types.ErrorResponse {
	if v.Status == http.StatusTooManyRequests {
		return types.NewRateLimitError(v.Reason)
	}

	switch v.Filter {
	case filters.FilterModelAllowlist:
		return types.NewInvalidRequestError(v.Reason, "model", types.CodeModelNotAllowed)
	case filters.FilterTokenLimit:
		return types.NewInvalidRequestError(v.Reason, "max_tokens", types.CodeTokenLimitExceeded)
	case filters.FilterBlockedPattern:
		return types.NewInvalidRequestError(v.Reason, "", types.CodeContentBlocked)
	default:
		return types.NewInvalidRequestError(v.Reason, "", "")
	}
}
