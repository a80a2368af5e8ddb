package filters

import (
	"fmt"
	"time"

	"firegate-hq/firegate/pkg/config"
	"firegate-hq/firegate/pkg/gateway/types"
	"firegate-hq/firegate/pkg/limits/ratelimit"
	"firegate-hq/firegate/pkg/processing/tokens"
)

// Chain evaluates the security filters in their fixed order. All filter
// logic is synchronous and performs no I/O; the only shared state is
// the rate and usage limiter windows.
type Chain struct {
	enabled       bool
	allowedModels map[string]struct{}
	maxTokens     int64
	patterns      *PatternSet
	limiter       *ratelimit.KeyedLimiter
	usage         *ratelimit.UsageLimiter
	estimator     *tokens.Estimator
}

// NewChain builds the filter chain from configuration.
func NewChain(cfg config.FiltersConfig) *Chain {
	return NewChainWithClock(cfg, time.Now)
}

// NewChainWithClock builds the filter chain with an explicit clock for
// the limiter windows.
func NewChainWithClock(cfg config.FiltersConfig, clock ratelimit.Clock) *Chain {
	allowed := make(map[string]struct{}, len(cfg.AllowedModels))
	for _, m := range cfg.AllowedModels {
		allowed[m] = struct{}{}
	}

	return &Chain{
		enabled:       cfg.Enabled,
		allowedModels: allowed,
		maxTokens:     int64(cfg.MaxTokens),
		patterns:      NewPatternSet(cfg.BlockedPatterns),
		limiter:       ratelimit.NewKeyedLimiterWithClock(cfg.RateLimit, cfg.RateWindow, clock),
		usage:         ratelimit.NewUsageLimiterWithClock(int64(cfg.TokensPerMinute), time.Minute, clock),
		estimator:     tokens.NewEstimator(cfg.CharsPerToken),
	}
}

// Patterns exposes the pattern set for hot reload.
func (c *Chain) Patterns() *PatternSet {
	return c.patterns
}

// Evaluate runs the chain against a request and returns exactly one
// verdict. The rate and usage limiters record consumption only when
// every earlier filter allowed the request.
func (c *Chain) Evaluate(req *types.Request) Verdict {
	if !c.enabled {
		return Allow()
	}

	if v := c.checkModel(req); !v.Allowed {
		return v
	}
	if v := c.checkTokenLimit(req); !v.Allowed {
		return v
	}
	if v := c.checkPatterns(req); !v.Allowed {
		return v
	}
	if v := c.checkRateLimit(req); !v.Allowed {
		return v
	}
	if v := c.checkUsage(req); !v.Allowed {
		return v
	}
	return Allow()
}

// checkModel denies models outside the allowlist. An empty allowlist
// means no restriction, and a request without a model field passes.
func (c *Chain) checkModel(req *types.Request) Verdict {
	if len(c.allowedModels) == 0 {
		return Allow()
	}
	model := req.Model()
	if model == "" {
		return Allow()
	}
	if _, ok := c.allowedModels[model]; !ok {
		return Deny(FilterModelAllowlist,
			fmt.Sprintf("model %q is not allowed", model), 400)
	}
	return Allow()
}

// checkTokenLimit denies requests whose max_tokens exceeds the ceiling.
// When the field is absent the prompt size estimate stands in for it.
func (c *Chain) checkTokenLimit(req *types.Request) Verdict {
	if c.maxTokens <= 0 {
		return Allow()
	}
	requested := req.MaxTokens()
	if requested == 0 {
		requested = c.estimator.EstimateRequest(req)
	}
	if requested > c.maxTokens {
		return Deny(FilterTokenLimit,
			fmt.Sprintf("requested %d tokens exceeds the limit of %d", requested, c.maxTokens), 400)
	}
	return Allow()
}

func (c *Chain) checkPatterns(req *types.Request) Verdict {
	if pattern, ok := c.patterns.Match(req.PromptText()); ok {
		return Deny(FilterBlockedPattern,
			fmt.Sprintf("request matches blocked pattern %q", pattern), 400)
	}
	return Allow()
}

func (c *Chain) checkRateLimit(req *types.Request) Verdict {
	if !c.limiter.Allow(req.ClientKey()) {
		return Deny(FilterRateLimit, "rate limit exceeded", 429)
	}
	return Allow()
}

// checkUsage charges the request's estimated token cost against the
// per-key budget. The cost is the prompt estimate plus the requested
// completion size.
func (c *Chain) checkUsage(req *types.Request) Verdict {
	cost := c.estimator.EstimateRequest(req) + req.MaxTokens()
	if cost == 0 {
		return Allow()
	}
	if !c.usage.Allow(req.ClientKey(), cost) {
		return Deny(FilterUsageLimit, "token usage limit exceeded", 429)
	}
	return Allow()
}
