package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"firegate-hq/firegate/pkg/audit"
	"firegate-hq/firegate/pkg/config"
	"firegate-hq/firegate/pkg/filters"
	"firegate-hq/firegate/pkg/gateway/types"
	"firegate-hq/firegate/pkg/providers"
	"firegate-hq/firegate/pkg/providers/anthropic"
	"firegate-hq/firegate/pkg/providers/cerebras"
	"firegate-hq/firegate/pkg/providers/openai"
	"firegate-hq/firegate/pkg/relay"
	"firegate-hq/firegate/pkg/routing"
	"firegate-hq/firegate/pkg/telemetry/logging"
	"firegate-hq/firegate/pkg/telemetry/metrics"
)

// maxBodyBytes caps the inbound request body read.
const maxBodyBytes = 10 << 20

// Handler is the proxy request pipeline. One instance serves all
// traffic; everything mutable is request-scoped except the filter
// chain's limiter windows.
type Handler struct {
	logger   *slog.Logger
	router   *routing.Router
	chain    *filters.Chain
	adapters map[string]providers.Adapter
	engine   *relay.Engine
	redactor *audit.Redactor
	recorder *audit.Recorder
	metrics  *metrics.Metrics
	mock     bool
}

// New assembles the pipeline from configuration. The recorder and
// metrics are owned by the caller; the handler only feeds them.
func New(cfg *config.Config, logger *slog.Logger, recorder *audit.Recorder, m *metrics.Metrics) *Handler {
	browser := providers.NewBrowserHeaders(cfg.Providers.BrowserHeaders, cfg.Providers.UserAgents)

	return &Handler{
		logger: logger,
		router: routing.NewRouter(cfg.Providers),
		chain:  filters.NewChain(cfg.Filters),
		adapters: map[string]providers.Adapter{
			routing.ProviderOpenAI:    openai.New(cfg.Providers.OpenAI, browser),
			routing.ProviderAnthropic: anthropic.New(cfg.Providers.Anthropic, browser),
			routing.ProviderCerebras:  cerebras.New(cfg.Providers.Cerebras, browser),
		},
		engine:   relay.NewEngine(cfg.Relay),
		redactor: audit.NewRedactor(cfg.Audit.SensitiveKeys, cfg.Audit.LogPrompts),
		recorder: recorder,
		metrics:  m,
		mock:     cfg.MockResponses,
	}
}

// Chain exposes the filter chain, e.g. for wiring the pattern-file
// watcher to its pattern set.
func (h *Handler) Chain() *filters.Chain {
	return h.chain
}

// ServeHTTP runs one request through the pipeline.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		h.serveStatus(w)
		return
	}

	start := time.Now()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, types.NewInvalidRequestError("could not read request body", "", ""))
		return
	}

	req := types.NewRequest(r, body, logging.RequestID(r.Context()))
	rec := &audit.Record{
		RequestID:   req.RequestID,
		Method:      req.Method,
		Path:        req.Path,
		Headers:     h.redactor.Headers(req.Header),
		BodySummary: h.redactor.Body(req.Body),
	}

	dec, err := h.router.Route(req)
	if err != nil {
		rec.Status = http.StatusNotFound
		rec.Error = err.Error()
		writeError(w, types.NewNotFoundError(
			fmt.Sprintf("no provider serves %s %s", req.Method, req.Path)))
		h.finish(rec, start)
		return
	}
	rec.Provider = dec.Provider
	rec.RequestedModel = dec.RequestedModel
	rec.Model = dec.Model

	if verdict := h.chain.Evaluate(req); !verdict.Allowed {
		h.metrics.ObserveDenial(verdict.Filter)
		rec.Status = verdict.Status
		rec.Filter = verdict.Filter
		rec.Error = verdict.Reason
		writeError(w, verdictError(verdict))
		h.finish(rec, start)
		return
	}

	if h.mock && mockable(dec) {
		h.deliver(w, r, req, dec, mockResponse(req, dec), rec, start)
		return
	}

	adapter, ok := h.adapters[dec.Provider]
	if !ok {
		rec.Status = http.StatusInternalServerError
		rec.Error = "no adapter for provider " + dec.Provider
		writeError(w, types.NewServerError("internal error"))
		h.finish(rec, start)
		return
	}

	spec, err := adapter.BuildCall(req, dec)
	if err != nil {
		rec.Status = http.StatusBadGateway
		rec.Error = err.Error()
		writeError(w, types.NewBadGatewayError("provider request could not be prepared"))
		h.finish(rec, start)
		return
	}

	resp, err := h.engine.Execute(r.Context(), spec)
	if err != nil {
		h.writeRelayError(w, rec, err)
		h.finish(rec, start)
		return
	}

	if !resp.IsStream() {
		resp, err = adapter.AdaptResponse(spec, resp)
		if err != nil {
			rec.Status = http.StatusBadGateway
			rec.Error = err.Error()
			writeError(w, types.NewBadGatewayError("provider response could not be translated"))
			h.finish(rec, start)
			return
		}
	}

	h.deliver(w, r, req, dec, resp, rec, start)
}

// deliver writes an upstream (or mock) response and finalizes the
// audit record. A mid-stream failure arrives after the status is
// committed, so it is recorded but no error body is written.
func (h *Handler) deliver(w http.ResponseWriter, r *http.Request, req *types.Request,
	dec *routing.Decision, resp *types.UpstreamResponse, rec *audit.Record, start time.Time) {

	chunks, err := relay.Deliver(r.Context(), w, resp)

	rec.Status = resp.Status
	rec.Streamed = resp.IsStream()
	rec.Chunks = chunks
	if resp.IsStream() {
		rec.ResponseSummary = fmt.Sprintf("streamed, %d chunks", chunks)
		h.metrics.ObserveChunks(dec.Provider, chunks)
	} else {
		rec.ResponseSummary = h.redactor.Body(resp.Body)
	}
	if err != nil {
		rec.Error = err.Error()
		h.logger.Warn("response delivery interrupted",
			"request_id", req.RequestID,
			"provider", dec.Provider,
			"chunks", chunks,
			"error", err,
		)
	}
	h.finish(rec, start)
}

// writeRelayError maps an upstream exchange failure onto 502/504. The
// full cause stays in the audit record.
func (h *Handler) writeRelayError(w http.ResponseWriter, rec *audit.Record, err error) {
	rec.Error = err.Error()

	var relayErr *relay.RelayError
	if errors.As(err, &relayErr) && relayErr.Timeout() {
		rec.Status = http.StatusGatewayTimeout
		writeError(w, types.NewGatewayTimeoutError("upstream request timed out"))
		return
	}
	rec.Status = http.StatusBadGateway
	writeError(w, types.NewBadGatewayError("upstream request failed"))
}

// finish stamps timing onto the record and hands it to the recorder
// and metrics. Never blocks the response path.
func (h *Handler) finish(rec *audit.Record, start time.Time) {
	rec.Timestamp = time.Now()
	rec.Duration = time.Since(start)
	h.recorder.Record(rec)

	provider := rec.Provider
	if provider == "" {
		provider = "none"
	}
	h.metrics.ObserveRequest(provider, rec.Model, rec.Status, rec.Duration)
}

func (h *Handler) serveStatus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"service": "firegate",
		"status":  "ok",
	})
}
