package relay

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"firegate-hq/firegate/pkg/config"
	"firegate-hq/firegate/pkg/gateway/types"
	"firegate-hq/firegate/pkg/providers"
)

// Engine executes prepared upstream calls. It holds the shared HTTP
// client; everything else is request-local.
type Engine struct {
	client          *http.Client
	responseTimeout time.Duration
}

// NewEngine creates the relay engine. The first-byte timeout is
// enforced by the transport's response-header deadline; the response
// timeout bounds buffered exchanges only, streams run until the
// upstream closes or the client disconnects.
func NewEngine(cfg config.RelayConfig) *Engine {
	transport := &http.Transport{
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConns,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		ResponseHeaderTimeout: cfg.FirstByteTimeout,
	}
	return &Engine{
		client:          &http.Client{Transport: transport},
		responseTimeout: cfg.ResponseTimeout,
	}
}

// Execute performs the upstream call described by spec. The returned
// response is buffered unless the upstream answers with an event
// stream. Cancelling ctx aborts the exchange, including any in-flight
// stream read.
func (e *Engine) Execute(ctx context.Context, spec *providers.CallSpec) (*types.UpstreamResponse, error) {
	var body io.Reader
	if len(spec.Body) > 0 {
		body = bytes.NewReader(spec.Body)
	}

	reqCtx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(reqCtx, spec.Method, spec.URL, body)
	if err != nil {
		cancel()
		return nil, &RelayError{Provider: spec.Provider, Kind: KindConnect, Cause: err}
	}
	req.Header = spec.Header.Clone()
	if req.Header == nil {
		req.Header = http.Header{}
	}
	// Let the transport negotiate gzip and decode it transparently, so
	// that buffered lengths are always computed from decoded bytes.
	req.Header.Del("Accept-Encoding")

	var timedOut atomic.Bool
	var timer *time.Timer
	if e.responseTimeout > 0 {
		timer = time.AfterFunc(e.responseTimeout, func() {
			timedOut.Store(true)
			cancel()
		})
	}
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		stopTimer()
		cancel()
		return nil, e.classify(spec.Provider, err, timedOut.Load())
	}

	if isEventStream(resp.Header) {
		// Streams are exempt from the response deadline; the reader
		// owns the cancel so Close releases the connection.
		stopTimer()
		return &types.UpstreamResponse{
			Status: resp.StatusCode,
			Header: sanitizeHeader(resp.Header),
			Stream: newSSEReader(resp.Body, cancel),
		}, nil
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	stopTimer()
	cancel()
	if err != nil {
		return nil, e.classify(spec.Provider, err, timedOut.Load())
	}

	decoded, err := decodeBody(raw, resp.Header)
	if err != nil {
		return nil, &RelayError{Provider: spec.Provider, Kind: KindConnect, Cause: err}
	}

	return &types.UpstreamResponse{
		Status: resp.StatusCode,
		Header: sanitizeHeader(resp.Header),
		Body:   decoded,
	}, nil
}

// classify maps a transport error onto the relay taxonomy.
func (e *Engine) classify(provider string, err error, deadlineFired bool) *RelayError {
	kind := KindConnect
	if deadlineFired {
		kind = KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		kind = KindTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &RelayError{Provider: provider, Kind: kind, Cause: err}
}

// isEventStream reports whether the upstream chose SSE framing.
func isEventStream(h http.Header) bool {
	ct := h.Get("Content-Type")
	return strings.HasPrefix(strings.ToLower(ct), "text/event-stream")
}

// sanitizeHeader copies the upstream headers minus the length- and
// transport-bearing fields the relay recomputes or owns.
func sanitizeHeader(h http.Header) http.Header {
	out := h.Clone()
	out.Del("Content-Length")
	out.Del("Content-Encoding")
	out.Del("Transfer-Encoding")
	out.Del("Connection")
	return out
}

// decodeBody gunzips a body the transport did not decode itself, which
// happens when the client supplied an explicit Accept-Encoding.
func decodeBody(raw []byte, h http.Header) ([]byte, error) {
	if !strings.EqualFold(h.Get("Content-Encoding"), "gzip") {
		return raw, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
