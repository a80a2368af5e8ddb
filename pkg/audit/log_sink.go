package audit

import (
	"context"
	"log/slog"
)

// LogSink emits each record as one structured log entry.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates the slog sink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "audit")}
}

// Write implements Sink.
func (s *LogSink) Write(_ context.Context, rec *Record) error {
	attrs := []any{
		"request_id", rec.RequestID,
		"method", rec.Method,
		"path", rec.Path,
		"provider", rec.Provider,
		"requested_model", rec.RequestedModel,
		"model", rec.Model,
		"status", rec.Status,
		"duration_ms", rec.Duration.Milliseconds(),
		"headers", rec.Headers,
		"body", rec.BodySummary,
		"response", rec.ResponseSummary,
	}
	if rec.Streamed {
		attrs = append(attrs, "streamed", true, "chunks", rec.Chunks)
	}
	if rec.Filter != "" {
		attrs = append(attrs, "filter", rec.Filter)
	}

	if rec.Error != "" {
		attrs = append(attrs, "error", rec.Error)
		s.logger.Warn("request failed", attrs...)
		return nil
	}
	s.logger.Info("request completed", attrs...)
	return nil
}

// Close implements Sink.
func (s *LogSink) Close() error {
	return nil
}
