package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"firegate-hq/firegate/pkg/audit"
	"firegate-hq/firegate/pkg/config"
	"firegate-hq/firegate/pkg/filters"
	"firegate-hq/firegate/pkg/gateway"
	"firegate-hq/firegate/pkg/gateway/middleware"
	"firegate-hq/firegate/pkg/telemetry/metrics"
)

// Server runs the proxy and owns every long-lived component.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	httpServer *http.Server
	recorder   *audit.Recorder
	pruner     *audit.Pruner
	watcher    *filters.PatternWatcher

	watchCancel  context.CancelFunc
	shutdownOnce sync.Once
}

// New assembles the proxy from configuration. Nothing starts listening
// until Start is called.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	m := metrics.New(cfg.Telemetry.Metrics.Namespace)

	sinks := []audit.Sink{audit.NewLogSink(logger)}
	var pruner *audit.Pruner
	if cfg.Audit.SQLitePath != "" {
		store, err := audit.NewSQLiteStore(cfg.Audit.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit store: %w", err)
		}
		sinks = append(sinks, store)
		pruner = audit.NewPruner(store, cfg.Audit.Retention, cfg.Audit.PruneSchedule, logger)
	}

	recorder := audit.NewRecorder(cfg.Audit.Buffer, logger, sinks...)
	recorder.OnDrop(m.ObserveAuditDrop)

	handler := gateway.New(cfg, logger, recorder, m)

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		recorder: recorder,
		pruner:   pruner,
	}

	if cfg.Filters.PatternsFile != "" {
		if err := s.setupPatterns(handler.Chain(), logger); err != nil {
			recorder.Close()
			return nil, err
		}
	}

	mux := http.NewServeMux()
	if cfg.Telemetry.Metrics.Enabled {
		mux.Handle(cfg.Telemetry.Metrics.Path, m.Handler())
	}
	mux.Handle("/", wrap(handler, cfg, logger))

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ListenAddress,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s, nil
}

// wrap applies the middleware chain, outermost first: recovery, then
// request-id, then logging, then CORS.
func wrap(handler http.Handler, cfg *config.Config, logger *slog.Logger) http.Handler {
	h := middleware.CORS(cfg.Server.CORS)(handler)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)
	return h
}

// setupPatterns loads the external pattern file into the chain's set,
// and arranges hot reload when configured.
func (s *Server) setupPatterns(chain *filters.Chain, logger *slog.Logger) error {
	if s.cfg.Filters.WatchPatterns {
		watcher, err := filters.NewPatternWatcher(
			s.cfg.Filters.PatternsFile, s.cfg.Filters.BlockedPatterns, chain.Patterns(), logger)
		if err != nil {
			return fmt.Errorf("failed to set up pattern watcher: %w", err)
		}
		s.watcher = watcher
		return nil
	}

	patterns, err := filters.LoadPatternsFile(s.cfg.Filters.PatternsFile)
	if err != nil {
		return fmt.Errorf("failed to load patterns file: %w", err)
	}
	merged := append(append([]string{}, s.cfg.Filters.BlockedPatterns...), patterns...)
	chain.Patterns().Replace(merged)
	return nil
}

// Start runs the listener and blocks until the context is cancelled, a
// termination signal arrives, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	if s.watcher != nil {
		watchCtx, cancel := context.WithCancel(context.Background())
		s.watchCancel = cancel
		go s.watcher.Watch(watchCtx)
	}
	if s.pruner != nil {
		if err := s.pruner.Start(); err != nil {
			return fmt.Errorf("failed to start audit pruner: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("gateway listening",
			"address", s.cfg.Server.ListenAddress,
			"metrics", s.cfg.Telemetry.Metrics.Enabled,
			"mock", s.cfg.MockResponses,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listener failed: %w", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, shutting down")
		return s.Shutdown(context.Background())
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errCh:
		s.Shutdown(context.Background())
		return err
	}
}

// Shutdown stops the listener, the watcher, and the pruner, then
// drains the audit recorder. Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("listener shutdown failed", "error", err)
			shutdownErr = fmt.Errorf("listener shutdown failed: %w", err)
		}

		if s.watchCancel != nil {
			s.watchCancel()
		}
		if s.pruner != nil {
			s.pruner.Stop()
		}
		if err := s.recorder.Close(); err != nil {
			s.logger.Error("audit recorder close failed", "error", err)
		}

		s.logger.Info("gateway stopped")
	})

	return shutdownErr
}
