package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner deletes audit records older than the retention period on a
// cron schedule.
type Pruner struct {
	store     *SQLiteStore
	retention time.Duration
	schedule  string
	logger    *slog.Logger
	cron      *cron.Cron
}

// NewPruner creates a retention pruner. An empty schedule disables it.
func NewPruner(store *SQLiteStore, retention time.Duration, schedule string, logger *slog.Logger) *Pruner {
	return &Pruner{
		store:     store,
		retention: retention,
		schedule:  schedule,
		logger:    logger.With("component", "audit.pruner"),
		cron:      cron.New(),
	}
}

// Start validates the schedule and begins scheduled pruning.
func (p *Pruner) Start() error {
	if p.schedule == "" || p.retention <= 0 {
		p.logger.Info("retention pruning not configured")
		return nil
	}
	if _, err := cron.ParseStandard(p.schedule); err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", p.schedule, err)
	}
	if _, err := p.cron.AddFunc(p.schedule, p.runOnce); err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}
	p.cron.Start()
	p.logger.Info("retention pruning scheduled",
		"schedule", p.schedule, "retention", p.retention)
	return nil
}

// Stop halts scheduled pruning, waiting for an in-flight run.
func (p *Pruner) Stop() {
	<-p.cron.Stop().Done()
}

func (p *Pruner) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-p.retention)
	removed, err := p.store.PruneBefore(ctx, cutoff)
	if err != nil {
		p.logger.Error("retention pruning failed", "error", err)
		return
	}
	p.logger.Info("retention pruning completed",
		"removed", removed, "cutoff", cutoff)
}
