// Package scheduler runs the background backup loop: every interval it asks
// the ledger service to write a timestamped copy of the league snapshot, so a
// crashed laptop mid-auction costs at most one interval of history.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/fantalega/asta/internal/config"
	"github.com/fantalega/asta/internal/service"
)

// ──────────────────────────────────────────────────────────────────────────────
// Scheduler
// ──────────────────────────────────────────────────────────────────────────────

// Scheduler owns the periodic backup goroutine. Call Start(ctx) once from
// main(); cancel the context to shut it down gracefully.
type Scheduler struct {
	ledgerSvc *service.LedgerService
	cfg       *config.Config
	logger    *slog.Logger
}

// NewScheduler creates a Scheduler.
func NewScheduler(ledgerSvc *service.LedgerService, cfg *config.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		ledgerSvc: ledgerSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start launches the backup goroutine. It returns immediately; the loop runs
// until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.backupLoop(ctx)
	s.logger.Info("scheduler started", "backup_interval", s.cfg.Snapshot.BackupInterval)
}

// ──────────────────────────────────────────────────────────────────────────────
// backupLoop
// ──────────────────────────────────────────────────────────────────────────────

// backupLoop writes a timestamped backup of the league on every tick. A failed
// backup is logged and retried on the next tick; it never stops the loop.
func (s *Scheduler) backupLoop(ctx context.Context) {
	defer s.recoverAndLog("backupLoop")

	ticker := time.NewTicker(s.cfg.Snapshot.BackupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("backupLoop: shutting down")
			return
		case <-ticker.C:
			if err := s.ledgerSvc.Backup(ctx); err != nil {
				s.logger.Error("backupLoop: backup failed", "err", err)
				continue
			}
			s.logger.Debug("backup written")
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Panic recovery
// ──────────────────────────────────────────────────────────────────────────────

// recoverAndLog is deferred inside the goroutine to catch unexpected panics,
// log them, and keep the process alive.
func (s *Scheduler) recoverAndLog(loop string) {
	if r := recover(); r != nil {
		s.logger.Error("PANIC recovered in scheduler loop",
			"loop", loop, "panic", r)
	}
}
