package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
)

// DueSweeper periodically promotes RECEIVED cheques into DUE. One instance runs
// per process; concurrent instances are safe because each promotion is guarded
// by the cheque's version and a deterministic request id.
type DueSweeper struct {
	chequeSvc portssvc.ChequeLifecycleSvc
	interval  time.Duration
	logger    *slog.Logger
}

// NewDueSweeper creates a sweeper that runs every interval.
func NewDueSweeper(chequeSvc portssvc.ChequeLifecycleSvc, interval time.Duration, logger *slog.Logger) *DueSweeper {
	return &DueSweeper{
		chequeSvc: chequeSvc,
		interval:  interval,
		logger:    logger,
	}
}

// Run executes one sweep immediately, then on every tick until ctx is cancelled.
// A failed sweep is logged and retried on the next tick rather than stopping the
// loop.
func (s *DueSweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Due sweeper stopping", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *DueSweeper) sweep(ctx context.Context) {
	start := time.Now()
	promoted, err := s.chequeSvc.PromoteDueCheques(ctx, start.UTC())
	if err != nil {
		s.logger.Error("Due sweep failed",
			slog.Int("promoted_before_failure", promoted),
			slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Due sweep completed",
		slog.Int("promoted", promoted),
		slog.Duration("took", time.Since(start)))
}
