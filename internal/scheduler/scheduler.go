// Package scheduler runs periodic reconciliation in the background so data
// problems surface without an operator asking for a report.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/middleware"
)

// ReconciliationScheduler triggers a full reconciliation run at a fixed
// interval. Each run gets its own deadline so a wedged query cannot stall
// the loop forever.
type ReconciliationScheduler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
	interval              time.Duration
	runTimeout            time.Duration
	logger                *slog.Logger

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewReconciliationScheduler creates a scheduler. It does not start it.
func NewReconciliationScheduler(svc portssvc.ReconciliationSvcFacade, interval, runTimeout time.Duration, logger *slog.Logger) *ReconciliationScheduler {
	return &ReconciliationScheduler{
		reconciliationService: svc,
		interval:              interval,
		runTimeout:            runTimeout,
		logger:                logger.With(slog.String("component", "reconciliation_scheduler")),
		stop:                  make(chan struct{}),
	}
}

// Start launches the background loop. The first run happens after one full
// interval; bootstrap is not delayed behind a store scan.
func (s *ReconciliationScheduler) Start() {
	s.wg.Add(1)
	go s.run()
	s.logger.Info("Reconciliation scheduler started",
		slog.Duration("interval", s.interval),
		slog.Duration("run_timeout", s.runTimeout))
}

// Stop terminates the loop and waits for an in-flight run to finish.
func (s *ReconciliationScheduler) Stop() {
	s.once.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
	s.logger.Info("Reconciliation scheduler stopped")
}

func (s *ReconciliationScheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-s.stop:
			return
		}
	}
}

func (s *ReconciliationScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()
	ctx = middleware.ContextWithLogger(ctx, s.logger)

	report := s.reconciliationService.RunFullReconciliation(ctx)
	if report.OverallStatus != domain.CheckOK {
		s.logger.Error("Scheduled reconciliation found problems",
			slog.Int("failed_checks", report.FailedChecks()),
			slog.Int64("duration_ms", report.DurationMS))
		return
	}
	s.logger.Info("Scheduled reconciliation clean",
		slog.Int64("duration_ms", report.DurationMS))
}
