package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/pkg/logger"
)

type payrollSweeper interface {
	Run(ctx context.Context) (*entities.SweepSummary, error)
}

// PayrollSweepJob runs the scheduled payroll sweep on a fixed interval
type PayrollSweepJob struct {
	sweeper  payrollSweeper
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewPayrollSweepJob(sweeper payrollSweeper, interval time.Duration) *PayrollSweepJob {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &PayrollSweepJob{
		sweeper:  sweeper,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start sweeps once immediately, then on every tick until ctx is done or Stop is called
func (j *PayrollSweepJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting payroll sweep job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.runSweep(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Payroll sweep job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Payroll sweep job stopped")
			return
		case <-ticker.C:
			j.runSweep(ctx)
		}
	}
}

// Stop ends Start. Calling it more than once is safe.
func (j *PayrollSweepJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *PayrollSweepJob) runSweep(ctx context.Context) {
	summary, err := j.sweeper.Run(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrSweepInProgress) {
			logger.Info(ctx, "Payroll sweep skipped, another instance holds the lock")
			return
		}
		logger.Error(ctx, "Payroll sweep failed", zap.Error(err))
		return
	}

	processed := 0
	for _, b := range summary.Businesses {
		if !b.Skipped {
			processed++
		}
	}
	logger.Info(ctx, "Payroll sweep finished",
		zap.Int("businesses", len(summary.Businesses)),
		zap.Int("processed", processed),
		zap.Duration("took", summary.FinishedAt.Sub(summary.StartedAt)),
	)
}
