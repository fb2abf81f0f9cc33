package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"trivix-payroll.backend/internal/domain/entities"
	"trivix-payroll.backend/pkg/logger"
)

type stalePendingLister interface {
	ListStalePending(ctx context.Context, businessID string, olderThan time.Duration) ([]*entities.PaymentRecord, error)
}

type stalePendingGauge interface {
	SetStalePending(count int)
}

// StalePaymentMonitorJob reports payment records stuck in Pending.
// It never finalizes them; they are left for manual reconciliation.
type StalePaymentMonitorJob struct {
	store    stalePendingLister
	gauge    stalePendingGauge
	age      time.Duration
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewStalePaymentMonitorJob(store stalePendingLister, gauge stalePendingGauge, age time.Duration) *StalePaymentMonitorJob {
	return &StalePaymentMonitorJob{
		store:    store,
		gauge:    gauge,
		age:      age,
		interval: 5 * time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *StalePaymentMonitorJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting stale payment monitor", zap.Duration("age", j.age))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Stale payment monitor stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Stale payment monitor stopped")
			return
		case <-ticker.C:
			j.checkStalePending(ctx)
		}
	}
}

// Stop ends Start. Calling it more than once is safe.
func (j *StalePaymentMonitorJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *StalePaymentMonitorJob) checkStalePending(ctx context.Context) {
	stale, err := j.store.ListStalePending(ctx, "", j.age)
	if err != nil {
		logger.Error(ctx, "Error listing stale pending payments", zap.Error(err))
		return
	}

	if j.gauge != nil {
		j.gauge.SetStalePending(len(stale))
	}
	if len(stale) == 0 {
		return
	}

	for _, record := range stale {
		logger.Warn(ctx, "Payment still pending, needs manual review",
			zap.String("business_id", record.BusinessID),
			zap.String("payment_id", record.ID),
			zap.Time("created_at", record.CreatedAt),
		)
	}
}
