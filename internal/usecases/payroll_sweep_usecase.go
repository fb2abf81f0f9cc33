package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/domain/repositories"
	"trivix-payroll.backend/pkg/logger"
	"trivix-payroll.backend/pkg/redis"
	"trivix-payroll.backend/pkg/utils"
)

// Sweep run results used as metric labels
const (
	SweepResultCompleted = "completed"
	SweepResultLocked    = "locked"
	SweepResultError     = "error"
)

// PayrollDataSender submits one worker payout to the payroll-data service
type PayrollDataSender interface {
	SendWorkerPayout(ctx context.Context, employer string, payout entities.WorkerPayout) error
}

// Releaser is a held lock
type Releaser interface {
	Release(ctx context.Context) error
}

// Locker obtains a named lock or fails with redis.ErrLockNotObtained
type Locker func(ctx context.Context, key string, ttl time.Duration) (Releaser, error)

// RedisLocker takes the lock through the shared redislock client
func RedisLocker(ctx context.Context, key string, ttl time.Duration) (Releaser, error) {
	return redis.Obtain(ctx, key, ttl)
}

// SweepMetrics records sweep runs
type SweepMetrics interface {
	ObserveSweep(result string, paid, failed int, took time.Duration)
}

// SweepConfig holds sweep settings
type SweepConfig struct {
	TokenSymbol string
	LockTTL     time.Duration
}

// PayrollSweepUsecase runs the daily pass over every business with payroll due
type PayrollSweepUsecase struct {
	uow        repositories.UnitOfWork
	businesses repositories.BusinessRepository
	schedules  repositories.PayrollScheduleRepository
	payees     repositories.PayeeRepository
	store      PaymentStore
	sender     PayrollDataSender
	notifier   *PayrollNotifier
	lock       Locker
	metrics    SweepMetrics
	clock      Clock
	cfg        SweepConfig
}

// NewPayrollSweepUsecase creates the sweep. lock may be nil for single-instance runs.
func NewPayrollSweepUsecase(
	uow repositories.UnitOfWork,
	businesses repositories.BusinessRepository,
	schedules repositories.PayrollScheduleRepository,
	payees repositories.PayeeRepository,
	store PaymentStore,
	sender PayrollDataSender,
	notifier *PayrollNotifier,
	lock Locker,
	clock Clock,
	cfg SweepConfig,
) *PayrollSweepUsecase {
	if clock == nil {
		clock = time.Now
	}
	if cfg.TokenSymbol == "" {
		cfg.TokenSymbol = "USDC"
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Minute
	}
	return &PayrollSweepUsecase{
		uow:        uow,
		businesses: businesses,
		schedules:  schedules,
		payees:     payees,
		store:      store,
		sender:     sender,
		notifier:   notifier,
		lock:       lock,
		clock:      clock,
		cfg:        cfg,
	}
}

// WithMetrics attaches a metrics recorder
func (u *PayrollSweepUsecase) WithMetrics(m SweepMetrics) *PayrollSweepUsecase {
	u.metrics = m
	return u
}

// Run sweeps all businesses once. A failure inside one business never stops the others;
// only listing businesses or taking the lock fails the run.
func (u *PayrollSweepUsecase) Run(ctx context.Context) (*entities.SweepSummary, error) {
	started := u.clock()
	summary := &entities.SweepSummary{StartedAt: started}

	if u.lock != nil {
		held, err := u.lock(ctx, PayrollSweepLockKey, u.cfg.LockTTL)
		if err != nil {
			if errors.Is(err, redis.ErrLockNotObtained) {
				logger.Info(ctx, "Payroll sweep already running elsewhere, skipping")
				u.observe(SweepResultLocked, summary, started)
				return nil, domainerrors.ErrSweepInProgress
			}
			u.observe(SweepResultError, summary, started)
			return nil, fmt.Errorf("obtain sweep lock: %w", err)
		}
		defer func() {
			if err := held.Release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn(ctx, "Failed to release sweep lock", zap.Error(err))
			}
		}()
	}

	businesses, err := u.businesses.List(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to list businesses for payroll sweep", zap.Error(err))
		u.observe(SweepResultError, summary, started)
		return nil, err
	}
	logger.Info(ctx, "Payroll sweep started", zap.Int("businesses", len(businesses)))

	for _, b := range businesses {
		if ctx.Err() != nil {
			break
		}
		summary.Businesses = append(summary.Businesses, u.sweepBusiness(ctx, b))
	}

	summary.FinishedAt = u.clock()
	u.observe(SweepResultCompleted, summary, started)
	logger.Info(ctx, "Payroll sweep finished", zap.Int("businesses", len(summary.Businesses)))
	return summary, nil
}

func (u *PayrollSweepUsecase) observe(result string, summary *entities.SweepSummary, started time.Time) {
	if u.metrics == nil {
		return
	}
	paid, failed := 0, 0
	for _, b := range summary.Businesses {
		paid += len(b.Successful)
		failed += len(b.Failed)
	}
	u.metrics.ObserveSweep(result, paid, failed, u.clock().Sub(started))
}

func skipped(b *entities.Business, reason string) entities.BusinessSweepResult {
	return entities.BusinessSweepResult{
		BusinessID:   b.ID,
		BusinessName: b.Name,
		Skipped:      true,
		SkipReason:   reason,
		TotalPaid:    decimal.Zero,
	}
}

func (u *PayrollSweepUsecase) sweepBusiness(ctx context.Context, b *entities.Business) entities.BusinessSweepResult {
	ctx = logger.WithBusiness(ctx, b.ID)
	now := u.clock()

	if strings.TrimSpace(b.Name) == "" {
		logger.Warn(ctx, "Business name is missing, skipping payroll check")
		return skipped(b, "business name missing")
	}
	next := b.Settings.NextPaymentDate
	if next == nil {
		logger.Info(ctx, "No next payment date set, skipping payroll check")
		return skipped(b, "no next payment date")
	}
	if next.After(now) {
		logger.Debug(ctx, "Payroll not yet due", zap.Time("next_payment_date", *next))
		return skipped(b, "not due")
	}

	workers, err := u.payees.ListByBusiness(ctx, b.ID, entities.PayeeKindWorker)
	if err != nil {
		logger.Error(ctx, "Failed to fetch workers", zap.Error(err))
		return skipped(b, "worker fetch failed")
	}
	if len(workers) == 0 {
		logger.Info(ctx, "No workers found, skipping payroll processing")
		return skipped(b, "no workers")
	}

	logger.Info(ctx, "Payroll is due, processing workers", zap.Int("workers", len(workers)))
	result := entities.BusinessSweepResult{BusinessID: b.ID, BusinessName: b.Name}
	var successful []entities.WorkerPayout
	for _, w := range workers {
		payout, failure := u.payWorker(ctx, b, w, now, &result)
		if failure != nil {
			result.Failed = append(result.Failed, *failure)
			continue
		}
		successful = append(successful, *payout)
	}

	sent, demoted := successful, []entities.WorkerFailure(nil)
	if u.notifier != nil {
		sent, demoted = u.notifier.NotifyWorkers(ctx, b.Name, successful, "", now)
	}
	result.Successful = sent
	result.Failed = append(result.Failed, demoted...)

	interval, paymentDay, specificDate := scheduleOf(b.Settings)
	nextDate, calcErr := ComputeNextPaymentDate(interval, paymentDay, specificDate, now)
	if calcErr != nil {
		logger.Error(ctx, "Failed to calculate next payment date", zap.Error(calcErr))
		result.Warnings = append(result.Warnings, "next payment date not advanced: "+calcErr.Error())
	}

	report := entities.PayrollReport{
		BusinessName: b.Name,
		PaymentDate:  now,
		Successful:   result.Successful,
		Failed:       result.Failed,
	}
	if calcErr == nil {
		report.NextPaymentDate = &nextDate
	}
	result.TotalPaid = report.TotalPaid()
	if u.notifier != nil {
		u.notifier.SendReport(ctx, entities.MailKindCompanyReport, b, report)
	}

	if calcErr == nil {
		if err := u.advanceSchedule(ctx, b, interval, paymentDay, specificDate, nextDate, now); err != nil {
			logger.Error(ctx, "Failed to persist next payment date", zap.Time("next_payment_date", nextDate), zap.Error(err))
			result.Warnings = append(result.Warnings, "next payment date not persisted: "+err.Error())
		} else {
			result.NextPaymentDate = &nextDate
			logger.Info(ctx, "Next payment date advanced", zap.Time("next_payment_date", nextDate))
		}
	}
	return result
}

// payWorker records and submits one worker payout; exactly one of the results is non-nil.
func (u *PayrollSweepUsecase) payWorker(ctx context.Context, b *entities.Business, w *entities.Payee, now time.Time, result *entities.BusinessSweepResult) (*entities.WorkerPayout, *entities.WorkerFailure) {
	failure := func(reason string) *entities.WorkerFailure {
		return &entities.WorkerFailure{WorkerID: w.ID, Name: w.Name, Email: w.Email, Reason: reason}
	}

	if reasons := w.IneligibilityReasons(); len(reasons) > 0 {
		logger.Info(ctx, "Worker not eligible for payroll", zap.String("worker_id", w.ID), zap.Strings("reasons", reasons))
		return nil, failure(strings.Join(reasons, "; "))
	}
	wallet, err := checksumAddress(w.Wallet())
	if err != nil {
		return nil, failure("Invalid wallet address")
	}

	recipient := entities.PaymentRecipient{
		RecipientID:   w.ID,
		Name:          w.Name,
		Email:         w.Email,
		WalletAddress: wallet,
		Amount:        w.Salary,
	}
	paymentID, err := u.store.CreatePending(ctx, entities.PendingPaymentInput{
		ID:          utils.PaymentID(PaymentPrefixScheduled, w.ID, now),
		BusinessID:  b.ID,
		Category:    entities.CategoryScheduledPayroll,
		TotalAmount: w.Salary,
		Token:       u.cfg.TokenSymbol,
		PayrollDate: now,
		Recipients:  []entities.PaymentRecipient{recipient},
	})
	if err != nil {
		logger.Error(ctx, "Failed to record scheduled payout", zap.String("worker_id", w.ID), zap.Error(err))
		return nil, failure("Payment record could not be created")
	}

	payout := entities.WorkerPayout{
		PaymentID:     paymentID,
		WorkerID:      w.ID,
		Name:          w.Name,
		Email:         w.Email,
		WalletAddress: wallet,
		Amount:        w.Salary,
	}

	finalizeCtx := context.WithoutCancel(ctx)
	if err := u.sender.SendWorkerPayout(ctx, b.ID, payout); err != nil {
		logger.Warn(ctx, "Payroll data submission failed",
			zap.String("worker_id", w.ID),
			zap.String("payment_id", paymentID),
			zap.Error(err),
		)
		if ferr := u.store.Finalize(finalizeCtx, b.ID, paymentID, entities.FinalizeInput{
			Status:       entities.PaymentStatusFailed,
			ErrorDetails: err.Error(),
		}); ferr != nil {
			logger.Error(ctx, "Failed payout requires manual reconciliation", zap.String("payment_id", paymentID), zap.Error(ferr))
		}
		return nil, failure("Payroll API request failed")
	}

	if err := u.store.Finalize(finalizeCtx, b.ID, paymentID, entities.FinalizeInput{Status: entities.PaymentStatusSuccess}); err != nil {
		logger.Error(ctx, "Sent payout requires manual reconciliation", zap.String("payment_id", paymentID), zap.Error(err))
		result.Warnings = append(result.Warnings, fmt.Sprintf("payment %s requires manual review", paymentID))
	}
	return &payout, nil
}

// advanceSchedule writes the new date to the business and its schedule mirror together.
func (u *PayrollSweepUsecase) advanceSchedule(ctx context.Context, b *entities.Business, interval entities.PaymentInterval, paymentDay string, specificDate int, next, now time.Time) error {
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.businesses.UpdateNextPaymentDate(txCtx, b.ID, next); err != nil {
			return err
		}
		return u.schedules.Upsert(txCtx, &entities.PayrollSchedule{
			BusinessID:      b.ID,
			PaymentInterval: interval,
			PaymentDay:      paymentDay,
			SpecificDate:    &specificDate,
			NextPaymentDate: next,
			Status:          entities.ScheduleStatusActive,
			LastUpdated:     now,
		})
	})
}

// scheduleOf applies the sweep fallbacks for incomplete settings.
func scheduleOf(s entities.BusinessSettings) (entities.PaymentInterval, string, int) {
	interval := s.PaymentInterval
	if strings.TrimSpace(string(interval)) == "" {
		interval = entities.DefaultPaymentInterval
	}
	paymentDay := s.PaymentDay
	if strings.TrimSpace(paymentDay) == "" {
		paymentDay = entities.DefaultPaymentDay
	}
	specificDate := entities.DefaultSpecificDate
	if s.SpecificDate != nil && *s.SpecificDate > 0 {
		specificDate = *s.SpecificDate
	}
	return interval, paymentDay, specificDate
}
