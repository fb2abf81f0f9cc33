package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/domain/repositories"
	"trivix-payroll.backend/pkg/logger"
	"trivix-payroll.backend/pkg/utils"
)

// Clock returns the current time
type Clock func() time.Time

// PaymentRecordStore owns the Pending -> Success|Failed lifecycle of payment records
type PaymentRecordStore struct {
	uow     repositories.UnitOfWork
	records repositories.PaymentRecordRepository
	history repositories.PaymentHistoryRepository
	payees  repositories.PayeeRepository
	clock   Clock
}

// NewPaymentRecordStore creates a new payment record store
func NewPaymentRecordStore(
	uow repositories.UnitOfWork,
	records repositories.PaymentRecordRepository,
	history repositories.PaymentHistoryRepository,
	payees repositories.PayeeRepository,
	clock Clock,
) *PaymentRecordStore {
	if clock == nil {
		clock = time.Now
	}
	return &PaymentRecordStore{
		uow:     uow,
		records: records,
		history: history,
		payees:  payees,
		clock:   clock,
	}
}

// CreatePending writes a new Pending record and returns its id.
// The record must exist before anything is sent on chain.
func (s *PaymentRecordStore) CreatePending(ctx context.Context, input entities.PendingPaymentInput) (string, error) {
	if input.BusinessID == "" {
		return "", domainerrors.BadRequest("business id is required")
	}
	if len(input.Recipients) == 0 {
		return "", domainerrors.BadRequest("at least one recipient is required")
	}
	for _, r := range input.Recipients {
		if !r.Amount.IsPositive() {
			return "", domainerrors.InvalidAmount("recipient amount must be greater than zero")
		}
	}
	if input.TotalAmount.IsNegative() {
		return "", domainerrors.InvalidAmount("total amount must not be negative")
	}

	now := s.clock()
	id := input.ID
	if id == "" {
		id = s.generateID(input, now)
	}
	payrollDate := input.PayrollDate
	if payrollDate.IsZero() {
		payrollDate = now
	}
	period := input.PayrollPeriod
	if period == "" {
		period = entities.PayrollPeriodLabel(payrollDate)
	}

	record := &entities.PaymentRecord{
		ID:            id,
		BusinessID:    input.BusinessID,
		Category:      input.Category,
		Status:        entities.PaymentStatusPending,
		TotalAmount:   input.TotalAmount,
		Token:         input.Token,
		GasLimit:      input.GasLimit,
		PayrollPeriod: period,
		PayrollDate:   payrollDate,
		Recipients:    input.Recipients,
		CreatedAt:     now,
	}
	if err := s.records.Create(ctx, record); err != nil {
		logger.Error(ctx, "Failed to create pending payment record",
			zap.String("payment_id", id),
			zap.Error(err),
		)
		return "", domainerrors.Persistence(err)
	}

	logger.Info(ctx, "Pending payment record created",
		zap.String("payment_id", id),
		zap.String("category", string(input.Category)),
		zap.String("total_amount", input.TotalAmount.String()),
	)
	return id, nil
}

func (s *PaymentRecordStore) generateID(input entities.PendingPaymentInput, now time.Time) string {
	switch input.Category {
	case entities.CategoryContractorPayment:
		return utils.PaymentID(PaymentPrefixContractor, input.Recipients[0].RecipientID, now)
	case entities.CategoryScheduledPayroll:
		return utils.PaymentID(PaymentPrefixScheduled, input.Recipients[0].RecipientID, now)
	default:
		return utils.PaymentID(PaymentPrefixPayroll, input.BusinessID, now)
	}
}

// Finalize applies the terminal outcome. Repeating the same terminal status is a no-op;
// a different terminal status is rejected with ErrInvalidTransition.
// A successful contractor payment also appends the history entry and marks the contractor Paid
// in the same transaction.
func (s *PaymentRecordStore) Finalize(ctx context.Context, businessID, paymentID string, outcome entities.FinalizeInput) error {
	if !outcome.Status.IsTerminal() {
		return domainerrors.BadRequest("finalize requires a terminal status")
	}

	applied := false
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		record, err := s.records.GetByIDForUpdate(txCtx, businessID, paymentID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("payment not found")
			}
			return err
		}

		if record.Status.IsTerminal() {
			if record.Status == outcome.Status {
				return nil
			}
			return domainerrors.ErrInvalidTransition
		}

		if err := s.records.UpdateOutcome(txCtx, businessID, paymentID, outcome); err != nil {
			return err
		}
		applied = true

		if outcome.Status != entities.PaymentStatusSuccess || record.Category != entities.CategoryContractorPayment {
			return nil
		}
		if len(record.Recipients) == 0 {
			return errors.New("contractor payment has no recipient")
		}
		contractor := record.Recipients[0]

		if _, err := s.history.Append(txCtx, &entities.PaymentHistoryEntry{
			ID:                     record.ID,
			BusinessID:             businessID,
			PaymentID:              record.ID,
			TransactionID:          record.ID,
			Category:               record.Category,
			Amount:                 record.TotalAmount,
			Status:                 entities.PaymentStatusSuccess,
			TransactionHash:        outcome.TransactionHash,
			RecipientWalletAddress: contractor.WalletAddress,
			RecipientName:          contractor.Name,
			CreatedAt:              s.clock(),
		}); err != nil {
			return err
		}
		return s.payees.UpdateStatus(txCtx, businessID, contractor.RecipientID, entities.PayeeStatusPaid)
	})
	if err != nil {
		var appErr *domainerrors.AppError
		if errors.Is(err, domainerrors.ErrInvalidTransition) || errors.As(err, &appErr) {
			return err
		}
		logger.Error(ctx, "Failed to finalize payment record",
			zap.String("payment_id", paymentID),
			zap.String("status", string(outcome.Status)),
			zap.Error(err),
		)
		return domainerrors.Persistence(err)
	}

	if applied {
		logger.Info(ctx, "Payment record finalized",
			zap.String("payment_id", paymentID),
			zap.String("status", string(outcome.Status)),
			zap.String("tx_hash", outcome.TransactionHash),
		)
	}
	return nil
}

// Get reads one payment record of a business
func (s *PaymentRecordStore) Get(ctx context.Context, businessID, paymentID string) (*entities.PaymentRecord, error) {
	record, err := s.records.GetByID(ctx, businessID, paymentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("payment not found")
		}
		return nil, err
	}
	return record, nil
}

// ListByBusiness pages through the records of a business, newest first
func (s *PaymentRecordStore) ListByBusiness(ctx context.Context, businessID string, page utils.PageRequest) ([]*entities.PaymentRecord, utils.PaginationMeta, error) {
	records, total, err := s.records.ListByBusiness(ctx, businessID, page.Limit, page.Offset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return records, page.Meta(total), nil
}

// ListStalePending lists records still Pending after olderThan; an empty businessID spans all businesses.
// They need manual reconciliation and are never finalized automatically.
func (s *PaymentRecordStore) ListStalePending(ctx context.Context, businessID string, olderThan time.Duration) ([]*entities.PaymentRecord, error) {
	if olderThan <= 0 {
		olderThan = DefaultStalePendingAge
	}
	return s.records.ListPendingBefore(ctx, businessID, s.clock().Add(-olderThan), DefaultStalePendingList)
}
