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
)

// ScheduleInput is a requested payroll schedule
type ScheduleInput struct {
	PaymentInterval entities.PaymentInterval
	PaymentDay      string
	SpecificDate    *int
}

// PayrollSettingsUsecase manages the payroll schedule of a business
type PayrollSettingsUsecase struct {
	uow        repositories.UnitOfWork
	businesses repositories.BusinessRepository
	schedules  repositories.PayrollScheduleRepository
	clock      Clock
}

// NewPayrollSettingsUsecase creates a new payroll settings usecase
func NewPayrollSettingsUsecase(
	uow repositories.UnitOfWork,
	businesses repositories.BusinessRepository,
	schedules repositories.PayrollScheduleRepository,
	clock Clock,
) *PayrollSettingsUsecase {
	if clock == nil {
		clock = time.Now
	}
	return &PayrollSettingsUsecase{uow: uow, businesses: businesses, schedules: schedules, clock: clock}
}

// UpdateSchedule stores the schedule with its first next payment date.
// Business settings and the schedule mirror are written together.
func (u *PayrollSettingsUsecase) UpdateSchedule(ctx context.Context, businessID string, input ScheduleInput) (*entities.PayrollSchedule, error) {
	specificDate := entities.DefaultSpecificDate
	if input.SpecificDate != nil {
		specificDate = *input.SpecificDate
	}

	now := u.clock()
	next, err := ComputeNextPaymentDate(input.PaymentInterval, input.PaymentDay, specificDate, now)
	if err != nil {
		return nil, err
	}

	schedule := &entities.PayrollSchedule{
		BusinessID:      businessID,
		PaymentInterval: input.PaymentInterval,
		PaymentDay:      input.PaymentDay,
		SpecificDate:    input.SpecificDate,
		NextPaymentDate: next,
		Status:          entities.ScheduleStatusActive,
		LastUpdated:     now,
	}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.businesses.UpdateSettings(txCtx, businessID, entities.BusinessSettings{
			PaymentInterval: input.PaymentInterval,
			PaymentDay:      input.PaymentDay,
			SpecificDate:    input.SpecificDate,
			NextPaymentDate: &next,
		}); err != nil {
			return err
		}
		return u.schedules.Upsert(txCtx, schedule)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("business not found")
		}
		return nil, err
	}

	logger.Info(ctx, "Payroll schedule updated",
		zap.String("business_id", businessID),
		zap.String("interval", string(input.PaymentInterval)),
		zap.Time("next_payment_date", next),
	)
	return schedule, nil
}

// GetSchedule returns the current schedule mirror
func (u *PayrollSettingsUsecase) GetSchedule(ctx context.Context, businessID string) (*entities.PayrollSchedule, error) {
	schedule, err := u.schedules.GetCurrent(ctx, businessID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("payroll schedule not configured")
		}
		return nil, err
	}
	return schedule, nil
}
