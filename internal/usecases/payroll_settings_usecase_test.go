package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/usecases"
)

func TestPayrollSettingsUsecase_UpdateSchedule(t *testing.T) {
	uow := new(MockUnitOfWork)
	businesses := new(MockBusinessRepository)
	schedules := new(MockPayrollScheduleRepository)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	uc := usecases.NewPayrollSettingsUsecase(uow, businesses, schedules, fixedClock)

	specific := 15
	expected := time.Date(2026, time.November, 16, 0, 0, 0, 0, time.UTC)
	businesses.On("UpdateSettings", mock.Anything, testBusiness, mock.MatchedBy(func(s entities.BusinessSettings) bool {
		return s.PaymentDay == entities.PaymentDaySpecificDate && s.NextPaymentDate != nil && s.NextPaymentDate.Equal(expected)
	})).Return(nil).Once()
	schedules.On("Upsert", mock.Anything, mock.AnythingOfType("*entities.PayrollSchedule")).Return(nil).Once()

	schedule, err := uc.UpdateSchedule(context.Background(), testBusiness, usecases.ScheduleInput{
		PaymentInterval: entities.IntervalMonthly,
		PaymentDay:      entities.PaymentDaySpecificDate,
		SpecificDate:    &specific,
	})
	require.NoError(t, err)
	assert.True(t, schedule.NextPaymentDate.Equal(expected))
	assert.Equal(t, entities.ScheduleStatusActive, schedule.Status)
	businesses.AssertExpectations(t)
	schedules.AssertExpectations(t)
}

func TestPayrollSettingsUsecase_UpdateScheduleInvalid(t *testing.T) {
	uow := new(MockUnitOfWork)
	uc := usecases.NewPayrollSettingsUsecase(uow, new(MockBusinessRepository), new(MockPayrollScheduleRepository), fixedClock)

	_, err := uc.UpdateSchedule(context.Background(), testBusiness, usecases.ScheduleInput{PaymentInterval: "Daily", PaymentDay: "Monday"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidConfiguration)
	uow.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
}

func TestPayrollSettingsUsecase_UpdateScheduleUnknownBusiness(t *testing.T) {
	uow := new(MockUnitOfWork)
	businesses := new(MockBusinessRepository)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	businesses.On("UpdateSettings", mock.Anything, "0xghost", mock.Anything).Return(domainerrors.ErrNotFound).Once()
	uc := usecases.NewPayrollSettingsUsecase(uow, businesses, new(MockPayrollScheduleRepository), fixedClock)

	_, err := uc.UpdateSchedule(context.Background(), "0xghost", usecases.ScheduleInput{PaymentInterval: entities.IntervalWeekly, PaymentDay: "Friday"})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeNotFound, appErr.Code)
}

func TestPayrollSettingsUsecase_GetSchedule(t *testing.T) {
	schedules := new(MockPayrollScheduleRepository)
	uc := usecases.NewPayrollSettingsUsecase(new(MockUnitOfWork), new(MockBusinessRepository), schedules, fixedClock)
	schedules.On("GetCurrent", mock.Anything, testBusiness).Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.GetSchedule(context.Background(), testBusiness)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
