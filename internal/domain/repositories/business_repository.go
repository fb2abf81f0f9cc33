package repositories

import (
	"context"
	"time"

	"trivix-payroll.backend/internal/domain/entities"
)

// BusinessRepository stores businesses and their payroll schedule
type BusinessRepository interface {
	Create(ctx context.Context, business *entities.Business) error
	GetByID(ctx context.Context, id string) (*entities.Business, error)
	List(ctx context.Context) ([]*entities.Business, error)
	UpdateSettings(ctx context.Context, id string, settings entities.BusinessSettings) error
	UpdateNextPaymentDate(ctx context.Context, id string, next time.Time) error
}

// PayrollScheduleRepository stores the "current" schedule mirror of a business
type PayrollScheduleRepository interface {
	Upsert(ctx context.Context, schedule *entities.PayrollSchedule) error
	GetCurrent(ctx context.Context, businessID string) (*entities.PayrollSchedule, error)
}
