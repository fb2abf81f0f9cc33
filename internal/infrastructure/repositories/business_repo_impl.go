package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/infrastructure/models"
)

// BusinessRepository implements business persistence
type BusinessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

// Create creates a new business
func (r *BusinessRepository) Create(ctx context.Context, business *entities.Business) error {
	now := time.Now()
	business.CreatedAt = now
	business.UpdatedAt = now
	m := &models.Business{
		ID:              business.ID,
		Name:            business.Name,
		Email:           business.Email,
		PaymentInterval: string(business.Settings.PaymentInterval),
		PaymentDay:      business.Settings.PaymentDay,
		SpecificDate:    business.Settings.SpecificDate,
		NextPaymentDate: business.Settings.NextPaymentDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

// GetByID gets a business by wallet address
func (r *BusinessRepository) GetByID(ctx context.Context, id string) (*entities.Business, error) {
	var m models.Business
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns every business ordered by id
func (r *BusinessRepository) List(ctx context.Context) ([]*entities.Business, error) {
	var ms []models.Business
	if err := GetDB(ctx, r.db).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Business, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out, nil
}

// UpdateSettings replaces the payroll schedule settings
func (r *BusinessRepository) UpdateSettings(ctx context.Context, id string, settings entities.BusinessSettings) error {
	result := GetDB(ctx, r.db).Model(&models.Business{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_interval":  string(settings.PaymentInterval),
			"payment_day":       settings.PaymentDay,
			"specific_date":     settings.SpecificDate,
			"next_payment_date": settings.NextPaymentDate,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateNextPaymentDate advances settings.nextPaymentDate
func (r *BusinessRepository) UpdateNextPaymentDate(ctx context.Context, id string, next time.Time) error {
	result := GetDB(ctx, r.db).Model(&models.Business{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"next_payment_date": next,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *BusinessRepository) toEntity(m *models.Business) *entities.Business {
	return &entities.Business{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
		Settings: entities.BusinessSettings{
			PaymentInterval: entities.PaymentInterval(m.PaymentInterval),
			PaymentDay:      m.PaymentDay,
			SpecificDate:    m.SpecificDate,
			NextPaymentDate: m.NextPaymentDate,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PayrollScheduleRepository implements the schedule mirror
type PayrollScheduleRepository struct {
	db *gorm.DB
}

// NewPayrollScheduleRepository creates a new payroll schedule repository
func NewPayrollScheduleRepository(db *gorm.DB) *PayrollScheduleRepository {
	return &PayrollScheduleRepository{db: db}
}

// Upsert writes the current schedule of a business
func (r *PayrollScheduleRepository) Upsert(ctx context.Context, schedule *entities.PayrollSchedule) error {
	if schedule.LastUpdated.IsZero() {
		schedule.LastUpdated = time.Now()
	}
	m := &models.PayrollSchedule{
		BusinessID:      schedule.BusinessID,
		PaymentInterval: string(schedule.PaymentInterval),
		PaymentDay:      schedule.PaymentDay,
		SpecificDate:    schedule.SpecificDate,
		NextPaymentDate: schedule.NextPaymentDate,
		Status:          schedule.Status,
		LastUpdated:     schedule.LastUpdated,
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "business_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payment_interval", "payment_day", "specific_date", "next_payment_date", "status", "last_updated"}),
	}).Create(m).Error
}

// GetCurrent reads the schedule mirror
func (r *PayrollScheduleRepository) GetCurrent(ctx context.Context, businessID string) (*entities.PayrollSchedule, error) {
	var m models.PayrollSchedule
	if err := GetDB(ctx, r.db).Where("business_id = ?", businessID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.PayrollSchedule{
		BusinessID:      m.BusinessID,
		PaymentInterval: entities.PaymentInterval(m.PaymentInterval),
		PaymentDay:      m.PaymentDay,
		SpecificDate:    m.SpecificDate,
		NextPaymentDate: m.NextPaymentDate,
		Status:          m.Status,
		LastUpdated:     m.LastUpdated,
	}, nil
}
