package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/infrastructure/models"
)

// PayeeRepository implements worker and contractor persistence
type PayeeRepository struct {
	db *gorm.DB
}

// NewPayeeRepository creates a new payee repository
func NewPayeeRepository(db *gorm.DB) *PayeeRepository {
	return &PayeeRepository{db: db}
}

// Create creates a new payee
func (r *PayeeRepository) Create(ctx context.Context, payee *entities.Payee) error {
	now := time.Now()
	payee.CreatedAt = now
	payee.UpdatedAt = now

	m := &models.Payee{
		ID:            payee.ID,
		BusinessID:    payee.BusinessID,
		Kind:          string(payee.Kind),
		Name:          payee.Name,
		Email:         payee.Email,
		Role:          payee.Role,
		Salary:        payee.Salary,
		Status:        string(payee.Status),
		WalletAddress: payee.WalletAddress,
		InviteLink:    payee.InviteLink,
		Note:          payee.Note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

// GetByID gets a payee of a business
func (r *PayeeRepository) GetByID(ctx context.Context, businessID, id string) (*entities.Payee, error) {
	var m models.Payee
	if err := GetDB(ctx, r.db).Where("id = ? AND business_id = ?", id, businessID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByBusiness lists payees of a business in creation order; an empty kind lists all
func (r *PayeeRepository) ListByBusiness(ctx context.Context, businessID string, kind entities.PayeeKind) ([]*entities.Payee, error) {
	q := GetDB(ctx, r.db).Where("business_id = ?", businessID)
	if kind != "" {
		q = q.Where("kind = ?", string(kind))
	}

	var ms []models.Payee
	if err := q.Order("created_at ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	payees := make([]*entities.Payee, 0, len(ms))
	for i := range ms {
		payees = append(payees, r.toEntity(&ms[i]))
	}
	return payees, nil
}

// UpdateStatus sets the payee status
func (r *PayeeRepository) UpdateStatus(ctx context.Context, businessID, id string, status entities.PayeeStatus) error {
	result := GetDB(ctx, r.db).Model(&models.Payee{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ConnectWallet stores the wallet of an Invited payee without one and activates it.
// A payee in any other state yields ErrConflict.
func (r *PayeeRepository) ConnectWallet(ctx context.Context, businessID, id, walletAddress string) error {
	db := GetDB(ctx, r.db)
	result := db.Model(&models.Payee{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Where("LOWER(status) = ?", strings.ToLower(string(entities.PayeeStatusInvited))).
		Where("(wallet_address IS NULL OR TRIM(wallet_address) = '')").
		Updates(map[string]interface{}{
			"wallet_address": null.StringFrom(walletAddress),
			"status":         string(entities.PayeeStatusActive),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var existing int64
	if err := db.Model(&models.Payee{}).Where("id = ? AND business_id = ?", id, businessID).Count(&existing).Error; err != nil {
		return err
	}
	if existing == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrConflict
}

func (r *PayeeRepository) toEntity(m *models.Payee) *entities.Payee {
	return &entities.Payee{
		ID:            m.ID,
		BusinessID:    m.BusinessID,
		Kind:          entities.PayeeKind(m.Kind),
		Name:          m.Name,
		Email:         m.Email,
		Role:          m.Role,
		Salary:        m.Salary,
		Status:        entities.PayeeStatus(m.Status),
		WalletAddress: m.WalletAddress,
		InviteLink:    m.InviteLink,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
