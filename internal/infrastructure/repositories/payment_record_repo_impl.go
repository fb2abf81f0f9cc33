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

// PaymentRecordRepository implements payment record persistence
type PaymentRecordRepository struct {
	db *gorm.DB
}

// NewPaymentRecordRepository creates a new payment record repository
func NewPaymentRecordRepository(db *gorm.DB) *PaymentRecordRepository {
	return &PaymentRecordRepository{db: db}
}

// Create inserts the record and its recipients. An existing id yields ErrAlreadyExists.
func (r *PaymentRecordRepository) Create(ctx context.Context, record *entities.PaymentRecord) error {
	db := GetDB(ctx, r.db)

	var existing int64
	if err := db.Model(&models.PaymentRecord{}).Where("id = ?", record.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return domainerrors.ErrAlreadyExists
	}

	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = record.CreatedAt

	m := &models.PaymentRecord{
		ID:              record.ID,
		BusinessID:      record.BusinessID,
		Category:        string(record.Category),
		Status:          string(record.Status),
		TotalAmount:     record.TotalAmount,
		Token:           record.Token,
		GasLimit:        record.GasLimit,
		PayrollPeriod:   record.PayrollPeriod,
		PayrollDate:     record.PayrollDate,
		TransactionHash: record.TransactionHash,
		ErrorDetails:    record.ErrorDetails,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
	for i, rc := range record.Recipients {
		m.Recipients = append(m.Recipients, models.PaymentRecipient{
			PaymentID:     record.ID,
			Position:      i,
			RecipientID:   rc.RecipientID,
			Name:          rc.Name,
			Email:         rc.Email,
			WalletAddress: rc.WalletAddress,
			Amount:        rc.Amount,
		})
	}

	return db.Create(m).Error
}

// GetByID gets a payment record of a business
func (r *PaymentRecordRepository) GetByID(ctx context.Context, businessID, id string) (*entities.PaymentRecord, error) {
	return r.get(GetDB(ctx, r.db), businessID, id)
}

// GetByIDForUpdate locks the row for the surrounding transaction. SQLite ignores the lock clause.
func (r *PaymentRecordRepository) GetByIDForUpdate(ctx context.Context, businessID, id string) (*entities.PaymentRecord, error) {
	return r.get(GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), businessID, id)
}

func (r *PaymentRecordRepository) get(db *gorm.DB, businessID, id string) (*entities.PaymentRecord, error) {
	var m models.PaymentRecord
	err := db.Where("id = ? AND business_id = ?", id, businessID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadRecipients(db.Session(&gorm.Session{NewDB: true}), []*models.PaymentRecord{&m}); err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByBusiness lists records newest first
func (r *PaymentRecordRepository) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entities.PaymentRecord, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&models.PaymentRecord{}).
		Where("business_id = ?", businessID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []*models.PaymentRecord
	if err := db.
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	if err := r.loadRecipients(db, ms); err != nil {
		return nil, 0, err
	}

	records := make([]*entities.PaymentRecord, 0, len(ms))
	for _, m := range ms {
		records = append(records, r.toEntity(m))
	}
	return records, total, nil
}

// ListPendingBefore returns records still Pending that were created before the cutoff
func (r *PaymentRecordRepository) ListPendingBefore(ctx context.Context, businessID string, before time.Time, limit int) ([]*entities.PaymentRecord, error) {
	db := GetDB(ctx, r.db)

	q := db.Where("status = ? AND created_at < ?", string(entities.PaymentStatusPending), before)
	if businessID != "" {
		q = q.Where("business_id = ?", businessID)
	}

	var ms []*models.PaymentRecord
	if err := q.
		Order("created_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	if err := r.loadRecipients(db, ms); err != nil {
		return nil, err
	}

	records := make([]*entities.PaymentRecord, 0, len(ms))
	for _, m := range ms {
		records = append(records, r.toEntity(m))
	}
	return records, nil
}

// UpdateOutcome moves a Pending record to its terminal status.
// A record that is missing or no longer Pending is reported as ErrInvalidTransition.
func (r *PaymentRecordRepository) UpdateOutcome(ctx context.Context, businessID, id string, outcome entities.FinalizeInput) error {
	updates := map[string]interface{}{
		"status":     string(outcome.Status),
		"updated_at": time.Now(),
	}
	if outcome.TransactionHash != "" {
		updates["transaction_hash"] = outcome.TransactionHash
	}
	if outcome.ErrorDetails != "" {
		updates["error_details"] = outcome.ErrorDetails
	}

	result := GetDB(ctx, r.db).Model(&models.PaymentRecord{}).
		Where("id = ? AND business_id = ? AND status = ?", id, businessID, string(entities.PaymentStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidTransition
	}
	return nil
}

func (r *PaymentRecordRepository) loadRecipients(db *gorm.DB, ms []*models.PaymentRecord) error {
	if len(ms) == 0 {
		return nil
	}
	ids := make([]string, 0, len(ms))
	byID := make(map[string]*models.PaymentRecord, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ID)
		byID[m.ID] = m
	}

	var recipients []models.PaymentRecipient
	if err := db.Model(&models.PaymentRecipient{}).
		Where("payment_id IN ?", ids).
		Order("payment_id, position").
		Find(&recipients).Error; err != nil {
		return err
	}
	for _, rc := range recipients {
		if m, ok := byID[rc.PaymentID]; ok {
			m.Recipients = append(m.Recipients, rc)
		}
	}
	return nil
}

func (r *PaymentRecordRepository) toEntity(m *models.PaymentRecord) *entities.PaymentRecord {
	record := &entities.PaymentRecord{
		ID:              m.ID,
		BusinessID:      m.BusinessID,
		Category:        entities.PaymentCategory(m.Category),
		Status:          entities.PaymentStatus(m.Status),
		TotalAmount:     m.TotalAmount,
		Token:           m.Token,
		GasLimit:        m.GasLimit,
		PayrollPeriod:   m.PayrollPeriod,
		PayrollDate:     m.PayrollDate,
		TransactionHash: m.TransactionHash,
		ErrorDetails:    m.ErrorDetails,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Recipients:      make([]entities.PaymentRecipient, 0, len(m.Recipients)),
	}
	for _, rc := range m.Recipients {
		record.Recipients = append(record.Recipients, entities.PaymentRecipient{
			RecipientID:   rc.RecipientID,
			Name:          rc.Name,
			Email:         rc.Email,
			WalletAddress: rc.WalletAddress,
			Amount:        rc.Amount,
		})
	}
	return record
}

// PaymentHistoryRepository implements the payout ledger
type PaymentHistoryRepository struct {
	db *gorm.DB
}

// NewPaymentHistoryRepository creates a new payment history repository
func NewPaymentHistoryRepository(db *gorm.DB) *PaymentHistoryRepository {
	return &PaymentHistoryRepository{db: db}
}

// Append inserts the entry; a duplicate id is skipped and reported as false.
func (r *PaymentHistoryRepository) Append(ctx context.Context, entry *entities.PaymentHistoryEntry) (bool, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m := &models.PaymentHistory{
		ID:                     entry.ID,
		BusinessID:             entry.BusinessID,
		PaymentID:              entry.PaymentID,
		TransactionID:          entry.TransactionID,
		Category:               string(entry.Category),
		Amount:                 entry.Amount,
		Status:                 string(entry.Status),
		TransactionHash:        entry.TransactionHash,
		RecipientWalletAddress: entry.RecipientWalletAddress,
		RecipientName:          entry.RecipientName,
		CreatedAt:              entry.CreatedAt,
	}
	result := GetDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByBusiness lists ledger entries newest first
func (r *PaymentHistoryRepository) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entities.PaymentHistoryEntry, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&models.PaymentHistory{}).
		Where("business_id = ?", businessID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.PaymentHistory
	if err := db.
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*entities.PaymentHistoryEntry, 0, len(ms))
	for _, m := range ms {
		entries = append(entries, &entities.PaymentHistoryEntry{
			ID:                     m.ID,
			BusinessID:             m.BusinessID,
			PaymentID:              m.PaymentID,
			TransactionID:          m.TransactionID,
			Category:               entities.PaymentCategory(m.Category),
			Amount:                 m.Amount,
			Status:                 entities.PaymentStatus(m.Status),
			TransactionHash:        m.TransactionHash,
			RecipientWalletAddress: m.RecipientWalletAddress,
			RecipientName:          m.RecipientName,
			CreatedAt:              m.CreatedAt,
		})
	}
	return entries, total, nil
}
