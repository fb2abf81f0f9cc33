package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"trivix-payroll.backend/internal/domain/entities"
	"trivix-payroll.backend/internal/infrastructure/models"
)

// MailRepository writes mail documents into the mail_queue table drained by the mail transport
type MailRepository struct {
	db *gorm.DB
}

// NewMailRepository creates a new mail queue repository
func NewMailRepository(db *gorm.DB) *MailRepository {
	return &MailRepository{db: db}
}

// Enqueue inserts a mail document
func (r *MailRepository) Enqueue(ctx context.Context, message *entities.MailMessage) error {
	m, err := r.toModel(message)
	if err != nil {
		return err
	}
	return GetDB(ctx, r.db).Create(m).Error
}

// EnqueueIfAbsent inserts a mail document unless its id was already queued
func (r *MailRepository) EnqueueIfAbsent(ctx context.Context, message *entities.MailMessage) (bool, error) {
	m, err := r.toModel(message)
	if err != nil {
		return false, err
	}
	result := GetDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *MailRepository) toModel(message *entities.MailMessage) (*models.MailMessage, error) {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	attachments := message.Attachments
	if attachments == nil {
		attachments = []entities.MailAttachment{}
	}
	raw, err := json.Marshal(attachments)
	if err != nil {
		return nil, fmt.Errorf("encode attachments: %w", err)
	}
	return &models.MailMessage{
		ID:          message.ID,
		Kind:        string(message.Kind),
		To:          message.To,
		Subject:     message.Message.Subject,
		Text:        message.Message.Text,
		HTML:        message.Message.HTML,
		Attachments: string(raw),
		CreatedAt:   message.CreatedAt,
	}, nil
}
