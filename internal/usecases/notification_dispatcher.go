package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/domain/repositories"
	"trivix-payroll.backend/pkg/logger"
	"trivix-payroll.backend/pkg/utils"
)

// NotificationDispatcher accepts prebuilt mail documents. Delivery happens elsewhere.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, message *entities.MailMessage) error
	// DispatchOnce queues message only if its id was never queued and reports whether it did.
	DispatchOnce(ctx context.Context, message *entities.MailMessage) (bool, error)
}

// MailQueueDispatcher writes mail documents into the mail queue table
type MailQueueDispatcher struct {
	mails repositories.MailRepository
	clock Clock
}

// NewMailQueueDispatcher creates a dispatcher backed by the mail queue
func NewMailQueueDispatcher(mails repositories.MailRepository, clock Clock) *MailQueueDispatcher {
	if clock == nil {
		clock = time.Now
	}
	return &MailQueueDispatcher{mails: mails, clock: clock}
}

// Dispatch queues message
func (d *MailQueueDispatcher) Dispatch(ctx context.Context, message *entities.MailMessage) error {
	if err := d.prepare(message); err != nil {
		return err
	}
	if err := d.mails.Enqueue(ctx, message); err != nil {
		logger.Error(ctx, "Failed to enqueue mail", zap.String("mail_id", message.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", domainerrors.ErrNotificationDispatch, err)
	}
	return nil
}

// DispatchOnce queues message unless its id already exists
func (d *MailQueueDispatcher) DispatchOnce(ctx context.Context, message *entities.MailMessage) (bool, error) {
	if err := d.prepare(message); err != nil {
		return false, err
	}
	queued, err := d.mails.EnqueueIfAbsent(ctx, message)
	if err != nil {
		logger.Error(ctx, "Failed to enqueue mail", zap.String("mail_id", message.ID), zap.Error(err))
		return false, fmt.Errorf("%w: %v", domainerrors.ErrNotificationDispatch, err)
	}
	return queued, nil
}

func (d *MailQueueDispatcher) prepare(message *entities.MailMessage) error {
	if message == nil || strings.TrimSpace(message.To) == "" {
		return fmt.Errorf("%w: recipient address is required", domainerrors.ErrNotificationDispatch)
	}
	if message.ID == "" {
		message.ID = utils.GenerateUUIDv7().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = d.clock()
	}
	return nil
}
