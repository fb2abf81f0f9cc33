package repositories

import (
	"context"

	"trivix-payroll.backend/internal/domain/entities"
)

// MailRepository is the outgoing mail queue
type MailRepository interface {
	Enqueue(ctx context.Context, message *entities.MailMessage) error
	// EnqueueIfAbsent writes message only when its id is new and reports whether it was written.
	EnqueueIfAbsent(ctx context.Context, message *entities.MailMessage) (bool, error)
}
