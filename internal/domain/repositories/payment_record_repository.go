package repositories

import (
	"context"
	"time"

	"trivix-payroll.backend/internal/domain/entities"
)

// PaymentRecordRepository persists payment records and their recipients
type PaymentRecordRepository interface {
	Create(ctx context.Context, record *entities.PaymentRecord) error
	GetByID(ctx context.Context, businessID, id string) (*entities.PaymentRecord, error)
	// GetByIDForUpdate reads the record with a row lock when run inside a UnitOfWork.
	GetByIDForUpdate(ctx context.Context, businessID, id string) (*entities.PaymentRecord, error)
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entities.PaymentRecord, int64, error)
	// ListPendingBefore lists Pending records created before the cutoff; an empty businessID spans all businesses.
	ListPendingBefore(ctx context.Context, businessID string, before time.Time, limit int) ([]*entities.PaymentRecord, error)
	UpdateOutcome(ctx context.Context, businessID, id string, outcome entities.FinalizeInput) error
}

// PaymentHistoryRepository is the append-only payout ledger
type PaymentHistoryRepository interface {
	// Append inserts entry unless an entry with the same id exists; it reports whether a row was written.
	Append(ctx context.Context, entry *entities.PaymentHistoryEntry) (bool, error)
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entities.PaymentHistoryEntry, int64, error)
}
