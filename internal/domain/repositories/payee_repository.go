package repositories

import (
	"context"

	"trivix-payroll.backend/internal/domain/entities"
)

// PayeeRepository stores workers and contractors
type PayeeRepository interface {
	Create(ctx context.Context, payee *entities.Payee) error
	GetByID(ctx context.Context, businessID, id string) (*entities.Payee, error)
	ListByBusiness(ctx context.Context, businessID string, kind entities.PayeeKind) ([]*entities.Payee, error)
	UpdateStatus(ctx context.Context, businessID, id string, status entities.PayeeStatus) error
	ConnectWallet(ctx context.Context, businessID, id, walletAddress string) error
}
