package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/domain/repositories"
	"trivix-payroll.backend/pkg/logger"
	"trivix-payroll.backend/pkg/utils"
)

// PoolTransferInput is a pool deposit or withdrawal made from the business wallet
type PoolTransferInput struct {
	Category        entities.PaymentCategory
	Amount          decimal.Decimal
	TransactionHash string
	WalletAddress   string
}

// HistoryUsecase reads and extends the payment history ledger
type HistoryUsecase struct {
	history repositories.PaymentHistoryRepository
	clock   Clock
}

func NewHistoryUsecase(history repositories.PaymentHistoryRepository, clock Clock) *HistoryUsecase {
	if clock == nil {
		clock = time.Now
	}
	return &HistoryUsecase{history: history, clock: clock}
}

// List pages through the ledger, newest first
func (u *HistoryUsecase) List(ctx context.Context, businessID string, page utils.PageRequest) ([]*entities.PaymentHistoryEntry, utils.PaginationMeta, error) {
	entries, total, err := u.history.ListByBusiness(ctx, businessID, page.Limit, page.Offset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return entries, page.Meta(total), nil
}

// RecordPoolTransfer logs a confirmed deposit into or withdrawal from the pool
func (u *HistoryUsecase) RecordPoolTransfer(ctx context.Context, businessID string, input PoolTransferInput) (*entities.PaymentHistoryEntry, error) {
	if input.Category != entities.CategoryDeposit && input.Category != entities.CategoryWithdrawal {
		return nil, domainerrors.BadRequest("category must be deposit or withdrawal")
	}
	if !input.Amount.IsPositive() {
		return nil, domainerrors.InvalidAmount("amount must be greater than zero")
	}
	txHash := strings.TrimSpace(input.TransactionHash)
	if txHash == "" {
		return nil, domainerrors.BadRequest("transaction hash is required")
	}
	wallet, err := checksumAddress(input.WalletAddress)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid wallet address")
	}

	id := utils.GenerateUUIDv7().String()
	entry := &entities.PaymentHistoryEntry{
		ID:                     id,
		BusinessID:             businessID,
		PaymentID:              id,
		TransactionID:          txHash,
		Category:               input.Category,
		Amount:                 input.Amount,
		Status:                 entities.PaymentStatusSuccess,
		TransactionHash:        txHash,
		RecipientWalletAddress: wallet,
		CreatedAt:              u.clock(),
	}
	if _, err := u.history.Append(ctx, entry); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Pool transfer recorded",
		zap.String("category", string(input.Category)),
		zap.String("amount", input.Amount.String()),
		zap.String("tx_hash", txHash),
	)
	return entry, nil
}
