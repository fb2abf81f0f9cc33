package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentHistoryEntry is an append-only ledger line written when a payout succeeds.
// Its ID equals the originating payment id so a payout is logged at most once.
type PaymentHistoryEntry struct {
	ID                     string          `json:"id"`
	BusinessID             string          `json:"businessId"`
	PaymentID              string          `json:"paymentId"`
	TransactionID          string          `json:"transactionId"`
	Category               PaymentCategory `json:"category"`
	Amount                 decimal.Decimal `json:"amount"`
	Status                 PaymentStatus   `json:"status"`
	TransactionHash        string          `json:"transactionHash"`
	RecipientWalletAddress string          `json:"recipientWalletAddress"`
	RecipientName          string          `json:"recipientName"`
	CreatedAt              time.Time       `json:"timestamp"`
}
