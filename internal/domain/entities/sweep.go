package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkerPayout is a worker paid by the scheduled sweep
type WorkerPayout struct {
	PaymentID     string          `json:"paymentId"`
	WorkerID      string          `json:"workerId"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	WalletAddress string          `json:"walletAddress"`
	Amount        decimal.Decimal `json:"amount"`
}

// WorkerFailure is a worker the sweep could not pay, with the reason
type WorkerFailure struct {
	WorkerID string `json:"workerId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Reason   string `json:"reason"`
}

// BusinessSweepResult is the per-business outcome of one sweep
type BusinessSweepResult struct {
	BusinessID      string          `json:"businessId"`
	BusinessName    string          `json:"businessName"`
	Skipped         bool            `json:"skipped"`
	SkipReason      string          `json:"skipReason,omitempty"`
	Successful      []WorkerPayout  `json:"successful"`
	Failed          []WorkerFailure `json:"failed"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	NextPaymentDate *time.Time      `json:"nextPaymentDate,omitempty"`
	Warnings        []string        `json:"warnings,omitempty"`
}

// SweepSummary aggregates a sweep run
type SweepSummary struct {
	StartedAt  time.Time             `json:"startedAt"`
	FinishedAt time.Time             `json:"finishedAt"`
	Businesses []BusinessSweepResult `json:"businesses"`
}

// PayrollReport is what the company report mail describes
type PayrollReport struct {
	BusinessName    string
	PaymentDate     time.Time
	TransactionHash string
	Successful      []WorkerPayout
	Failed          []WorkerFailure
	NextPaymentDate *time.Time
}

// TotalPaid sums successful payouts.
func (r PayrollReport) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Successful {
		total = total.Add(p.Amount)
	}
	return total
}
