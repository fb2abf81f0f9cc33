package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus is the lifecycle status of a payment record
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusSuccess PaymentStatus = "Success"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// IsTerminal reports whether no further transition is allowed.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// PaymentCategory tags what kind of payout a record describes
type PaymentCategory string

const (
	CategoryPayroll           PaymentCategory = "Payroll"
	CategoryContractorPayment PaymentCategory = "Contractor Payment"
	CategoryScheduledPayroll  PaymentCategory = "Scheduled Payroll"
	CategoryDeposit           PaymentCategory = "Deposit"
	CategoryWithdrawal        PaymentCategory = "Withdrawal"
)

// Failure reasons stored in ErrorDetails
const (
	FailureUserRejected    = "User rejected the transaction."
	FailureUserCancelled   = "User cancelled"
	FailureApprovalTimeout = "Wallet approval timed out"
	FailureUnconfirmed     = "Transaction broadcast but not confirmed"
)

// PaymentRecipient is one payee line inside a payment record
type PaymentRecipient struct {
	RecipientID   string          `json:"recipientId"`
	Name          string          `json:"recipientName"`
	Email         string          `json:"recipientEmail"`
	WalletAddress string          `json:"recipientWalletAddress"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentRecord is the persistent trace of one payment attempt
type PaymentRecord struct {
	ID              string             `json:"paymentId"`
	BusinessID      string             `json:"businessId"`
	Category        PaymentCategory    `json:"category"`
	Status          PaymentStatus      `json:"status"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	Token           string             `json:"payrollToken"`
	GasLimit        uint64             `json:"gasFeesEstimate"`
	PayrollPeriod   string             `json:"payrollPeriod"`
	PayrollDate     time.Time          `json:"payrollDate"`
	Recipients      []PaymentRecipient `json:"recipients"`
	TransactionHash null.String        `json:"transactionHash"`
	ErrorDetails    null.String        `json:"errorDetails"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// PendingPaymentInput describes a record to create in Pending status
type PendingPaymentInput struct {
	ID            string
	BusinessID    string
	Category      PaymentCategory
	TotalAmount   decimal.Decimal
	Token         string
	GasLimit      uint64
	PayrollPeriod string
	PayrollDate   time.Time
	Recipients    []PaymentRecipient
}

// FinalizeInput is the terminal outcome applied to a pending record
type FinalizeInput struct {
	Status          PaymentStatus
	TransactionHash string
	ErrorDetails    string
}

// PayrollPeriodLabel formats t as "October 2026".
func PayrollPeriodLabel(t time.Time) string {
	return t.Format("January 2006")
}
