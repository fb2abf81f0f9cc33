package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// PayeeKind distinguishes salaried workers from contractors
type PayeeKind string

const (
	PayeeKindWorker     PayeeKind = "worker"
	PayeeKindContractor PayeeKind = "contractor"
)

// PayeeStatus is the payee lifecycle status
type PayeeStatus string

const (
	PayeeStatusInvited  PayeeStatus = "Invited"
	PayeeStatusActive   PayeeStatus = "Active"
	PayeeStatusPaid     PayeeStatus = "Paid"
	PayeeStatusInactive PayeeStatus = "Inactive"
)

// Payee is a worker or contractor of a business
type Payee struct {
	ID            string          `json:"id"`
	BusinessID    string          `json:"businessId"`
	Kind          PayeeKind       `json:"kind"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          string          `json:"role,omitempty"`
	Salary        decimal.Decimal `json:"salary"`
	Status        PayeeStatus     `json:"status"`
	WalletAddress null.String     `json:"walletAddress"`
	InviteLink    string          `json:"inviteLink,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// HasStatus compares status case-insensitively; stored values predate a fixed casing.
func (p *Payee) HasStatus(status PayeeStatus) bool {
	return strings.EqualFold(strings.TrimSpace(string(p.Status)), string(status))
}

// Wallet returns the trimmed wallet address or "".
func (p *Payee) Wallet() string {
	if !p.WalletAddress.Valid {
		return ""
	}
	return strings.TrimSpace(p.WalletAddress.String)
}

// IneligibilityReasons lists every reason the payee cannot be paid, empty when eligible.
func (p *Payee) IneligibilityReasons() []string {
	var reasons []string
	if !p.HasStatus(PayeeStatusActive) {
		reasons = append(reasons, "Inactive status")
	}
	if !p.Salary.IsPositive() {
		reasons = append(reasons, "Salary not defined")
	}
	if p.Wallet() == "" {
		reasons = append(reasons, "Wallet not provided")
	}
	return reasons
}

// IsEligible reports status Active, a wallet, and a positive salary.
func (p *Payee) IsEligible() bool {
	return len(p.IneligibilityReasons()) == 0
}
