package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestPayee_IsEligible(t *testing.T) {
	p := &Payee{
		Status:        "active",
		Salary:        decimal.NewFromInt(500),
		WalletAddress: null.StringFrom("0x52908400098527886E0F7030069857D2E4169EE7"),
	}
	assert.True(t, p.IsEligible())
	assert.Empty(t, p.IneligibilityReasons())
}

func TestPayee_IneligibilityReasons(t *testing.T) {
	p := &Payee{Status: PayeeStatusInvited, WalletAddress: null.StringFrom("   ")}
	assert.False(t, p.IsEligible())
	assert.Equal(t, []string{"Inactive status", "Salary not defined", "Wallet not provided"}, p.IneligibilityReasons())

	paid := &Payee{Status: PayeeStatusPaid, Salary: decimal.NewFromInt(1), WalletAddress: null.StringFrom("0xabc")}
	assert.Equal(t, []string{"Inactive status"}, paid.IneligibilityReasons())
}

func TestPaymentStatus_IsTerminal(t *testing.T) {
	assert.False(t, PaymentStatusPending.IsTerminal())
	assert.True(t, PaymentStatusSuccess.IsTerminal())
	assert.True(t, PaymentStatusFailed.IsTerminal())
}

func TestPayrollReport_TotalPaid(t *testing.T) {
	r := PayrollReport{Successful: []WorkerPayout{
		{Amount: decimal.NewFromInt(100)},
		{Amount: decimal.RequireFromString("300.50")},
	}}
	assert.True(t, decimal.RequireFromString("400.50").Equal(r.TotalPaid()))
}

func TestPayrollPeriodLabel(t *testing.T) {
	assert.Equal(t, "October 2026", PayrollPeriodLabel(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)))
}
