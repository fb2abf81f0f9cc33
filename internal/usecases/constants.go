package usecases

import "time"

// Gas budget for EmployerPool payouts
const (
	BatchGasBase          uint64 = 100000
	BatchGasPerRecipient  uint64 = 45000
	BatchGasMin           uint64 = 210000
	BatchGasMax           uint64 = 700000
	SinglePaymentGasLimit uint64 = 200000
)

// Payment id prefixes
const (
	PaymentPrefixPayroll    = "payroll"
	PaymentPrefixContractor = "cp"
	PaymentPrefixScheduled  = "sp"
)

// Sweep lock and listing defaults
const (
	PayrollSweepLockKey     = "payroll:sweep:lock"
	DefaultStalePendingAge  = 10 * time.Minute
	DefaultStalePendingList = 100
)
