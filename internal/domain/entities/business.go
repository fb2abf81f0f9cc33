package entities

import "time"

// PaymentInterval is a payroll cadence
type PaymentInterval string

const (
	IntervalWeekly  PaymentInterval = "Weekly"
	IntervalMonthly PaymentInterval = "Monthly"
)

// Monthly payment day rules
const (
	PaymentDayLastWorkingDay = "Last working day"
	PaymentDayLastDayOfMonth = "Last day of month"
	PaymentDaySpecificDate   = "Specific date"
)

// Sweep fallbacks applied when a business has no complete schedule
const (
	DefaultPaymentInterval = IntervalMonthly
	DefaultPaymentDay      = PaymentDayLastWorkingDay
	DefaultSpecificDate    = 1
)

// ScheduleStatusActive marks the current schedule mirror
const ScheduleStatusActive = "active"

// BusinessSettings holds the payroll schedule configuration of a business
type BusinessSettings struct {
	PaymentInterval PaymentInterval `json:"paymentInterval"`
	PaymentDay      string          `json:"paymentDay"`
	SpecificDate    *int            `json:"specificDate,omitempty"`
	NextPaymentDate *time.Time      `json:"nextPaymentDate,omitempty"`
}

// Business is an employer account keyed by its wallet address
type Business struct {
	ID        string           `json:"id"`
	Name      string           `json:"businessName"`
	Email     string           `json:"email"`
	Settings  BusinessSettings `json:"settings"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// PayrollSchedule mirrors the business settings as the "current" schedule
type PayrollSchedule struct {
	BusinessID      string          `json:"businessId"`
	PaymentInterval PaymentInterval `json:"paymentInterval"`
	PaymentDay      string          `json:"paymentDay"`
	SpecificDate    *int            `json:"specificDate,omitempty"`
	NextPaymentDate time.Time       `json:"nextPaymentDate"`
	Status          string          `json:"status"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}
