package usecases

import (
	"fmt"
	"strings"
	"time"

	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves a weekday name case-insensitively.
func ParseWeekday(name string) (time.Weekday, bool) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// ComputeNextPaymentDate returns midnight of the next payroll day strictly after today,
// in today's location.
//
// Weekly schedules land on the named weekday 1 to 7 days ahead. Monthly schedules use
// paymentDay as the mode: "Last working day" and "Last day of month" target the end of
// the current month, "Specific date" targets specificDate of next month (clamped to the
// month length and moved off weekends to Monday). A candidate that is not after today is
// pushed one more period.
func ComputeNextPaymentDate(interval entities.PaymentInterval, paymentDay string, specificDate int, today time.Time) (time.Time, error) {
	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	switch entities.PaymentInterval(strings.TrimSpace(string(interval))) {
	case entities.IntervalWeekly:
		target, ok := ParseWeekday(paymentDay)
		if !ok {
			return time.Time{}, domainerrors.InvalidConfiguration(fmt.Sprintf("unknown weekday %q", paymentDay))
		}
		offset := (int(target) - int(base.Weekday()) + 7) % 7
		if offset == 0 {
			offset = 7
		}
		return base.AddDate(0, 0, offset), nil

	case entities.IntervalMonthly:
		mode := strings.TrimSpace(paymentDay)
		var monthStart int
		switch {
		case strings.EqualFold(mode, entities.PaymentDayLastWorkingDay), strings.EqualFold(mode, entities.PaymentDayLastDayOfMonth):
			monthStart = 0
		case strings.EqualFold(mode, entities.PaymentDaySpecificDate):
			if specificDate < 1 || specificDate > 31 {
				return time.Time{}, domainerrors.InvalidConfiguration(fmt.Sprintf("specific date %d is outside 1-31", specificDate))
			}
			monthStart = 1
		default:
			return time.Time{}, domainerrors.InvalidConfiguration(fmt.Sprintf("unknown monthly payment day %q", paymentDay))
		}

		// bounded: every mode yields a date inside its target month or the first days of the next
		for offset := monthStart; offset < monthStart+3; offset++ {
			next := monthlyPaymentDate(mode, specificDate, base, offset)
			if next.After(base) {
				return next, nil
			}
		}
		return time.Time{}, domainerrors.InvalidConfiguration("could not resolve a future payment date")

	default:
		return time.Time{}, domainerrors.InvalidConfiguration(fmt.Sprintf("unknown payment interval %q", interval))
	}
}

// monthlyPaymentDate resolves mode for the month monthOffset months after base's month.
func monthlyPaymentDate(mode string, specificDate int, base time.Time, monthOffset int) time.Time {
	loc := base.Location()
	first := time.Date(base.Year(), base.Month()+time.Month(monthOffset), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	switch {
	case strings.EqualFold(mode, entities.PaymentDayLastWorkingDay):
		for isWeekend(last) {
			last = last.AddDate(0, 0, -1)
		}
		return last
	case strings.EqualFold(mode, entities.PaymentDayLastDayOfMonth):
		return last
	default:
		day := specificDate
		if day > last.Day() {
			day = last.Day()
		}
		return shiftOffWeekend(time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, loc))
	}
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// shiftOffWeekend moves Saturday forward 2 days and Sunday forward 1 day.
func shiftOffWeekend(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}
