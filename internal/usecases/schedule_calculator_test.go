package usecases_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/usecases"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeNextPaymentDate_Weekly(t *testing.T) {
	wednesday := time.Date(2026, time.October, 14, 15, 30, 0, 0, time.UTC)

	next, err := usecases.ComputeNextPaymentDate(entities.IntervalWeekly, "Friday", 0, wednesday)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.October, 16), next)

	next, err = usecases.ComputeNextPaymentDate(entities.IntervalWeekly, "wednesday", 0, wednesday)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.October, 21), next, "same weekday moves a full week")

	next, err = usecases.ComputeNextPaymentDate(entities.IntervalWeekly, "Monday", 0, wednesday)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.October, 19), next)

	_, err = usecases.ComputeNextPaymentDate(entities.IntervalWeekly, "Someday", 0, wednesday)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidConfiguration)
}

func TestComputeNextPaymentDate_WeeklyOffsetWithinAWeek(t *testing.T) {
	names := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	start := day(2026, time.October, 11)
	for i := 0; i < 7; i++ {
		today := start.AddDate(0, 0, i)
		for _, name := range names {
			next, err := usecases.ComputeNextPaymentDate(entities.IntervalWeekly, name, 0, today)
			require.NoError(t, err)
			offset := int(next.Sub(today).Hours() / 24)
			assert.True(t, offset >= 1 && offset <= 7, "%s from %s gave offset %d", name, today.Weekday(), offset)
			assert.Equal(t, name, next.Weekday().String())
		}
	}
}

func TestComputeNextPaymentDate_LastWorkingDay(t *testing.T) {
	next, err := usecases.ComputeNextPaymentDate(entities.IntervalMonthly, entities.PaymentDayLastWorkingDay, 1, day(2026, time.October, 15))
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.October, 30), next, "October 31 2026 is a Saturday")

	next, err = usecases.ComputeNextPaymentDate(entities.IntervalMonthly, entities.PaymentDayLastWorkingDay, 1, day(2026, time.October, 30))
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.November, 30), next, "a candidate on today rolls to next month")
}

func TestComputeNextPaymentDate_LastWorkingDayNeverWeekend(t *testing.T) {
	for d := day(2026, time.January, 1); d.Year() == 2026; d = d.AddDate(0, 0, 1) {
		next, err := usecases.ComputeNextPaymentDate(entities.IntervalMonthly, entities.PaymentDayLastWorkingDay, 1, d)
		require.NoError(t, err)
		assert.True(t, next.After(d))
		assert.NotEqual(t, time.Saturday, next.Weekday())
		assert.NotEqual(t, time.Sunday, next.Weekday())
	}
}

func TestComputeNextPaymentDate_LastDayOfMonth(t *testing.T) {
	next, err := usecases.ComputeNextPaymentDate(entities.IntervalMonthly, entities.PaymentDayLastDayOfMonth, 1, day(2026, time.October, 15))
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.October, 31), next)

	next, err = usecases.ComputeNextPaymentDate(entities.IntervalMonthly, entities.PaymentDayLastDayOfMonth, 1, day(2026, time.October, 31))
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.November, 30), next)
}

func TestComputeNextPaymentDate_SpecificDate(t *testing.T) {
	next, err := usecases.ComputeNextPaymentDate(entities.IntervalMonthly, entities.PaymentDaySpecificDate, 15, day(2026, time.October, 15))
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.November, 16), next, "November 15 2026 is a Sunday")

	next, err = usecases.ComputeNextPaymentDate(entities.IntervalMonthly, entities.PaymentDaySpecificDate, 31, day(2026, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.March, 2), next, "clamped to February 28, a Saturday")

	_, err = usecases.ComputeNextPaymentDate(entities.IntervalMonthly, entities.PaymentDaySpecificDate, 0, day(2026, time.January, 10))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidConfiguration)
	_, err = usecases.ComputeNextPaymentDate(entities.IntervalMonthly, entities.PaymentDaySpecificDate, 32, day(2026, time.January, 10))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidConfiguration)
}

func TestComputeNextPaymentDate_InvalidConfiguration(t *testing.T) {
	_, err := usecases.ComputeNextPaymentDate("Fortnightly", "Friday", 0, day(2026, time.October, 15))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidConfiguration)

	_, err = usecases.ComputeNextPaymentDate(entities.IntervalMonthly, "First Monday", 0, day(2026, time.October, 15))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidConfiguration)
}

func TestComputeNextPaymentDate_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)
	today := time.Date(2026, time.October, 14, 23, 30, 0, 0, loc)

	next, err := usecases.ComputeNextPaymentDate(entities.IntervalWeekly, "Friday", 0, today)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 16, 0, 0, 0, 0, loc), next)
	assert.Equal(t, loc, next.Location())
}
