package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacationdb/calendar"
)

func TestNewRejectsNonExistentDates(t *testing.T) {
	_, err := calendar.New(2024, 2, 30)
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)

	_, err = calendar.New(2023, 2, 29) // not a leap year
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)

	_, err = calendar.New(2024, 13, 1)
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)

	_, err = calendar.New(2024, 1, 0)
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestNewAcceptsLeapDay(t *testing.T) {
	d, err := calendar.New(2024, 2, 29)
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, 2, d.Month())
	assert.Equal(t, 29, d.Day())
}

func TestOrdering(t *testing.T) {
	a := calendar.MustNew(2020, 1, 1)
	b := calendar.MustNew(2020, 1, 2)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.BeforeOrEqual(a))
	assert.True(t, a.AfterOrEqual(a))
	assert.False(t, a.Equal(b))
}

func TestDaysBetween(t *testing.T) {
	a := calendar.MustNew(2020, 1, 1)
	b := calendar.MustNew(2021, 1, 1)
	assert.Equal(t, int64(366), calendar.DaysBetween(a, b)) // 2020 is a leap year
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	d := calendar.MustNew(2024, 1, 31)
	assert.Equal(t, calendar.MustNew(2024, 2, 29), d.AddMonths(1))

	d2 := calendar.MustNew(2023, 1, 31)
	assert.Equal(t, calendar.MustNew(2023, 2, 28), d2.AddMonths(1))

	d3 := calendar.MustNew(2024, 10, 31)
	assert.Equal(t, calendar.MustNew(2025, 1, 31), d3.AddMonths(3))
}

func TestAddMonthsAcrossYearBoundaryBackwards(t *testing.T) {
	d := calendar.MustNew(2024, 1, 15)
	assert.Equal(t, calendar.MustNew(2023, 11, 15), d.AddMonths(-2))
}
