/*
Package calendar implements the proleptic Gregorian date type the query
evaluator uses as its event timeline's axis.

PURPOSE:
  Safe construction (InvalidDate for non-existent dates like Feb 30),
  day-difference, and month-offset arithmetic. Nothing else about the
  calendar is load-bearing anywhere else in vacationdb; see spec.md §4.2.

WHY NOT time.Time DIRECTLY:
  time.Date silently normalizes out-of-range components (year 2024, month
  February, day 30 quietly becomes March 1 instead of failing). The core's
  Invalid_Date error (ported from the original Vacationdb::Invalid_Date)
  requires rejecting that input instead, so Date validates the triple
  before ever handing it to time.Date's arithmetic. Once a Date exists, its
  internal representation IS a time.Time at midnight UTC. AddMonths does
  not use time.Time's AddDate, which would roll an overflowing day into the
  following month (Jan 31 + 1 month = Mar 2 or 3); it computes the target
  year and month itself and clamps the day to the last day of that month.
*/
package calendar

import (
	"errors"
	"time"
)

// ErrInvalidDate is returned when year/month/day do not name a real day on
// the proleptic Gregorian calendar.
var ErrInvalidDate = errors.New("invalid date")

// Date is a proleptic Gregorian year/month/day, always midnight UTC.
type Date struct {
	t time.Time
}

// New constructs a Date, validating that y/m/d name a real calendar day.
func New(year, month, day int) (Date, error) {
	if month < 1 || month > 12 || day < 1 {
		return Date{}, ErrInvalidDate
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}, ErrInvalidDate
	}
	return Date{t: t}, nil
}

// MustNew panics on an invalid date; use only for literal constants in
// tests, never on externally supplied input.
func MustNew(year, month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int  { return d.t.Year() }
func (d Date) Month() int { return int(d.t.Month()) }
func (d Date) Day() int   { return d.t.Day() }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

func (d Date) BeforeOrEqual(o Date) bool { return !d.After(o) }
func (d Date) AfterOrEqual(o Date) bool  { return !d.Before(o) }

// IsZero reports whether d is the unconstructed zero value.
func (d Date) IsZero() bool { return d.t.IsZero() }

// DaysBetween returns the number of days from a to b (negative if b is
// before a).
func DaysBetween(a, b Date) int64 {
	return (b.t.Unix() - a.t.Unix()) / 86400
}

// AddMonths offsets d by n months, clamping to the last day of the target
// month when the source day doesn't exist there (e.g. Jan 31 + 1 month =
// Feb 28 or 29).
func (d Date) AddMonths(n int) Date {
	year, month, day := d.t.Date()
	totalMonths := int(month) - 1 + n
	targetYear := year + totalMonths/12
	targetMonth := totalMonths % 12
	if targetMonth < 0 {
		targetMonth += 12
		targetYear--
	}
	firstOfTarget := time.Date(targetYear, time.Month(targetMonth+1), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return Date{t: time.Date(targetYear, time.Month(targetMonth+1), day, 0, 0, 0, 0, time.UTC)}
}

// StartOfYear returns January 1 of the given year.
func StartOfYear(year int) Date {
	return Date{t: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.t.Format("2006-01-02")
}
