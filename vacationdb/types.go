/*
Package vacationdb implements the embedded vacation-accrual database: an
append-only entity store of persons and leave types, a mutation API that
writes through it, and the query evaluator that folds a chronologically
ordered event timeline into an exact accrued balance.

KEY CONCEPTS IN THIS FILE (types.go):
  - PersonID / LeaveTypeID / RuleID / ExtraTimeID: dense-index identifiers
  - Person / LeaveType / Rule / ExtraTime / TakenDay: the data model
  - Info structs: the read-only projections returned at the API boundary

DESIGN PRINCIPLES (grounded on the teacher's generic/types.go):
  1. Exactness: every quantity is a rational.Q, never a float.
  2. Tombstoning: deletion sets a validity bit; slots and ids never shift.
  3. Type safety: strong ID types prevent mixing person/leave-type/rule ids.

SEE ALSO:
  - store.go: the entity store (append/validate/tombstone/find)
  - mutate.go: the public mutation API
  - query.go: the query evaluator (the hard core)
*/
package vacationdb

import (
	"github.com/warp/vacationdb/calendar"
	"github.com/warp/vacationdb/rational"
)

// PersonID, LeaveTypeID, RuleID, and ExtraTimeID are opaque identifiers
// carrying a dense index into their owning slice. Identifiers are never
// reused for a new record; deletion tombstones the slot instead.
type PersonID int
type LeaveTypeID int
type RuleID int
type ExtraTimeID int

// ExtraTime overrides a person's base work-time fraction for [Begin, End):
// the base fraction applies again from End onward.
type ExtraTime struct {
	Begin, End calendar.Date
	Percent    rational.Q
	Valid      bool
}

// TakenDay records a single day (or partial day) of leave consumed.
type TakenDay struct {
	Date   calendar.Date
	Amount rational.Q
}

// Person owns an identity, a start date, a base work-time fraction, any
// number of ExtraTime overrides, and one taken-days vector per leave-type
// slot (including tombstoned slots, to keep indices aligned across every
// person — see store.go's addLeaveTypeSlot/clearTakenDaysForLeaveType).
type Person struct {
	Name       string
	StartDate  calendar.Date
	WorkTime   rational.Q
	ExtraTime  []ExtraTime
	TakenDays  [][]TakenDay
	Valid      bool
}

// Rule describes a tenure-dependent accrual-rate step: MonthOffset is
// 1-indexed, so the rule takes effect MonthOffset-1 months after the
// person's hire date (MonthOffset 1 = the hire date itself), and from then
// on the accrual rate is DaysPerYear, until a later rule supersedes it.
type Rule struct {
	MonthOffset uint32
	DaysPerYear rational.Q
	Valid       bool
}

// LeaveType is a user-defined policy: a name, a year-end rollover cap (or
// unlimited carryover if negative), a flat yearly bonus, and the tenure
// rules governing its accrual rate.
type LeaveType struct {
	Name        string
	Rollover    rational.Q
	YearlyBonus rational.Q
	Rules       []Rule
	Valid       bool
}

// PersonInfo is the read-only projection of a Person returned at the API
// boundary: tombstoned ExtraTime entries are filtered out, and the ids
// embedded in ExtraWorkTime equal the original dense slot indices.
type PersonInfo struct {
	ID           PersonID
	Name         string
	StartYear    int
	StartMonth   int
	StartDay     int
	WorkTime     string
	ExtraWorkTime []ExtraTimeInfo
}

// ExtraTimeInfo is the read-only projection of one ExtraTime entry.
type ExtraTimeInfo struct {
	ID         ExtraTimeID
	BeginYear  int
	BeginMonth int
	BeginDay   int
	EndYear    int
	EndMonth   int
	EndDay     int
	Percent    string
}

// LeaveTypeInfo is the read-only projection of a LeaveType.
type LeaveTypeInfo struct {
	ID          LeaveTypeID
	Name        string
	Rollover    string
	YearlyBonus string
	Rules       []RuleInfo
}

// RuleInfo is the read-only projection of one Rule entry.
type RuleInfo struct {
	ID          RuleID
	MonthOffset uint32
	DaysPerYear string
}

// PersonDayBalance is one entry of the multi-leave-type query overload:
// the leave type's name paired with the canonical balance string.
type PersonDayBalance struct {
	LeaveTypeName string
	Balance       string
}
