package vacationdb

import "errors"

// Sentinel errors returned by the mutation and query APIs. Invalid dates
// and numbers are not re-exported here: they are reported by
// calendar.ErrInvalidDate and rational.ErrInvalidNumber when the caller
// constructs a calendar.Date or parses a rational.Q, before any mutator
// is called.
var (
	// ErrInvalidIndex is returned when an id names a slot that was never
	// allocated, or was tombstoned by a prior delete.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrEmployeeNotFound is returned when FindPerson's name lookup
	// matches no non-tombstoned person.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrDayNotFound is returned when FindLeaveType's name lookup matches
	// no non-tombstoned leave type.
	ErrDayNotFound = errors.New("day not found")

	// ErrNoPersister is returned by Load/Save when the Database was
	// constructed without a Persister.
	ErrNoPersister = errors.New("no persister configured")
)
