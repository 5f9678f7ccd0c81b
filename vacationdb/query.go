package vacationdb

import (
	"sort"

	"github.com/warp/vacationdb/calendar"
	"github.com/warp/vacationdb/rational"
)

// daysPerYear is the fixed segment-integration constant (365.24), used to
// convert an elapsed day count into elapsed years before multiplying by
// the currently active accrual rate. See spec.md §4.5.
var daysPerYear = rational.MustParse("36524/100")

// eventKind orders same-dated events: ExtraTime changes apply before a
// RuleChange, which applies before a YearBoundary rollover/bonus, which
// applies before the terminal EndOfQuery. This ordinal IS the sort tie-
// break (see the sort at the end of buildEvents below) — it is the resolution of the first
// open question in spec.md §9: RuleChange and YearBoundary are handled as
// two separate, non-fallthrough cases in the state machine below.
type eventKind int

const (
	eventExtraTime eventKind = iota
	eventRuleChange
	eventYearBoundary
	eventEndOfQuery
)

type timelineEvent struct {
	date    calendar.Date
	kind    eventKind
	percent rational.Q // valid when kind == eventExtraTime
	rate    rational.Q // valid when kind == eventRuleChange
	seq     int        // generation order, used only to make the sort stable
}

// buildEvents assembles the unsorted event list for one (person, leave
// type, query date) evaluation. Generation order (extra-time, then rule
// changes, then year boundaries, then end-of-query) only matters as the
// stable-sort tie-break for events that land on the exact same date and
// carry the exact same eventKind; it has no effect once sorted by date.
func buildEvents(p *Person, lt *LeaveType, qdate calendar.Date) []timelineEvent {
	var events []timelineEvent
	seq := 0
	next := func() int { seq++; return seq - 1 }

	for _, et := range p.ExtraTime {
		if !et.Valid {
			continue
		}
		events = append(events,
			timelineEvent{date: et.Begin, kind: eventExtraTime, percent: et.Percent, seq: next()},
			timelineEvent{date: et.End, kind: eventExtraTime, percent: p.WorkTime, seq: next()},
		)
	}

	for _, r := range lt.Rules {
		if !r.Valid {
			continue
		}
		events = append(events, timelineEvent{
			date: p.StartDate.AddMonths(int(r.MonthOffset) - 1),
			kind: eventRuleChange,
			rate: r.DaysPerYear,
			seq:  next(),
		})
	}

	events = append(events, timelineEvent{date: p.StartDate, kind: eventYearBoundary, seq: next()})
	for year := p.StartDate.Year() + 1; year <= qdate.Year(); year++ {
		events = append(events, timelineEvent{date: calendar.StartOfYear(year), kind: eventYearBoundary, seq: next()})
	}

	events = append(events, timelineEvent{date: qdate, kind: eventEndOfQuery, seq: next()})

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].date.Equal(events[j].date) {
			return events[i].date.Before(events[j].date)
		}
		if events[i].kind != events[j].kind {
			return events[i].kind < events[j].kind
		}
		return events[i].seq < events[j].seq
	})
	return events
}

// evaluateBalance runs the event timeline state machine: integrate the
// currently active rate and work-time percentage across each segment,
// apply ExtraTime/RuleChange updates in place, and apply rollover+bonus
// at each YearBoundary, stopping at EndOfQuery. It then subtracts every
// taken day on or before qdate — the resolution of the second open
// question in spec.md §9 (date <= qdate, not strict <, so a day taken
// exactly on the query date is already reflected in the balance).
func evaluateBalance(p *Person, lt *LeaveType, taken []TakenDay, qdate calendar.Date) rational.Q {
	events := buildEvents(p, lt, qdate)

	accrued := rational.Zero()
	currentRate := rational.Zero()
	currentPercent := p.WorkTime
	cursor := p.StartDate

	for _, e := range events {
		segmentDays := calendar.DaysBetween(cursor, e.date)
		if segmentDays > 0 {
			years := rational.FromInt(segmentDays).Div(daysPerYear)
			accrued = accrued.Add(years.Mul(currentRate).Mul(currentPercent))
		}
		cursor = e.date

		switch e.kind {
		case eventExtraTime:
			currentPercent = e.percent
		case eventRuleChange:
			currentRate = e.rate
		case eventYearBoundary:
			if !lt.Rollover.IsNegative() {
				accrued = accrued.Min(lt.Rollover)
			}
			accrued = accrued.Add(lt.YearlyBonus)
		case eventEndOfQuery:
			// segment already integrated above; nothing further to apply
		}
	}

	for _, t := range taken {
		if t.Date.BeforeOrEqual(qdate) {
			accrued = accrued.Sub(t.Amount)
		}
	}

	return accrued
}

// QueryPersonLeaveType returns person pid's exact balance of leave type
// did as of qdate.
func (db *Database) QueryPersonLeaveType(pid PersonID, did LeaveTypeID, qdate calendar.Date) (rational.Q, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validatePerson(pid); err != nil {
		return rational.Zero(), err
	}
	if err := db.store.validateLeaveType(did); err != nil {
		return rational.Zero(), err
	}

	p := &db.store.persons[pid]
	lt := &db.store.leaveTypes[did]
	var taken []TakenDay
	if int(did) < len(p.TakenDays) {
		taken = p.TakenDays[did]
	}
	return evaluateBalance(p, lt, taken, qdate), nil
}

// QueryPerson returns person pid's exact balance across every
// non-tombstoned leave type as of qdate, in leave-type insertion order.
func (db *Database) QueryPerson(pid PersonID, qdate calendar.Date) ([]PersonDayBalance, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validatePerson(pid); err != nil {
		return nil, err
	}

	p := &db.store.persons[pid]
	out := make([]PersonDayBalance, 0, len(db.store.leaveTypes))
	for did := range db.store.leaveTypes {
		lt := &db.store.leaveTypes[did]
		if !lt.Valid {
			continue
		}
		var taken []TakenDay
		if did < len(p.TakenDays) {
			taken = p.TakenDays[did]
		}
		balance := evaluateBalance(p, lt, taken, qdate)
		out = append(out, PersonDayBalance{LeaveTypeName: lt.Name, Balance: balance.String()})
	}
	return out, nil
}
