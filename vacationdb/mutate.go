package vacationdb

import (
	"github.com/warp/vacationdb/calendar"
	"github.com/warp/vacationdb/rational"
)

// Every exported method below follows the same shape: lock the database
// mutex, block on the I/O gate (so a mutation never races an in-flight
// load/save), validate every id argument first, and only then mutate
// state. Grounded on db_impl's validate-then-mutate discipline
// (original_source/src/libvacationdb/vacationdb.cpp).

// AddPerson appends a new person and returns its id.
func (db *Database) AddPerson(name string, start calendar.Date, workTime rational.Q) PersonID {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	p := Person{
		Name:      name,
		StartDate: start,
		WorkTime:  workTime,
		TakenDays: make([][]TakenDay, len(db.store.leaveTypes)),
		Valid:     true,
	}
	db.store.persons = append(db.store.persons, p)
	return PersonID(len(db.store.persons) - 1)
}

// DeletePerson tombstones a person; its id is never reused.
func (db *Database) DeletePerson(pid PersonID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validatePerson(pid); err != nil {
		return err
	}
	db.store.persons[pid].Valid = false
	return nil
}

// EditPersonName renames an existing person.
func (db *Database) EditPersonName(pid PersonID, name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validatePerson(pid); err != nil {
		return err
	}
	db.store.persons[pid].Name = name
	return nil
}

// EditPersonStartDate changes an existing person's hire date.
func (db *Database) EditPersonStartDate(pid PersonID, start calendar.Date) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validatePerson(pid); err != nil {
		return err
	}
	db.store.persons[pid].StartDate = start
	return nil
}

// EditPersonWorkTime changes an existing person's base work-time fraction.
func (db *Database) EditPersonWorkTime(pid PersonID, workTime rational.Q) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validatePerson(pid); err != nil {
		return err
	}
	db.store.persons[pid].WorkTime = workTime
	return nil
}

// FindPerson returns the id of the first non-tombstoned person with the
// given exact name, or ErrEmployeeNotFound.
func (db *Database) FindPerson(name string) (PersonID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	return db.store.findPersonByName(name)
}

// PersonCount returns the number of non-tombstoned persons.
func (db *Database) PersonCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	return db.store.personCount()
}

// ListPersonNames returns every non-tombstoned person's name, in
// insertion order.
func (db *Database) ListPersonNames() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	return db.store.listPersonNames()
}

// GetPersonInfo returns the read-only projection of a person.
func (db *Database) GetPersonInfo(pid PersonID) (PersonInfo, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validatePerson(pid); err != nil {
		return PersonInfo{}, err
	}
	p := &db.store.persons[pid]

	info := PersonInfo{
		ID:         pid,
		Name:       p.Name,
		StartYear:  p.StartDate.Year(),
		StartMonth: p.StartDate.Month(),
		StartDay:   p.StartDate.Day(),
		WorkTime:   p.WorkTime.String(),
	}
	for i, et := range p.ExtraTime {
		if !et.Valid {
			continue
		}
		info.ExtraWorkTime = append(info.ExtraWorkTime, ExtraTimeInfo{
			ID:         ExtraTimeID(i),
			BeginYear:  et.Begin.Year(),
			BeginMonth: et.Begin.Month(),
			BeginDay:   et.Begin.Day(),
			EndYear:    et.End.Year(),
			EndMonth:   et.End.Month(),
			EndDay:     et.End.Day(),
			Percent:    et.Percent.String(),
		})
	}
	return info, nil
}

// --- extra time ---------------------------------------------------------

// AddExtraTime appends a work-time override to an existing person and
// returns its id.
func (db *Database) AddExtraTime(pid PersonID, begin, end calendar.Date, percent rational.Q) (ExtraTimeID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validatePerson(pid); err != nil {
		return 0, err
	}
	p := &db.store.persons[pid]
	p.ExtraTime = append(p.ExtraTime, ExtraTime{Begin: begin, End: end, Percent: percent, Valid: true})
	return ExtraTimeID(len(p.ExtraTime) - 1), nil
}

// RemoveExtraTime tombstones one extra-time override.
func (db *Database) RemoveExtraTime(pid PersonID, eid ExtraTimeID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validateExtraTime(pid, eid); err != nil {
		return err
	}
	db.store.persons[pid].ExtraTime[eid].Valid = false
	return nil
}

// --- leave types ---------------------------------------------------------

// AddLeaveType appends a new leave type and returns its id. Every
// existing person's taken-days vector grows by one empty slot to stay
// index-aligned.
func (db *Database) AddLeaveType(name string, rollover, yearlyBonus rational.Q) LeaveTypeID {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	lt := LeaveType{Name: name, Rollover: rollover, YearlyBonus: yearlyBonus, Valid: true}
	db.store.leaveTypes = append(db.store.leaveTypes, lt)
	db.store.addLeaveTypeSlot()
	return LeaveTypeID(len(db.store.leaveTypes) - 1)
}

// DeleteLeaveType tombstones a leave type and clears every person's
// taken-days vector at that slot.
func (db *Database) DeleteLeaveType(did LeaveTypeID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validateLeaveType(did); err != nil {
		return err
	}
	db.store.leaveTypes[did].Valid = false
	db.store.clearTakenDaysForLeaveType(did)
	return nil
}

// EditLeaveTypeName renames an existing leave type.
func (db *Database) EditLeaveTypeName(did LeaveTypeID, name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validateLeaveType(did); err != nil {
		return err
	}
	db.store.leaveTypes[did].Name = name
	return nil
}

// EditLeaveTypeRollover changes the year-end rollover cap (negative means
// unlimited carryover).
func (db *Database) EditLeaveTypeRollover(did LeaveTypeID, rollover rational.Q) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validateLeaveType(did); err != nil {
		return err
	}
	db.store.leaveTypes[did].Rollover = rollover
	return nil
}

// EditLeaveTypeYearlyBonus changes the flat bonus applied at every year
// boundary.
func (db *Database) EditLeaveTypeYearlyBonus(did LeaveTypeID, bonus rational.Q) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validateLeaveType(did); err != nil {
		return err
	}
	db.store.leaveTypes[did].YearlyBonus = bonus
	return nil
}

// FindLeaveType returns the id of the first non-tombstoned leave type
// with the given exact name, or ErrDayNotFound.
func (db *Database) FindLeaveType(name string) (LeaveTypeID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	return db.store.findLeaveTypeByName(name)
}

// LeaveTypeCount returns the number of non-tombstoned leave types.
func (db *Database) LeaveTypeCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	return db.store.leaveTypeCount()
}

// ListLeaveTypeNames returns every non-tombstoned leave type's name, in
// insertion order.
func (db *Database) ListLeaveTypeNames() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	return db.store.listLeaveTypeNames()
}

// GetLeaveTypeInfo returns the read-only projection of a leave type.
func (db *Database) GetLeaveTypeInfo(did LeaveTypeID) (LeaveTypeInfo, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validateLeaveType(did); err != nil {
		return LeaveTypeInfo{}, err
	}
	lt := &db.store.leaveTypes[did]

	info := LeaveTypeInfo{
		ID:          did,
		Name:        lt.Name,
		Rollover:    lt.Rollover.String(),
		YearlyBonus: lt.YearlyBonus.String(),
	}
	for i, r := range lt.Rules {
		if !r.Valid {
			continue
		}
		info.Rules = append(info.Rules, RuleInfo{
			ID:          RuleID(i),
			MonthOffset: r.MonthOffset,
			DaysPerYear: r.DaysPerYear.String(),
		})
	}
	return info, nil
}

// --- rules ---------------------------------------------------------------

// AddRule appends a tenure-based accrual-rate step to a leave type.
func (db *Database) AddRule(did LeaveTypeID, monthOffset uint32, daysPerYear rational.Q) (RuleID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validateLeaveType(did); err != nil {
		return 0, err
	}
	lt := &db.store.leaveTypes[did]
	lt.Rules = append(lt.Rules, Rule{MonthOffset: monthOffset, DaysPerYear: daysPerYear, Valid: true})
	return RuleID(len(lt.Rules) - 1), nil
}

// RemoveRule tombstones a single accrual-rate step.
func (db *Database) RemoveRule(did LeaveTypeID, rid RuleID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validateRule(did, rid); err != nil {
		return err
	}
	db.store.leaveTypes[did].Rules[rid].Valid = false
	return nil
}

// --- taken days ------------------------------------------------------------

// AddPersonDay records one day (or partial day) of leave taken.
func (db *Database) AddPersonDay(pid PersonID, did LeaveTypeID, date calendar.Date, amount rational.Q) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validatePerson(pid); err != nil {
		return err
	}
	if err := db.store.validateLeaveType(did); err != nil {
		return err
	}
	p := &db.store.persons[pid]
	p.TakenDays[did] = append(p.TakenDays[did], TakenDay{Date: date, Amount: amount})
	return nil
}

// RemovePersonDay removes the first taken-day entry at did matching date
// exactly.
func (db *Database) RemovePersonDay(pid PersonID, did LeaveTypeID, date calendar.Date) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if err := db.store.validatePerson(pid); err != nil {
		return err
	}
	if err := db.store.validateLeaveType(did); err != nil {
		return err
	}
	p := &db.store.persons[pid]
	taken := p.TakenDays[did]
	for i, t := range taken {
		if t.Date.Equal(date) {
			p.TakenDays[did] = append(taken[:i], taken[i+1:]...)
			return nil
		}
	}
	return nil
}
