/*
Package sqlite is the persistence collaborator behind vacationdb's I/O
gate: a SQLite-backed vacationdb.Persister.

KEY TABLES (normalized, mirroring the dense-index entity store):
  persons:      one row per person slot, including tombstoned ones
  extra_time:   one row per extra-time slot, owned by a person
  leave_types:  one row per leave-type slot, including tombstoned ones
  rules:        one row per rule slot, owned by a leave type
  taken_days:   one row per taken-day record, owned by (person, leave type)

Every numeric amount is stored as its canonical rational string (never a
REAL column) so Save/Load never passes a quantity through a float. Grounded
on the teacher's store/sqlite/sqlite.go: WAL-mode open, migrate-on-open
schema, and a sync.RWMutex guarding the *sql.DB handle.

Save replaces the entire contents in one transaction; Load reads every
table back with separate queries under the store's read lock, not inside a
transaction. This package implements whole-snapshot persistence (vacationdb.Snapshot), not
an append-only ledger, because the domain here is a mutable entity store
with tombstoning, not an immutable transaction log.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/vacationdb/calendar"
	"github.com/warp/vacationdb/rational"
	"github.com/warp/vacationdb/vacationdb"
)

// Store is a SQLite-backed vacationdb.Persister.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (creating if needed) a SQLite database at path in WAL mode
// and migrates its schema. Use ":memory:" for an ephemeral store.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS persons (
		slot        INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		start_year  INTEGER NOT NULL,
		start_month INTEGER NOT NULL,
		start_day   INTEGER NOT NULL,
		work_time   TEXT NOT NULL,
		valid       INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS extra_time (
		person_slot INTEGER NOT NULL,
		slot        INTEGER NOT NULL,
		begin_year  INTEGER NOT NULL,
		begin_month INTEGER NOT NULL,
		begin_day   INTEGER NOT NULL,
		end_year    INTEGER NOT NULL,
		end_month   INTEGER NOT NULL,
		end_day     INTEGER NOT NULL,
		percent     TEXT NOT NULL,
		valid       INTEGER NOT NULL,
		PRIMARY KEY (person_slot, slot)
	);

	CREATE TABLE IF NOT EXISTS leave_types (
		slot         INTEGER PRIMARY KEY,
		name         TEXT NOT NULL,
		rollover     TEXT NOT NULL,
		yearly_bonus TEXT NOT NULL,
		valid        INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rules (
		leave_type_slot INTEGER NOT NULL,
		slot            INTEGER NOT NULL,
		month_offset    INTEGER NOT NULL,
		days_per_year   TEXT NOT NULL,
		valid           INTEGER NOT NULL,
		PRIMARY KEY (leave_type_slot, slot)
	);

	CREATE TABLE IF NOT EXISTS taken_days (
		person_slot     INTEGER NOT NULL,
		leave_type_slot INTEGER NOT NULL,
		ordinal         INTEGER NOT NULL,
		date_year       INTEGER NOT NULL,
		date_month      INTEGER NOT NULL,
		date_day        INTEGER NOT NULL,
		amount          TEXT NOT NULL,
		PRIMARY KEY (person_slot, leave_type_slot, ordinal)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the database's full contents with snap, inside a single
// transaction so a failed save never leaves a partial snapshot on disk.
func (s *Store) Save(ctx context.Context, snap vacationdb.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"taken_days", "rules", "extra_time", "leave_types", "persons"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for pslot, p := range snap.Persons {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO persons (slot, name, start_year, start_month, start_day, work_time, valid)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			pslot, p.Name, p.StartDate.Year(), p.StartDate.Month(), p.StartDate.Day(), p.WorkTime.String(), boolToInt(p.Valid),
		); err != nil {
			return fmt.Errorf("insert person %d: %w", pslot, err)
		}

		for eslot, et := range p.ExtraTime {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO extra_time (person_slot, slot, begin_year, begin_month, begin_day, end_year, end_month, end_day, percent, valid)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				pslot, eslot,
				et.Begin.Year(), et.Begin.Month(), et.Begin.Day(),
				et.End.Year(), et.End.Month(), et.End.Day(),
				et.Percent.String(), boolToInt(et.Valid),
			); err != nil {
				return fmt.Errorf("insert extra time %d/%d: %w", pslot, eslot, err)
			}
		}

		for ltslot, taken := range p.TakenDays {
			for ordinal, t := range taken {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO taken_days (person_slot, leave_type_slot, ordinal, date_year, date_month, date_day, amount)
					 VALUES (?, ?, ?, ?, ?, ?, ?)`,
					pslot, ltslot, ordinal, t.Date.Year(), t.Date.Month(), t.Date.Day(), t.Amount.String(),
				); err != nil {
					return fmt.Errorf("insert taken day %d/%d/%d: %w", pslot, ltslot, ordinal, err)
				}
			}
		}
	}

	for ltslot, lt := range snap.LeaveTypes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO leave_types (slot, name, rollover, yearly_bonus, valid) VALUES (?, ?, ?, ?, ?)`,
			ltslot, lt.Name, lt.Rollover.String(), lt.YearlyBonus.String(), boolToInt(lt.Valid),
		); err != nil {
			return fmt.Errorf("insert leave type %d: %w", ltslot, err)
		}

		for rslot, r := range lt.Rules {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO rules (leave_type_slot, slot, month_offset, days_per_year, valid) VALUES (?, ?, ?, ?, ?)`,
				ltslot, rslot, r.MonthOffset, r.DaysPerYear.String(), boolToInt(r.Valid),
			); err != nil {
				return fmt.Errorf("insert rule %d/%d: %w", ltslot, rslot, err)
			}
		}
	}

	return tx.Commit()
}

// Load reads the full snapshot back out of the database.
func (s *Store) Load(ctx context.Context) (vacationdb.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snap vacationdb.Snapshot

	personRows, err := s.db.QueryContext(ctx,
		`SELECT slot, name, start_year, start_month, start_day, work_time, valid FROM persons ORDER BY slot`)
	if err != nil {
		return snap, fmt.Errorf("query persons: %w", err)
	}
	defer personRows.Close()

	maxPersonSlot := -1
	type personRow struct {
		slot             int
		name             string
		y, m, d          int
		workTime         string
		valid            bool
	}
	var rows []personRow
	for personRows.Next() {
		var r personRow
		var validInt int
		if err := personRows.Scan(&r.slot, &r.name, &r.y, &r.m, &r.d, &r.workTime, &validInt); err != nil {
			return snap, fmt.Errorf("scan person: %w", err)
		}
		r.valid = validInt != 0
		rows = append(rows, r)
		if r.slot > maxPersonSlot {
			maxPersonSlot = r.slot
		}
	}
	if err := personRows.Err(); err != nil {
		return snap, err
	}

	ltCount, err := s.leaveTypeCount(ctx)
	if err != nil {
		return snap, err
	}

	snap.Persons = make([]vacationdb.Person, maxPersonSlot+1)
	for _, r := range rows {
		date, err := calendar.New(r.y, r.m, r.d)
		if err != nil {
			return snap, fmt.Errorf("person %d start date: %w", r.slot, err)
		}
		workTime, err := rational.Parse(r.workTime)
		if err != nil {
			return snap, fmt.Errorf("person %d work time: %w", r.slot, err)
		}
		snap.Persons[r.slot] = vacationdb.Person{
			Name:      r.name,
			StartDate: date,
			WorkTime:  workTime,
			Valid:     r.valid,
			TakenDays: make([][]vacationdb.TakenDay, ltCount),
		}
	}

	if err := s.loadExtraTime(ctx, snap.Persons); err != nil {
		return snap, err
	}
	if err := s.loadTakenDays(ctx, snap.Persons); err != nil {
		return snap, err
	}

	leaveTypes, err := s.loadLeaveTypes(ctx)
	if err != nil {
		return snap, err
	}
	snap.LeaveTypes = leaveTypes

	return snap, nil
}

func (s *Store) leaveTypeCount(ctx context.Context) (int, error) {
	var maxSlot sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(slot) FROM leave_types`).Scan(&maxSlot)
	if err != nil {
		return 0, fmt.Errorf("count leave types: %w", err)
	}
	if !maxSlot.Valid {
		return 0, nil
	}
	return int(maxSlot.Int64) + 1, nil
}

func (s *Store) loadExtraTime(ctx context.Context, persons []vacationdb.Person) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT person_slot, slot, begin_year, begin_month, begin_day, end_year, end_month, end_day, percent, valid
		 FROM extra_time ORDER BY person_slot, slot`)
	if err != nil {
		return fmt.Errorf("query extra time: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pslot, slot, by, bm, bd, ey, em, ed, validInt int
		var percent string
		if err := rows.Scan(&pslot, &slot, &by, &bm, &bd, &ey, &em, &ed, &percent, &validInt); err != nil {
			return fmt.Errorf("scan extra time: %w", err)
		}
		begin, err := calendar.New(by, bm, bd)
		if err != nil {
			return fmt.Errorf("extra time %d/%d begin: %w", pslot, slot, err)
		}
		end, err := calendar.New(ey, em, ed)
		if err != nil {
			return fmt.Errorf("extra time %d/%d end: %w", pslot, slot, err)
		}
		pct, err := rational.Parse(percent)
		if err != nil {
			return fmt.Errorf("extra time %d/%d percent: %w", pslot, slot, err)
		}
		p := &persons[pslot]
		for len(p.ExtraTime) <= slot {
			p.ExtraTime = append(p.ExtraTime, vacationdb.ExtraTime{})
		}
		p.ExtraTime[slot] = vacationdb.ExtraTime{Begin: begin, End: end, Percent: pct, Valid: validInt != 0}
	}
	return rows.Err()
}

func (s *Store) loadTakenDays(ctx context.Context, persons []vacationdb.Person) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT person_slot, leave_type_slot, ordinal, date_year, date_month, date_day, amount
		 FROM taken_days ORDER BY person_slot, leave_type_slot, ordinal`)
	if err != nil {
		return fmt.Errorf("query taken days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pslot, ltslot, ordinal, y, m, d int
		var amount string
		if err := rows.Scan(&pslot, &ltslot, &ordinal, &y, &m, &d, &amount); err != nil {
			return fmt.Errorf("scan taken day: %w", err)
		}
		date, err := calendar.New(y, m, d)
		if err != nil {
			return fmt.Errorf("taken day %d/%d/%d date: %w", pslot, ltslot, ordinal, err)
		}
		amt, err := rational.Parse(amount)
		if err != nil {
			return fmt.Errorf("taken day %d/%d/%d amount: %w", pslot, ltslot, ordinal, err)
		}
		p := &persons[pslot]
		for len(p.TakenDays) <= ltslot {
			p.TakenDays = append(p.TakenDays, nil)
		}
		p.TakenDays[ltslot] = append(p.TakenDays[ltslot], vacationdb.TakenDay{Date: date, Amount: amt})
	}
	return rows.Err()
}

func (s *Store) loadLeaveTypes(ctx context.Context) ([]vacationdb.LeaveType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot, name, rollover, yearly_bonus, valid FROM leave_types ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("query leave types: %w", err)
	}
	defer rows.Close()

	var leaveTypes []vacationdb.LeaveType
	for rows.Next() {
		var slot, validInt int
		var name, rollover, bonus string
		if err := rows.Scan(&slot, &name, &rollover, &bonus, &validInt); err != nil {
			return nil, fmt.Errorf("scan leave type: %w", err)
		}
		rolloverQ, err := rational.Parse(rollover)
		if err != nil {
			return nil, fmt.Errorf("leave type %d rollover: %w", slot, err)
		}
		bonusQ, err := rational.Parse(bonus)
		if err != nil {
			return nil, fmt.Errorf("leave type %d bonus: %w", slot, err)
		}
		for len(leaveTypes) <= slot {
			leaveTypes = append(leaveTypes, vacationdb.LeaveType{})
		}
		leaveTypes[slot] = vacationdb.LeaveType{Name: name, Rollover: rolloverQ, YearlyBonus: bonusQ, Valid: validInt != 0}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ruleRows, err := s.db.QueryContext(ctx,
		`SELECT leave_type_slot, slot, month_offset, days_per_year, valid FROM rules ORDER BY leave_type_slot, slot`)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var ltslot, slot, monthOffset, validInt int
		var daysPerYear string
		if err := ruleRows.Scan(&ltslot, &slot, &monthOffset, &daysPerYear, &validInt); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rate, err := rational.Parse(daysPerYear)
		if err != nil {
			return nil, fmt.Errorf("rule %d/%d rate: %w", ltslot, slot, err)
		}
		lt := &leaveTypes[ltslot]
		for len(lt.Rules) <= slot {
			lt.Rules = append(lt.Rules, vacationdb.Rule{})
		}
		lt.Rules[slot] = vacationdb.Rule{MonthOffset: uint32(monthOffset), DaysPerYear: rate, Valid: validInt != 0}
	}
	return leaveTypes, ruleRows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
