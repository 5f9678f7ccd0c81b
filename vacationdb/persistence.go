package vacationdb

import "context"

// snapshot copies the current store contents out under the Database
// mutex, for handing to a Persister.
func (db *Database) snapshot() Snapshot {
	return Snapshot{
		Persons:    append([]Person(nil), db.store.persons...),
		LeaveTypes: append([]LeaveType(nil), db.store.leaveTypes...),
	}
}

func (db *Database) restore(snap Snapshot) {
	db.store.persons = snap.Persons
	db.store.leaveTypes = snap.LeaveTypes
}

// LoadSync blocks the caller until the persister's Load completes, then
// replaces the entire store with the restored snapshot.
func (db *Database) LoadSync(ctx context.Context, source string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if db.persister == nil {
		return ErrNoPersister
	}

	finish := db.gate.beginAsync(OpLoad)
	defer finish()

	snap, err := db.persister.Load(ctx)
	if err != nil {
		return err
	}
	db.gate.setProgress(0.5)
	db.restore(snap)
	db.currentSource = source
	return nil
}

// SaveSync blocks the caller until the persister's Save completes.
func (db *Database) SaveSync(ctx context.Context, source string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	if db.persister == nil {
		return ErrNoPersister
	}

	finish := db.gate.beginAsync(OpSave)
	defer finish()

	snap := db.snapshot()
	db.gate.setProgress(0.5)
	if err := db.persister.Save(ctx, snap); err != nil {
		return err
	}
	db.currentSource = source
	return nil
}

// LoadAsync starts the load in a background goroutine and returns
// immediately; the gate reports OpLoad until it completes or fails, and
// every other call to the Database suspends at BlockIfLocked until then.
// The returned channel receives the eventual error (nil on success) and
// is always sent to exactly once.
func (db *Database) LoadAsync(ctx context.Context, source string) <-chan error {
	result := make(chan error, 1)

	db.mu.Lock()
	if db.persister == nil {
		db.mu.Unlock()
		result <- ErrNoPersister
		return result
	}
	finish := db.gate.beginAsync(OpLoad)
	db.mu.Unlock()

	go func() {
		defer finish()
		snap, err := db.persister.Load(ctx)
		db.gate.setProgress(0.5)
		if err != nil {
			result <- err
			return
		}
		db.mu.Lock()
		db.restore(snap)
		db.currentSource = source
		db.mu.Unlock()
		result <- nil
	}()

	return result
}

// SaveAsync starts the save in a background goroutine and returns
// immediately, following the same gate semantics as LoadAsync. The
// snapshot is taken synchronously (under the Database mutex) before the
// goroutine starts, so concurrent mutations made after SaveAsync returns
// are never reflected in the saved data.
func (db *Database) SaveAsync(ctx context.Context, source string) <-chan error {
	result := make(chan error, 1)

	db.mu.Lock()
	if db.persister == nil {
		db.mu.Unlock()
		result <- ErrNoPersister
		return result
	}
	finish := db.gate.beginAsync(OpSave)
	snap := db.snapshot()
	db.mu.Unlock()

	go func() {
		defer finish()
		db.gate.setProgress(0.5)
		if err := db.persister.Save(ctx, snap); err != nil {
			result <- err
			return
		}
		db.mu.Lock()
		db.currentSource = source
		db.mu.Unlock()
		result <- nil
	}()

	return result
}
