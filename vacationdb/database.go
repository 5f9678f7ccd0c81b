package vacationdb

import (
	"context"
	"sync"
)

// Snapshot is the full contents of a Database at a point in time, handed
// to and returned from a Persister. Field order matches the normalized
// table layout in persist/sqlite (see persist/sqlite/sqlite.go).
type Snapshot struct {
	Persons    []Person
	LeaveTypes []LeaveType
}

// Persister is implemented by a storage backend capable of durably saving
// and restoring a Snapshot. persist/sqlite.Store is the only production
// implementation; Database depends only on this interface so the
// evaluator and mutation API stay independent of the storage format.
type Persister interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context) (Snapshot, error)
}

// Database is the top-level collaborator: an entity store, an I/O gate,
// and a single mutex serializing every public method body except Status,
// which reads the gate without taking it. Grounded on
// db_impl's structure, generalized to Go's sync.Mutex in place of the
// source's ad hoc locking, per spec.md §5's chosen concurrency model —
// one coarse lock, rather than per-entity locking, because every mutation
// and query is already O(entities) and contention is not a design
// concern for an embedded, single-process database.
type Database struct {
	mu    sync.Mutex
	store *store
	gate  *gate

	persister     Persister
	currentSource string
}

// NewDatabase constructs an empty Database. persister may be nil; Load
// and Save then return ErrNoPersister.
func NewDatabase(persister Persister) *Database {
	return &Database{
		store:     newStore(),
		gate:      newGate(),
		persister: persister,
	}
}

// Clear discards every person and leave type and resets the I/O gate.
// Blocks until any in-flight load/save completes first.
func (db *Database) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gate.BlockIfLocked()

	db.store.reset()
	db.gate.reset()
	db.currentSource = ""
}

// Status reports the I/O gate's current operation and coarse progress.
func (db *Database) Status() (Operation, float64) {
	return db.gate.Status()
}

// CurrentSource names the backend identity (e.g. a DSN) the most recent
// successful Load or Save used, or "" if neither has happened yet.
func (db *Database) CurrentSource() string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.currentSource
}
