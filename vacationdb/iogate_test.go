package vacationdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacationdb/calendar"
	"github.com/warp/vacationdb/rational"
	"github.com/warp/vacationdb/vacationdb"
)

// memoryPersister is a minimal in-memory Persister stand-in for exercising
// the I/O gate without a real storage backend.
type memoryPersister struct {
	snap vacationdb.Snapshot
}

func (m *memoryPersister) Save(_ context.Context, snap vacationdb.Snapshot) error {
	m.snap = snap
	return nil
}

func (m *memoryPersister) Load(_ context.Context) (vacationdb.Snapshot, error) {
	return m.snap, nil
}

func TestNoPersisterConfigured(t *testing.T) {
	db := newTestDB()
	err := db.SaveSync(context.Background(), "ignored")
	assert.ErrorIs(t, err, vacationdb.ErrNoPersister)
}

func TestSaveSyncThenLoadSyncRoundTrips(t *testing.T) {
	p := &memoryPersister{}
	db := vacationdb.NewDatabase(p)
	pid := db.AddPerson("Alice", calendar.MustNew(2020, 1, 1), rational.MustParse("1"))
	did := db.AddLeaveType("Vacation", rational.MustParse("0"), rational.MustParse("5"))

	require.NoError(t, db.SaveSync(context.Background(), "mem"))
	assert.Equal(t, "mem", db.CurrentSource())

	db2 := vacationdb.NewDatabase(p)
	require.NoError(t, db2.LoadSync(context.Background(), "mem"))

	info, err := db2.GetPersonInfo(pid)
	require.NoError(t, err)
	assert.Equal(t, "Alice", info.Name)

	ltInfo, err := db2.GetLeaveTypeInfo(did)
	require.NoError(t, err)
	assert.Equal(t, "Vacation", ltInfo.Name)
}

func TestSaveAsyncReportsStatusUntilDone(t *testing.T) {
	p := &memoryPersister{}
	db := vacationdb.NewDatabase(p)
	db.AddPerson("Alice", calendar.MustNew(2020, 1, 1), rational.MustParse("1"))

	result := db.SaveAsync(context.Background(), "mem")
	err := <-result
	require.NoError(t, err)

	op, progress := db.Status()
	assert.Equal(t, vacationdb.OpNone, op)
	assert.Equal(t, 1.0, progress)
}

func TestClearResetsEverything(t *testing.T) {
	db := newTestDB()
	db.AddPerson("Alice", calendar.MustNew(2020, 1, 1), rational.MustParse("1"))
	db.AddLeaveType("Vacation", rational.MustParse("0"), rational.MustParse("1"))

	db.Clear()

	assert.Equal(t, 0, db.PersonCount())
	assert.Equal(t, 0, db.LeaveTypeCount())
	op, progress := db.Status()
	assert.Equal(t, vacationdb.OpNone, op)
	assert.Equal(t, float64(0), progress)
}
