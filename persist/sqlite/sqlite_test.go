package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacationdb/calendar"
	psqlite "github.com/warp/vacationdb/persist/sqlite"
	"github.com/warp/vacationdb/rational"
	"github.com/warp/vacationdb/vacationdb"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := psqlite.New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	db := vacationdb.NewDatabase(store)
	pid := db.AddPerson("Alice", calendar.MustNew(2020, 5, 17), rational.MustParse("3/4"))
	did := db.AddLeaveType("Vacation", rational.MustParse("2"), rational.MustParse("10.25"))
	_, err = db.AddRule(did, 6, rational.MustParse("15.5"))
	require.NoError(t, err)
	_, err = db.AddExtraTime(pid, calendar.MustNew(2020, 7, 1), calendar.MustNew(2020, 8, 1), rational.MustParse("1/2"))
	require.NoError(t, err)
	require.NoError(t, db.AddPersonDay(pid, did, calendar.MustNew(2020, 9, 1), rational.MustParse("1")))

	ctx := context.Background()
	require.NoError(t, db.SaveSync(ctx, ":memory:"))

	restored := vacationdb.NewDatabase(store)
	require.NoError(t, restored.LoadSync(ctx, ":memory:"))

	info, err := restored.GetPersonInfo(pid)
	require.NoError(t, err)
	assert.Equal(t, "Alice", info.Name)
	assert.Equal(t, "3/4", info.WorkTime)
	require.Len(t, info.ExtraWorkTime, 1)
	assert.Equal(t, "1/2", info.ExtraWorkTime[0].Percent)

	ltInfo, err := restored.GetLeaveTypeInfo(did)
	require.NoError(t, err)
	require.Len(t, ltInfo.Rules, 1)
	assert.Equal(t, "31/2", ltInfo.Rules[0].DaysPerYear)

	balance, err := restored.QueryPersonLeaveType(pid, did, calendar.MustNew(2020, 9, 1))
	require.NoError(t, err)
	assert.False(t, balance.IsZero())
}

func TestSaveLoadPreservesTombstones(t *testing.T) {
	store, err := psqlite.New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	db := vacationdb.NewDatabase(store)
	alive := db.AddPerson("Alice", calendar.MustNew(2020, 1, 1), rational.MustParse("1"))
	dead := db.AddPerson("Bob", calendar.MustNew(2020, 1, 1), rational.MustParse("1"))
	require.NoError(t, db.DeletePerson(dead))

	ctx := context.Background()
	require.NoError(t, db.SaveSync(ctx, ":memory:"))

	restored := vacationdb.NewDatabase(store)
	require.NoError(t, restored.LoadSync(ctx, ":memory:"))

	_, err = restored.GetPersonInfo(alive)
	require.NoError(t, err)

	_, err = restored.GetPersonInfo(dead)
	assert.ErrorIs(t, err, vacationdb.ErrInvalidIndex)
}
