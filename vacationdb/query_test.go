package vacationdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacationdb/calendar"
	"github.com/warp/vacationdb/rational"
	"github.com/warp/vacationdb/vacationdb"
)

func newTestDB() *vacationdb.Database {
	return vacationdb.NewDatabase(nil)
}

func balanceOf(t *testing.T, db *vacationdb.Database, pid vacationdb.PersonID, did vacationdb.LeaveTypeID, qdate calendar.Date) rational.Q {
	t.Helper()
	b, err := db.QueryPersonLeaveType(pid, did, qdate)
	require.NoError(t, err)
	return b
}

func TestStartingDateYearlyBonus(t *testing.T) {
	db := newTestDB()
	pid := db.AddPerson("Alice", calendar.MustNew(2016, 10, 31), rational.MustParse("1"))
	did := db.AddLeaveType("Vacation", rational.MustParse("0"), rational.MustParse("10.25"))

	assert.Equal(t, "41/4", balanceOf(t, db, pid, did, calendar.MustNew(2016, 10, 31)).String())
	assert.Equal(t, "41/4", balanceOf(t, db, pid, did, calendar.MustNew(2017, 1, 1)).String())
}

func TestRollover(t *testing.T) {
	db := newTestDB()
	pid := db.AddPerson("Alice", calendar.MustNew(2016, 10, 31), rational.MustParse("1"))
	did := db.AddLeaveType("Vacation", rational.MustParse("2"), rational.MustParse("4"))

	assert.Equal(t, "6", balanceOf(t, db, pid, did, calendar.MustNew(2017, 1, 1)).String())
}

func TestFullRollover(t *testing.T) {
	db := newTestDB()
	pid := db.AddPerson("Alice", calendar.MustNew(2016, 10, 31), rational.MustParse("1"))
	did := db.AddLeaveType("Vacation", rational.MustParse("-1"), rational.MustParse("2"))

	assert.Equal(t, "4", balanceOf(t, db, pid, did, calendar.MustNew(2017, 1, 1)).String())
}

func TestSingleDayTaken(t *testing.T) {
	db := newTestDB()
	pid := db.AddPerson("Alice", calendar.MustNew(2016, 10, 31), rational.MustParse("1"))
	did := db.AddLeaveType("Vacation", rational.MustParse("0"), rational.MustParse("1"))
	require.NoError(t, db.AddPersonDay(pid, did, calendar.MustNew(2016, 10, 31), rational.MustParse("1")))

	assert.Equal(t, "0", balanceOf(t, db, pid, did, calendar.MustNew(2016, 10, 31)).String())
}

func TestMultipleDayRules(t *testing.T) {
	db := newTestDB()
	pid := db.AddPerson("Alice", calendar.MustNew(2017, 1, 1), rational.MustParse("1"))
	did := db.AddLeaveType("Vacation", rational.MustParse("-1"), rational.MustParse("0"))
	_, err := db.AddRule(did, 1, rational.MustParse("15"))
	require.NoError(t, err)
	_, err = db.AddRule(did, 7, rational.MustParse("30"))
	require.NoError(t, err)
	_, err = db.AddRule(did, 13, rational.MustParse("45"))
	require.NoError(t, err)
	_, err = db.AddRule(did, 19, rational.MustParse("60"))
	require.NoError(t, err)

	got := balanceOf(t, db, pid, did, calendar.MustNew(2019, 1, 1))
	assert.True(t, rational.Within(got, rational.MustParse("75"), rational.MustParse("1/2")), "got %s", got)
}

func TestThousandYears(t *testing.T) {
	db := newTestDB()
	pid := db.AddPerson("Alice", calendar.MustNew(2000, 1, 1), rational.MustParse("1"))
	did := db.AddLeaveType("Vacation", rational.MustParse("-1"), rational.MustParse("0"))
	_, err := db.AddRule(did, 1, rational.MustParse("24"))
	require.NoError(t, err)

	got := balanceOf(t, db, pid, did, calendar.MustNew(3000, 1, 1))
	assert.True(t, rational.Within(got, rational.MustParse("24000"), rational.MustParse("1/2")), "got %s", got)

	got2 := balanceOf(t, db, pid, did, calendar.MustNew(3000, 7, 3))
	assert.True(t, rational.Within(got2, rational.MustParse("24012"), rational.MustParse("1/2")), "got %s", got2)
}

// TestCase1 is the composite scenario from spec.md §8: hire 2015-01-01,
// three leave types with a mix of rules, taken-days, rollover and bonus,
// queried at two points in the year. Literal inputs as in source
// (original_source/libvacationdb/tests/calculation_accuracy.cpp,
// TEST(CALC_ACCURACY, TestCase1)).
func TestCase1(t *testing.T) {
	db := newTestDB()
	pid := db.AddPerson("Alice", calendar.MustNew(2015, 1, 1), rational.MustParse("1"))

	vacation := db.AddLeaveType("Vacation", rational.MustParse("-1"), rational.MustParse("0"))
	_, err := db.AddRule(vacation, 1, rational.MustParse("24"))
	require.NoError(t, err)

	takenVacation := []struct {
		y, m, d int
		amount  string
	}{
		{2015, 1, 1, "-28.5"},
		{2015, 1, 28, "1"},
		{2015, 1, 29, "1"},
		{2015, 1, 30, "1"},
		{2015, 3, 20, "1"},
		{2015, 3, 27, "1"},
		{2015, 4, 3, "1"},
		{2015, 4, 10, "1"},
		{2015, 6, 29, "1"},
		{2015, 6, 30, "1"},
		{2015, 7, 1, "1"},
		{2015, 7, 2, "1"},
		{2015, 8, 26, "0.5"},
		{2015, 8, 27, "1"},
		{2015, 8, 28, "1"},
		{2015, 8, 31, "1"},
		{2015, 9, 1, "1"},
		{2015, 9, 2, "1"},
		{2015, 9, 3, "1"},
		{2015, 9, 4, "1"},
	}
	for _, td := range takenVacation {
		require.NoError(t, db.AddPersonDay(pid, vacation, calendar.MustNew(td.y, td.m, td.d), rational.MustParse(td.amount)))
	}

	personal := db.AddLeaveType("Personal", rational.MustParse("0"), rational.MustParse("1"))
	_, err = db.AddRule(personal, 1, rational.MustParse("4"))
	require.NoError(t, err)

	takenPersonal := []struct {
		y, m, d int
	}{
		{2015, 1, 22},
		{2015, 4, 6},
		{2015, 4, 22},
	}
	for _, td := range takenPersonal {
		require.NoError(t, db.AddPersonDay(pid, personal, calendar.MustNew(td.y, td.m, td.d), rational.MustParse("1")))
	}

	sick := db.AddLeaveType("Sick", rational.MustParse("0"), rational.MustParse("5"))
	_, err = db.AddRule(sick, 1, rational.MustParse("9.96"))
	require.NoError(t, err)
	require.NoError(t, db.AddPersonDay(pid, sick, calendar.MustNew(2015, 4, 21), rational.MustParse("0.5")))

	qdate1 := calendar.MustNew(2015, 5, 31)
	gotVacation1 := balanceOf(t, db, pid, vacation, qdate1)
	assert.True(t, rational.Within(gotVacation1, rational.MustParse("63/2"), rational.MustParse("1/4")), "vacation got %s", gotVacation1)

	gotPersonal1 := balanceOf(t, db, pid, personal, qdate1)
	assert.True(t, rational.Within(gotPersonal1, rational.MustParse("0"), rational.MustParse("1/2")), "personal got %s", gotPersonal1)

	gotSick1 := balanceOf(t, db, pid, sick, qdate1)
	assert.True(t, rational.Within(gotSick1, rational.MustParse("865/100"), rational.MustParse("1/4")), "sick got %s", gotSick1)

	qdate2 := calendar.MustNew(2015, 12, 31)
	gotVacation2 := balanceOf(t, db, pid, vacation, qdate2)
	assert.True(t, rational.Within(gotVacation2, rational.MustParse("34"), rational.MustParse("1/4")), "vacation got %s", gotVacation2)

	gotPersonal2 := balanceOf(t, db, pid, personal, qdate2)
	assert.True(t, rational.Within(gotPersonal2, rational.MustParse("2"), rational.MustParse("1/2")), "personal got %s", gotPersonal2)

	gotSick2 := balanceOf(t, db, pid, sick, qdate2)
	assert.True(t, rational.Within(gotSick2, rational.MustParse("1446/100"), rational.MustParse("1/4")), "sick got %s", gotSick2)
}

func TestQueryPersonOverloadListsAllLeaveTypesInInsertionOrder(t *testing.T) {
	db := newTestDB()
	pid := db.AddPerson("Alice", calendar.MustNew(2020, 1, 1), rational.MustParse("1"))
	db.AddLeaveType("Vacation", rational.MustParse("0"), rational.MustParse("1"))
	db.AddLeaveType("Sick", rational.MustParse("0"), rational.MustParse("2"))

	balances, err := db.QueryPerson(pid, calendar.MustNew(2020, 1, 1))
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, "Vacation", balances[0].LeaveTypeName)
	assert.Equal(t, "Sick", balances[1].LeaveTypeName)
}

func TestQueryPersonOverloadSkipsTombstonedLeaveTypes(t *testing.T) {
	db := newTestDB()
	pid := db.AddPerson("Alice", calendar.MustNew(2020, 1, 1), rational.MustParse("1"))
	db.AddLeaveType("Vacation", rational.MustParse("0"), rational.MustParse("1"))
	sick := db.AddLeaveType("Sick", rational.MustParse("0"), rational.MustParse("2"))
	require.NoError(t, db.DeleteLeaveType(sick))

	balances, err := db.QueryPerson(pid, calendar.MustNew(2020, 1, 1))
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "Vacation", balances[0].LeaveTypeName)
}
