package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacationdb/api"
	"github.com/warp/vacationdb/calendar"
	"github.com/warp/vacationdb/rational"
	"github.com/warp/vacationdb/vacationdb"
)

func newTestRouter() (*httptest.Server, *vacationdb.Database) {
	db := vacationdb.NewDatabase(nil)
	h := api.NewHandler(db)
	r := api.NewRouter(h)
	return httptest.NewServer(r), db
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCreateAndGetPerson(t *testing.T) {
	srv, _ := newTestRouter()
	defer srv.Close()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/persons", api.CreatePersonRequest{
		Name:      "Alice",
		StartDate: api.DateDTO{Year: 2020, Month: 1, Day: 1},
		WorkTime:  "1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/persons/0", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var person api.PersonDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&person))
	resp.Body.Close()

	assert.Equal(t, "Alice", person.Name)
	assert.Equal(t, "1", person.WorkTime)
}

func TestGetPersonNotFoundReturns404(t *testing.T) {
	srv, _ := newTestRouter()
	defer srv.Close()

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/persons/0", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreatePersonWithInvalidWorkTimeReturns400(t *testing.T) {
	srv, _ := newTestRouter()
	defer srv.Close()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/persons", api.CreatePersonRequest{
		Name:      "Alice",
		StartDate: api.DateDTO{Year: 2020, Month: 1, Day: 1},
		WorkTime:  "not-a-number",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestQueryPersonLeaveTypeEndToEnd(t *testing.T) {
	srv, db := newTestRouter()
	defer srv.Close()

	pid := db.AddPerson("Alice", calendar.MustNew(2016, 10, 31), rational.MustParse("1"))
	did := db.AddLeaveType("Vacation", rational.MustParse("0"), rational.MustParse("10.25"))
	_ = pid
	_ = did

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/persons/0/leave-types/0/query?year=2016&month=10&day=31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var q api.QueryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&q))
	resp.Body.Close()

	assert.Equal(t, "41/4", q.Balance)
}

func TestDeletePersonThenInvalidIndexReturns404(t *testing.T) {
	srv, db := newTestRouter()
	defer srv.Close()

	pid := db.AddPerson("Alice", calendar.MustNew(2020, 1, 1), rational.MustParse("1"))
	require.NoError(t, db.DeletePerson(pid))

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/persons/0", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
