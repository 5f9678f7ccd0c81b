/*
handlers.go - HTTP API handlers exposing vacationdb.Database over REST

PURPOSE:
  Parses the HTTP request, delegates to the Database's mutation/query
  API, and serializes the result. Domain errors are mapped to HTTP status
  codes per SPEC_FULL.md §4.7: InvalidDate/InvalidNumber -> 400,
  InvalidIndex/EmployeeNotFound/DayNotFound -> 404.

SEE ALSO:
  - dto.go: request/response structures
  - server.go: router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warp/vacationdb/calendar"
	"github.com/warp/vacationdb/rational"
	"github.com/warp/vacationdb/vacationdb"
)

// Handler holds the Database every endpoint operates on.
type Handler struct {
	DB *vacationdb.Database
}

// NewHandler constructs a Handler wrapping db.
func NewHandler(db *vacationdb.Database) *Handler {
	return &Handler{DB: db}
}

// --- shared helpers ------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps a vacationdb/calendar/rational sentinel error to
// the HTTP status SPEC_FULL.md §4.7 assigns it.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendar.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid date", err)
	case errors.Is(err, rational.ErrInvalidNumber):
		writeError(w, http.StatusBadRequest, "invalid number", err)
	case errors.Is(err, vacationdb.ErrInvalidIndex):
		writeError(w, http.StatusNotFound, "invalid index", err)
	case errors.Is(err, vacationdb.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, "employee not found", err)
	case errors.Is(err, vacationdb.ErrDayNotFound):
		writeError(w, http.StatusNotFound, "day not found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal error", err)
	}
}

func toDate(d DateDTO) (calendar.Date, error) {
	return calendar.New(d.Year, d.Month, d.Day)
}

func fromDate(year, month, day int) DateDTO {
	return DateDTO{Year: year, Month: month, Day: day}
}

func parsePersonID(r *http.Request) (vacationdb.PersonID, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, vacationdb.ErrInvalidIndex
	}
	return vacationdb.PersonID(n), nil
}

func parseLeaveTypeID(r *http.Request) (vacationdb.LeaveTypeID, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "did"))
	if err != nil {
		return 0, vacationdb.ErrInvalidIndex
	}
	return vacationdb.LeaveTypeID(n), nil
}

// --- persons ---------------------------------------------------------------

// ListPersons returns every non-tombstoned person's name.
// GET /api/persons
func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.DB.ListPersonNames())
}

// CreatePerson adds a new person.
// POST /api/persons
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	start, err := toDate(req.StartDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	workTime, err := rational.Parse(req.WorkTime)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	id := h.DB.AddPerson(req.Name, start, workTime)
	writeJSON(w, http.StatusCreated, map[string]int{"id": int(id)})
}

// GetPerson returns one person's read-only projection.
// GET /api/persons/{id}
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	pid, err := parsePersonID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	info, err := h.DB.GetPersonInfo(pid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonDTO(info))
}

// EditPerson updates the fields present in the request body.
// PUT /api/persons/{id}
func (h *Handler) EditPerson(w http.ResponseWriter, r *http.Request) {
	pid, err := parsePersonID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req EditPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Name != nil {
		if err := h.DB.EditPersonName(pid, *req.Name); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if req.StartDate != nil {
		start, err := toDate(*req.StartDate)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := h.DB.EditPersonStartDate(pid, start); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if req.WorkTime != nil {
		workTime, err := rational.Parse(*req.WorkTime)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := h.DB.EditPersonWorkTime(pid, workTime); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	info, err := h.DB.GetPersonInfo(pid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonDTO(info))
}

// DeletePerson tombstones a person.
// DELETE /api/persons/{id}
func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	pid, err := parsePersonID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.DB.DeletePerson(pid); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toPersonDTO(info vacationdb.PersonInfo) PersonDTO {
	dto := PersonDTO{
		ID:        int(info.ID),
		Name:      info.Name,
		StartDate: fromDate(info.StartYear, info.StartMonth, info.StartDay),
		WorkTime:  info.WorkTime,
	}
	for _, et := range info.ExtraWorkTime {
		dto.ExtraWorkTime = append(dto.ExtraWorkTime, ExtraTimeEntryDTO{
			ID:      int(et.ID),
			Begin:   fromDate(et.BeginYear, et.BeginMonth, et.BeginDay),
			End:     fromDate(et.EndYear, et.EndMonth, et.EndDay),
			Percent: et.Percent,
		})
	}
	return dto
}

// --- extra time --------------------------------------------------------

// AddExtraTime appends a work-time override to a person.
// POST /api/persons/{id}/extra-time
func (h *Handler) AddExtraTime(w http.ResponseWriter, r *http.Request) {
	pid, err := parsePersonID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req ExtraTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	begin, err := toDate(req.Begin)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	end, err := toDate(req.End)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	percent, err := rational.Parse(req.Percent)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	id, err := h.DB.AddExtraTime(pid, begin, end, percent)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ExtraTimeResponse{ID: int(id)})
}

// RemoveExtraTime tombstones one extra-time override.
// DELETE /api/persons/{id}/extra-time/{eid}
func (h *Handler) RemoveExtraTime(w http.ResponseWriter, r *http.Request) {
	pid, err := parsePersonID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	eid, err := strconv.Atoi(chi.URLParam(r, "eid"))
	if err != nil {
		writeDomainError(w, vacationdb.ErrInvalidIndex)
		return
	}
	if err := h.DB.RemoveExtraTime(pid, vacationdb.ExtraTimeID(eid)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- taken days ----------------------------------------------------------

// AddPersonDay records a day of leave taken.
// POST /api/persons/{id}/leave-types/{did}/taken-days
func (h *Handler) AddPersonDay(w http.ResponseWriter, r *http.Request) {
	pid, err := parsePersonID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	did, err := parseLeaveTypeID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req PersonDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	date, err := toDate(req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	amount, err := rational.Parse(req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.DB.AddPersonDay(pid, did, date, amount); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// RemovePersonDay removes the first taken-day entry matching the given
// date exactly.
// DELETE /api/persons/{id}/leave-types/{did}/taken-days
func (h *Handler) RemovePersonDay(w http.ResponseWriter, r *http.Request) {
	pid, err := parsePersonID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	did, err := parseLeaveTypeID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req PersonDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	date, err := toDate(req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.DB.RemovePersonDay(pid, did, date); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- queries ---------------------------------------------------------------

// QueryPersonLeaveType returns a person's balance for one leave type as
// of a query date given in the "date" query parameters (year/month/day).
// GET /api/persons/{id}/leave-types/{did}/query?year=&month=&day=
func (h *Handler) QueryPersonLeaveType(w http.ResponseWriter, r *http.Request) {
	pid, err := parsePersonID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	did, err := parseLeaveTypeID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	qdate, err := parseQueryDate(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	balance, err := h.DB.QueryPersonLeaveType(pid, did, qdate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{Balance: balance.String()})
}

// QueryPerson returns a person's balance across every leave type as of a
// query date given in the "date" query parameters (year/month/day).
// GET /api/persons/{id}/query?year=&month=&day=
func (h *Handler) QueryPerson(w http.ResponseWriter, r *http.Request) {
	pid, err := parsePersonID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	qdate, err := parseQueryDate(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	balances, err := h.DB.QueryPerson(pid, qdate)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := PersonQueryResponse{}
	for _, b := range balances {
		resp.Balances = append(resp.Balances, PersonDayBalanceDTO{LeaveTypeName: b.LeaveTypeName, Balance: b.Balance})
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseQueryDate(r *http.Request) (calendar.Date, error) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		return calendar.Date{}, calendar.ErrInvalidDate
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		return calendar.Date{}, calendar.ErrInvalidDate
	}
	day, err := strconv.Atoi(q.Get("day"))
	if err != nil {
		return calendar.Date{}, calendar.ErrInvalidDate
	}
	return calendar.New(year, month, day)
}

// --- leave types -----------------------------------------------------------

// ListLeaveTypes returns every non-tombstoned leave type's name.
// GET /api/leave-types
func (h *Handler) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.DB.ListLeaveTypeNames())
}

// CreateLeaveType adds a new leave type.
// POST /api/leave-types
func (h *Handler) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	rollover, err := rational.Parse(req.Rollover)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	bonus, err := rational.Parse(req.YearlyBonus)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	id := h.DB.AddLeaveType(req.Name, rollover, bonus)
	writeJSON(w, http.StatusCreated, map[string]int{"id": int(id)})
}

// GetLeaveType returns one leave type's read-only projection.
// GET /api/leave-types/{id}
func (h *Handler) GetLeaveType(w http.ResponseWriter, r *http.Request) {
	did, err := parseLeaveTypeIDFromID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	info, err := h.DB.GetLeaveTypeInfo(did)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveTypeDTO(info))
}

// EditLeaveType updates the fields present in the request body.
// PUT /api/leave-types/{id}
func (h *Handler) EditLeaveType(w http.ResponseWriter, r *http.Request) {
	did, err := parseLeaveTypeIDFromID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req EditLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Name != nil {
		if err := h.DB.EditLeaveTypeName(did, *req.Name); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if req.Rollover != nil {
		rollover, err := rational.Parse(*req.Rollover)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := h.DB.EditLeaveTypeRollover(did, rollover); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if req.YearlyBonus != nil {
		bonus, err := rational.Parse(*req.YearlyBonus)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := h.DB.EditLeaveTypeYearlyBonus(did, bonus); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	info, err := h.DB.GetLeaveTypeInfo(did)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveTypeDTO(info))
}

// DeleteLeaveType tombstones a leave type.
// DELETE /api/leave-types/{id}
func (h *Handler) DeleteLeaveType(w http.ResponseWriter, r *http.Request) {
	did, err := parseLeaveTypeIDFromID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.DB.DeleteLeaveType(did); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseLeaveTypeIDFromID(r *http.Request) (vacationdb.LeaveTypeID, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, vacationdb.ErrInvalidIndex
	}
	return vacationdb.LeaveTypeID(n), nil
}

func toLeaveTypeDTO(info vacationdb.LeaveTypeInfo) LeaveTypeDTO {
	dto := LeaveTypeDTO{
		ID:          int(info.ID),
		Name:        info.Name,
		Rollover:    info.Rollover,
		YearlyBonus: info.YearlyBonus,
	}
	for _, r := range info.Rules {
		dto.Rules = append(dto.Rules, RuleDTO{ID: int(r.ID), MonthOffset: r.MonthOffset, DaysPerYear: r.DaysPerYear})
	}
	return dto
}

// --- rules -----------------------------------------------------------------

// AddRule appends a tenure-based accrual-rate step to a leave type.
// POST /api/leave-types/{id}/rules
func (h *Handler) AddRule(w http.ResponseWriter, r *http.Request) {
	did, err := parseLeaveTypeIDFromID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req RuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	rate, err := rational.Parse(req.DaysPerYear)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	id, err := h.DB.AddRule(did, req.MonthOffset, rate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, RuleResponse{ID: int(id)})
}

// RemoveRule tombstones one accrual-rate step.
// DELETE /api/leave-types/{id}/rules/{rid}
func (h *Handler) RemoveRule(w http.ResponseWriter, r *http.Request) {
	did, err := parseLeaveTypeIDFromID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rid, err := strconv.Atoi(chi.URLParam(r, "rid"))
	if err != nil {
		writeDomainError(w, vacationdb.ErrInvalidIndex)
		return
	}
	if err := h.DB.RemoveRule(did, vacationdb.RuleID(rid)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- status / persistence / clear ------------------------------------------

// GetStatus reports the I/O gate's current operation and progress.
// GET /api/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	op, progress := h.DB.Status()
	name := "none"
	switch op {
	case vacationdb.OpLoad:
		name = "load"
	case vacationdb.OpSave:
		name = "save"
	}
	writeJSON(w, http.StatusOK, StatusResponse{Operation: name, Progress: progress})
}

// Save persists the database. With "async": true it returns immediately
// and the caller polls GetStatus; otherwise it blocks until done.
// POST /api/save
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req SourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Async {
		h.DB.SaveAsync(context.Background(), req.Source)
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if err := h.DB.SaveSync(r.Context(), req.Source); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Load restores the database from the persister. With "async": true it
// returns immediately and the caller polls GetStatus.
// POST /api/load
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	var req SourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Async {
		h.DB.LoadAsync(context.Background(), req.Source)
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if err := h.DB.LoadSync(r.Context(), req.Source); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear discards every person and leave type.
// POST /api/clear
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.DB.Clear()
	w.WriteHeader(http.StatusNoContent)
}
