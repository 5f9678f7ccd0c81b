package api

// DateDTO is the wire form of a calendar date: three small integers, per
// SPEC_FULL.md §6 ("All dates are (uint16 year, uint16 month, uint16 day)
// triples").
type DateDTO struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// ErrorResponse is the JSON body written on every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CreatePersonRequest is the POST /api/persons body.
type CreatePersonRequest struct {
	Name      string  `json:"name"`
	StartDate DateDTO `json:"start_date"`
	WorkTime  string  `json:"work_time"`
}

// EditPersonRequest is the PUT /api/persons/{id} body; any nil field is
// left unchanged.
type EditPersonRequest struct {
	Name      *string  `json:"name,omitempty"`
	StartDate *DateDTO `json:"start_date,omitempty"`
	WorkTime  *string  `json:"work_time,omitempty"`
}

// ExtraTimeRequest is the POST .../extra-time body.
type ExtraTimeRequest struct {
	Begin   DateDTO `json:"begin"`
	End     DateDTO `json:"end"`
	Percent string  `json:"percent"`
}

// ExtraTimeResponse is the response to a successful ExtraTimeRequest.
type ExtraTimeResponse struct {
	ID int `json:"id"`
}

// PersonDayRequest is the POST/DELETE .../taken-days body.
type PersonDayRequest struct {
	Date   DateDTO `json:"date"`
	Amount string  `json:"amount,omitempty"`
}

// PersonDTO is the response projection of a vacationdb.PersonInfo.
type PersonDTO struct {
	ID            int                 `json:"id"`
	Name          string              `json:"name"`
	StartDate     DateDTO             `json:"start_date"`
	WorkTime      string              `json:"work_time"`
	ExtraWorkTime []ExtraTimeEntryDTO `json:"extra_work_time"`
}

// ExtraTimeEntryDTO is one entry of PersonDTO.ExtraWorkTime.
type ExtraTimeEntryDTO struct {
	ID      int     `json:"id"`
	Begin   DateDTO `json:"begin"`
	End     DateDTO `json:"end"`
	Percent string  `json:"percent"`
}

// CreateLeaveTypeRequest is the POST /api/leave-types body.
type CreateLeaveTypeRequest struct {
	Name        string `json:"name"`
	Rollover    string `json:"rollover"`
	YearlyBonus string `json:"yearly_bonus"`
}

// EditLeaveTypeRequest is the PUT /api/leave-types/{id} body; any nil
// field is left unchanged.
type EditLeaveTypeRequest struct {
	Name        *string `json:"name,omitempty"`
	Rollover    *string `json:"rollover,omitempty"`
	YearlyBonus *string `json:"yearly_bonus,omitempty"`
}

// RuleRequest is the POST .../rules body.
type RuleRequest struct {
	MonthOffset uint32 `json:"month_offset"`
	DaysPerYear string `json:"days_per_year"`
}

// RuleResponse is the response to a successful RuleRequest.
type RuleResponse struct {
	ID int `json:"id"`
}

// LeaveTypeDTO is the response projection of a vacationdb.LeaveTypeInfo.
type LeaveTypeDTO struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Rollover    string    `json:"rollover"`
	YearlyBonus string    `json:"yearly_bonus"`
	Rules       []RuleDTO `json:"rules"`
}

// RuleDTO is one entry of LeaveTypeDTO.Rules.
type RuleDTO struct {
	ID          int    `json:"id"`
	MonthOffset uint32 `json:"month_offset"`
	DaysPerYear string `json:"days_per_year"`
}

// QueryResponse is the response to a single leave-type balance query.
type QueryResponse struct {
	Balance string `json:"balance"`
}

// PersonQueryResponse is the response to the multi-leave-type overload.
type PersonQueryResponse struct {
	Balances []PersonDayBalanceDTO `json:"balances"`
}

// PersonDayBalanceDTO is one entry of PersonQueryResponse.Balances.
type PersonDayBalanceDTO struct {
	LeaveTypeName string `json:"leave_type_name"`
	Balance       string `json:"balance"`
}

// StatusResponse is the response to GET /api/status.
type StatusResponse struct {
	Operation string  `json:"operation"`
	Progress  float64 `json:"progress"`
}

// SourceRequest is the body of POST /api/save and POST /api/load.
type SourceRequest struct {
	Source string `json:"source"`
	Async  bool   `json:"async"`
}
