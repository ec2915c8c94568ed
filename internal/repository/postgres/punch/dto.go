package punch

import (
	"time"

	"pointage/backend/internal/entity"

	"github.com/Azure/go-autorest/autorest/date"
)

type Filter struct {
	Limit   *int
	Offset  *int
	Page    *int
	Date    *string
	UserID  *int
	Pending *bool
}

type ScanRequest struct {
	CardID *string `json:"card_id" form:"card_id"`
}

type ScanResponse struct {
	User  entity.User  `json:"user"`
	Punch entity.Punch `json:"punch"`
	Kind  ScanKind     `json:"kind"`
}

const (
	ActionConfirm = "confirm"
	ActionReject  = "reject"
)

type ValidateRequest struct {
	Action *string `json:"action" form:"action"`
}

type GetListResponse struct {
	ID           int        `json:"id"`
	UserID       *int       `json:"user_id"`
	EmployeeID   *string    `json:"employee_id"`
	FullName     *string    `json:"full_name"`
	DepartmentID *int       `json:"department_id"`
	Department   *string    `json:"department"`
	CohortID     *int       `json:"cohort_id"`
	Cohort       *string    `json:"cohort"`
	WorkDay      *date.Date `json:"work_day"`
	FirstIn      *time.Time `json:"first_in"`
	LastOut      *time.Time `json:"last_out"`
	Late         bool       `json:"late"`
	Present      bool       `json:"present"`
	Pending      bool       `json:"pending"`
	Rejected     bool       `json:"rejected"`
	LeaveID      *int       `json:"leave_id,omitempty"`
}

const (
	HistoryKindLate    = "late"
	HistoryKindAbsence = "absence"
)

type HistoryFilter struct {
	Start  *string
	End    *string
	UserID *int
	Kind   *string
	Limit  *int
	Offset *int
	Page   *int
}

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

type PresenceFilter struct {
	StartDate    *string
	EndDate      *string
	Date         *string
	Period       *string
	CohortID     *int
	DepartmentID *int
	UserKind     *string
	Status       *string
	Limit        *int
	Offset       *int
	Page         *int
}

type PresenceResponse struct {
	Results    []GetListResponse `json:"results"`
	Statistics Statistics        `json:"statistics"`
}

type UpdateRequest struct {
	ID      int        `json:"id" form:"id"`
	FirstIn *time.Time `json:"first_in" form:"first_in"`
	LastOut *time.Time `json:"last_out" form:"last_out"`
	Present *bool      `json:"present" form:"present"`
	Late    *bool      `json:"late" form:"late"`
}

type GenerateRequest struct {
	Date *string `json:"date" form:"date"`
}

type GenerateResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
