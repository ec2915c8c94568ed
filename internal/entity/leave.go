package entity

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	LeaveTypeLeave  = "leave"
	LeaveTypeSick   = "sick"
	LeaveTypeTravel = "travel"

	LeaveStatusValidated = "validated"
)

// Leave is an approved absence interval, end inclusive. Creating one
// deactivates the user's badge until EndDate and synthesizes present punches
// for every weekday in the interval.
type Leave struct {
	bun.BaseModel `bun:"table:leaves"`

	BasicEntity
	UserID      *int      `json:"user_id"      bun:"user_id"`
	StartDate   time.Time `json:"start_date"   bun:"start_date"`
	EndDate     time.Time `json:"end_date"     bun:"end_date"`
	Type        *string   `json:"type"         bun:"type"`
	Reason      *string   `json:"reason"       bun:"reason"`
	Status      *string   `json:"status"       bun:"status"`
	ValidatorID *int      `json:"validator_id" bun:"validator_id"`
}
