package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// PunchTimes is one phase of the two-phase punch value: the times a badge
// scan proposed (candidate) or the times a supervisor signed off (confirmed).
type PunchTimes struct {
	FirstIn *time.Time `json:"first_in" bun:"first_in"`
	LastOut *time.Time `json:"last_out" bun:"last_out"`
	Late    bool       `json:"late"     bun:"late"`
}

// Punch is one attendance record per user per calendar day. WorkDay is the
// calendar day in "2006-01-02" form; (user_id, work_day) is unique.
//
// Candidate holds what the badge reader proposed and is only meaningful while
// Pending is true. Confirmed holds what a supervisor validated, or the fixed
// synthetic hours when LeaveID is set. Present never becomes true while the
// record is pending or rejected; Scan/Confirm/Reject in the punch repository
// are the only writers.
type Punch struct {
	bun.BaseModel `bun:"table:punches"`

	BasicEntity
	UserID      *int       `json:"user_id"      bun:"user_id"`
	WorkDay     string     `json:"work_day"     bun:"work_day"`
	Candidate   PunchTimes `json:"candidate"    bun:"embed:candidate_"`
	Confirmed   PunchTimes `json:"confirmed"    bun:"embed:confirmed_"`
	Present     bool       `json:"present"      bun:"present"`
	Pending     bool       `json:"pending"      bun:"pending"`
	Rejected    bool       `json:"rejected"     bun:"rejected"`
	ValidatorID *int       `json:"validator_id" bun:"validator_id"`
	LeaveID     *int       `json:"leave_id"     bun:"leave_id"`
}

// WorkDayFormat is the canonical layout for Punch.WorkDay and all calendar
// day parameters.
const WorkDayFormat = "2006-01-02"
