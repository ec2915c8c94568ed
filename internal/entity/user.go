package entity

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"

	UserKindEmployee = "employee"
	UserKindLearner  = "learner"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	EmployeeID       *string    `json:"employee_id"   bun:"employee_id"`
	CardID           *string    `json:"card_id"       bun:"card_id"`
	FirstName        *string    `json:"first_name"    bun:"first_name"`
	LastName         *string    `json:"last_name"     bun:"last_name"`
	Email            *string    `json:"email"         bun:"email"`
	Phone            *string    `json:"phone"         bun:"phone"`
	Password         *string    `json:"-"             bun:"password"`
	Role             *string    `json:"role"          bun:"role"`
	Kind             *string    `json:"kind"          bun:"kind"`
	Status           *string    `json:"status"        bun:"status"`
	ReactivationDate *time.Time `json:"reactivation_date" bun:"reactivation_date"`
	DepartmentID     *int       `json:"department_id" bun:"department_id"`
	CohortID         *int       `json:"cohort_id"     bun:"cohort_id"`
}

// Active reports whether the badge owner may punch today.
func (u User) Active() bool {
	return u.Status != nil && *u.Status == UserStatusActive
}
