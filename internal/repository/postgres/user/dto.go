package user

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit        *int
	Offset       *int
	Page         *int
	Search       *string
	DepartmentID *int
	CohortID     *int
	Kind         *string
	Status       *string
}

type SignInRequest struct {
	EmployeeID string `json:"employee_id" form:"employee_id"`
	Password   string `json:"password" form:"password"`
}

type AuthClaims struct {
	ID   int
	Role string
	Type string
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type GetListResponse struct {
	ID               int        `json:"id"`
	EmployeeID       *string    `json:"employee_id"`
	CardID           *string    `json:"card_id"`
	FirstName        *string    `json:"first_name"`
	LastName         *string    `json:"last_name"`
	Role             *string    `json:"role"`
	Kind             *string    `json:"kind"`
	Status           *string    `json:"status"`
	ReactivationDate *date.Date `json:"reactivation_date"`
	DepartmentID     *int       `json:"department_id"`
	Department       *string    `json:"department"`
	CohortID         *int       `json:"cohort_id"`
	Cohort           *string    `json:"cohort"`
	Phone            *string    `json:"phone"`
	Email            *string    `json:"email"`
}

type GetDetailByIdResponse struct {
	ID               int        `json:"id"`
	EmployeeID       *string    `json:"employee_id"`
	CardID           *string    `json:"card_id"`
	FirstName        *string    `json:"first_name"`
	LastName         *string    `json:"last_name"`
	Role             *string    `json:"role"`
	Kind             *string    `json:"kind"`
	Status           *string    `json:"status"`
	ReactivationDate *date.Date `json:"reactivation_date"`
	DepartmentID     *int       `json:"department_id"`
	Department       *string    `json:"department"`
	CohortID         *int       `json:"cohort_id"`
	Cohort           *string    `json:"cohort"`
	Phone            *string    `json:"phone"`
	Email            *string    `json:"email"`
}

type CreateRequest struct {
	EmployeeID   *string `json:"employee_id" form:"employee_id"`
	CardID       *string `json:"card_id" form:"card_id"`
	Password     *string `json:"password" form:"password"`
	Role         *string `json:"role" form:"role"`
	FirstName    *string `json:"first_name" form:"first_name"`
	LastName     *string `json:"last_name" form:"last_name"`
	Kind         *string `json:"kind" form:"kind"`
	DepartmentID *int    `json:"department_id" form:"department_id"`
	CohortID     *int    `json:"cohort_id" form:"cohort_id"`
	Phone        *string `json:"phone" form:"phone"`
	Email        *string `json:"email" form:"email"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:users"`

	ID           int       `json:"id" bun:"-"`
	EmployeeID   *string   `json:"employee_id" bun:"employee_id"`
	CardID       *string   `json:"card_id" bun:"card_id"`
	Password     *string   `json:"-" bun:"password"`
	Role         *string   `json:"role" bun:"role"`
	FirstName    *string   `json:"first_name" bun:"first_name"`
	LastName     *string   `json:"last_name" bun:"last_name"`
	Kind         *string   `json:"kind" bun:"kind"`
	Status       string    `json:"status" bun:"status"`
	DepartmentID *int      `json:"department_id" bun:"department_id"`
	CohortID     *int      `json:"cohort_id" bun:"cohort_id"`
	Phone        *string   `json:"phone" bun:"phone"`
	Email        *string   `json:"email" bun:"email"`
	CreatedAt    time.Time `json:"-" bun:"created_at"`
	CreatedBy    int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID           int     `json:"id" form:"id"`
	EmployeeID   *string `json:"employee_id" form:"employee_id"`
	Password     *string `json:"password" form:"password"`
	Role         *string `json:"role" form:"role"`
	FirstName    *string `json:"first_name" form:"first_name"`
	LastName     *string `json:"last_name" form:"last_name"`
	Kind         *string `json:"kind" form:"kind"`
	DepartmentID *int    `json:"department_id" form:"department_id"`
	CohortID     *int    `json:"cohort_id" form:"cohort_id"`
	Phone        *string `json:"phone" form:"phone"`
	Email        *string `json:"email" form:"email"`
}

type AssignCardRequest struct {
	ID     int     `json:"id" form:"id"`
	CardID *string `json:"card_id" form:"card_id"`
}

type VerifyCardRequest struct {
	CardID *string `json:"card_id" form:"card_id"`
}

type VerifyCardResponse struct {
	UserID    int     `json:"user_id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Kind      *string `json:"kind"`
	Status    *string `json:"status"`
}

type SetStatusRequest struct {
	ID               int     `json:"id" form:"id"`
	Status           *string `json:"status" form:"status"`
	ReactivationDate *string `json:"reactivation_date" form:"reactivation_date"`
}

type ExportRow struct {
	EmployeeID string
	CardID     string
	FirstName  string
	LastName   string
	Role       string
	Kind       string
	Status     string
	Department string
	Cohort     string
	Email      string
	Phone      string
}

type ImportRow struct {
	EmployeeID string
	CardID     string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Kind       string
	Department string
	Cohort     string
}

type ImportResponse struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}
