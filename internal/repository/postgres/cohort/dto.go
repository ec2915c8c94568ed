package cohort

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	Year   *int
}

type GetListResponse struct {
	ID   int     `json:"id"`
	Name *string `json:"name"`
	Year *int    `json:"year"`
}

type GetDetailByIdResponse struct {
	ID   int     `json:"id"`
	Name *string `json:"name" form:"name"`
	Year *int    `json:"year" form:"year"`
}

type CreateRequest struct {
	Name *string `json:"name" form:"name"`
	Year *int    `json:"year" form:"year"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:cohort"`

	ID int `json:"id" bun:"-"`

	Name *string `json:"name"       bun:"name"`
	Year *int    `json:"year"       bun:"year"`

	CreatedAt time.Time `json:"-"          bun:"created_at"`
	CreatedBy int       `json:"-"          bun:"created_by"`
}

type UpdateRequest struct {
	ID   int     `json:"id" form:"id"`
	Name *string `json:"name" form:"name"`
	Year *int    `json:"year" form:"year"`
}
