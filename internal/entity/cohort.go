package entity

import (
	"github.com/uptrace/bun"
)

// Cohort groups learners by intake; employees have no cohort.
type Cohort struct {
	bun.BaseModel `bun:"table:cohort"`

	BasicEntity
	Name *string `json:"name"     bun:"name"`
	Year *int    `json:"year"     bun:"year"`
}
