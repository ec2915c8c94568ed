package leave

import (
	"github.com/Azure/go-autorest/autorest/date"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	UserID *int
}

type CreateRequest struct {
	UserID    *int    `json:"user_id" form:"user_id"`
	StartDate *string `json:"start_date" form:"start_date"`
	EndDate   *string `json:"end_date" form:"end_date"`
	Type      *string `json:"type" form:"type"`
	Reason    *string `json:"reason" form:"reason"`
}

type UpdateRequest struct {
	ID        int     `json:"id" form:"id"`
	StartDate *string `json:"start_date" form:"start_date"`
	EndDate   *string `json:"end_date" form:"end_date"`
	Type      *string `json:"type" form:"type"`
	Reason    *string `json:"reason" form:"reason"`
}

type GetListResponse struct {
	ID          int        `json:"id"`
	UserID      *int       `json:"user_id"`
	FullName    *string    `json:"full_name"`
	StartDate   *date.Date `json:"start_date"`
	EndDate     *date.Date `json:"end_date"`
	Type        *string    `json:"type"`
	Reason      *string    `json:"reason"`
	Status      *string    `json:"status"`
	ValidatorID *int       `json:"validator_id"`
	Validator   *string    `json:"validator"`
}
