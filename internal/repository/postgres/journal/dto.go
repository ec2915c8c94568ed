package journal

import (
	"encoding/json"
	"time"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	UserID *int
	Action *string
	Status *string
	Debut  *string
	Fin    *string
}

type GetListResponse struct {
	ID        int             `json:"id"`
	UserID    *int            `json:"user_id"`
	FullName  *string         `json:"full_name"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
