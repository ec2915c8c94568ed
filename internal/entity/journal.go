package entity

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

const (
	JournalStatusSuccess = "success"
	JournalStatusError   = "error"
)

// Journal is the append-only audit trail. Rows are never updated or deleted.
type Journal struct {
	bun.BaseModel `bun:"table:journals"`

	ID        int             `json:"id"         bun:"id,pk,autoincrement"`
	UserID    *int            `json:"user_id"    bun:"user_id"`
	Action    string          `json:"action"     bun:"action"`
	Details   json.RawMessage `json:"details"    bun:"details,type:jsonb"`
	Status    string          `json:"status"     bun:"status"`
	CreatedAt time.Time       `json:"created_at" bun:"created_at"`
}
