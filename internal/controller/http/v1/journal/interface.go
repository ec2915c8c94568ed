package journal

import (
	"context"

	"pointage/backend/internal/repository/postgres/journal"
)

type Journal interface {
	GetList(ctx context.Context, filter journal.Filter) ([]journal.GetListResponse, int, error)
}
