package punch

import (
	"context"

	"pointage/backend/internal/entity"
	"pointage/backend/internal/repository/postgres/punch"
)

type Punch interface {
	Scan(ctx context.Context, request punch.ScanRequest) (punch.ScanResponse, error)
	Validate(ctx context.Context, id int, request punch.ValidateRequest) (entity.Punch, error)
	GenerateAbsences(ctx context.Context, request punch.GenerateRequest) (punch.GenerateResponse, error)

	GetList(ctx context.Context, filter punch.Filter) ([]punch.GetListResponse, int, error)
	GetHistory(ctx context.Context, filter punch.HistoryFilter) ([]punch.GetListResponse, int, error)
	FilterPresence(ctx context.Context, filter punch.PresenceFilter) (punch.PresenceResponse, error)
	GetPresenceByPeriod(ctx context.Context, filter punch.PresenceFilter) (punch.PresenceResponse, error)

	UpdateAll(ctx context.Context, request punch.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}

type User interface {
	ReactivateDue(ctx context.Context) (int, error)
}
