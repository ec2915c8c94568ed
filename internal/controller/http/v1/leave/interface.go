package leave

import (
	"context"

	"pointage/backend/internal/entity"
	"pointage/backend/internal/repository/postgres/leave"
)

type Leave interface {
	GetList(ctx context.Context, filter leave.Filter) ([]leave.GetListResponse, int, error)
	GetCurrent(ctx context.Context) ([]leave.GetListResponse, error)

	Create(ctx context.Context, request leave.CreateRequest) (entity.Leave, error)
	Update(ctx context.Context, request leave.UpdateRequest) (entity.Leave, error)
	Delete(ctx context.Context, id int) error
}
