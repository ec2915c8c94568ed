package cohort

import (
	"context"

	"pointage/backend/internal/repository/postgres/cohort"
)

type Cohort interface {
	GetList(ctx context.Context, filter cohort.Filter) ([]cohort.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (cohort.GetDetailByIdResponse, error)
	Create(ctx context.Context, request cohort.CreateRequest) (cohort.CreateResponse, error)
	UpdateAll(ctx context.Context, request cohort.UpdateRequest) error
	UpdateColumns(ctx context.Context, request cohort.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}
