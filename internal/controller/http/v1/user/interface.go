package user

import (
	"context"

	"pointage/backend/internal/repository/postgres/user"
)

type User interface {
	GetList(ctx context.Context, filter user.Filter) ([]user.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (user.GetDetailByIdResponse, error)
	GetByCardID(ctx context.Context, cardID string) (user.VerifyCardResponse, error)

	Create(ctx context.Context, request user.CreateRequest) (user.CreateResponse, error)
	UpdateAll(ctx context.Context, request user.UpdateRequest) error
	UpdateColumns(ctx context.Context, request user.UpdateRequest) error
	AssignCard(ctx context.Context, request user.AssignCardRequest) error
	SetStatus(ctx context.Context, request user.SetStatusRequest) error
	Delete(ctx context.Context, id int) error

	ExportList(ctx context.Context, filter user.Filter) ([]user.ExportRow, error)
	Import(ctx context.Context, rows []user.ImportRow) (user.ImportResponse, error)
}
