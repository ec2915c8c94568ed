package journal

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"pointage/backend/foundation/web"
	"pointage/backend/internal/auth"
	"pointage/backend/internal/pkg/repository/postgresql"
	"pointage/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

// Repository reads the audit journal. Entries are only ever appended, from
// the repositories that perform the audited actions.
type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := "WHERE true"

	if filter.UserID != nil {
		whereQuery += fmt.Sprintf(" AND j.user_id = %d", *filter.UserID)
	}
	if filter.Action != nil {
		whereQuery += fmt.Sprintf(" AND j.action = '%s'", *filter.Action)
	}
	if filter.Status != nil {
		whereQuery += fmt.Sprintf(" AND j.status = '%s'", *filter.Status)
	}
	if filter.Debut != nil {
		whereQuery += fmt.Sprintf(" AND j.created_at >= '%s'", *filter.Debut)
	}
	if filter.Fin != nil {
		whereQuery += fmt.Sprintf(" AND j.created_at < date '%s' + interval '1 day'", *filter.Fin)
	}

	orderQuery := "ORDER BY j.created_at desc, j.id desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			j.id,
			j.user_id,
			trim(concat(u.first_name, ' ', u.last_name)),
			j.action,
			j.details,
			j.status,
			j.created_at
		FROM journals j
		LEFT JOIN users u ON j.user_id = u.id

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusBadRequest)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting journals"), http.StatusBadRequest)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.FullName,
			&detail.Action,
			&detail.Details,
			&detail.Status,
			&detail.CreatedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning journal list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(j.id)
		FROM journals j
			%s
	`, whereQuery)

	count := 0
	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning journal count"), http.StatusBadRequest)
	}

	return list, count, nil
}
