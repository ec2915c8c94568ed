package leave

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"pointage/backend/foundation/web"
	"pointage/backend/internal/auth"
	"pointage/backend/internal/entity"
	"pointage/backend/internal/pkg/repository/postgresql"
	"pointage/backend/internal/repository/postgres"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func validLeaveType(t string) bool {
	switch t {
	case entity.LeaveTypeLeave, entity.LeaveTypeSick, entity.LeaveTypeTravel:
		return true
	}
	return false
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Leave, error) {
	var detail entity.Leave

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Leave{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return detail, err
}

// Create registers a validated leave and applies its side effects in one
// transaction: the badge is deactivated until the leave ends, and a present
// punch is synthesized for every weekday in the interval.
func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.Leave, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return entity.Leave{}, err
	}

	if err := r.ValidateStruct(&request, "UserID", "StartDate", "EndDate", "Type", "Reason"); err != nil {
		return entity.Leave{}, err
	}

	start, end, err := parseInterval(*request.StartDate, *request.EndDate)
	if err != nil {
		return entity.Leave{}, err
	}
	if !validLeaveType(*request.Type) {
		return entity.Leave{}, web.NewRequestError(errors.Errorf("type must be %s, %s or %s",
			entity.LeaveTypeLeave, entity.LeaveTypeSick, entity.LeaveTypeTravel), http.StatusBadRequest)
	}

	var user entity.User
	err = r.NewSelect().Model(&user).Where("id = ? AND deleted_at IS NULL", *request.UserID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Leave{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Leave{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	overlap, err := r.NewSelect().Table("leaves").
		Where("user_id = ? AND status = ? AND deleted_at IS NULL AND start_date <= ? AND end_date >= ?",
			*request.UserID, entity.LeaveStatusValidated,
			end.Format(entity.WorkDayFormat), start.Format(entity.WorkDayFormat)).
		Exists(ctx)
	if err != nil {
		return entity.Leave{}, web.NewRequestError(errors.Wrap(err, "checking leave overlap"), http.StatusInternalServerError)
	}
	if overlap {
		return entity.Leave{}, web.NewRequestError(errors.New("a validated leave already exists for this interval"), http.StatusUnprocessableEntity)
	}

	status := entity.LeaveStatusValidated
	detail := entity.Leave{
		UserID:      request.UserID,
		StartDate:   start,
		EndDate:     end,
		Type:        request.Type,
		Reason:      request.Reason,
		Status:      &status,
		ValidatorID: &claims.UserId,
	}
	detail.CreatedAt = time.Now()
	detail.CreatedBy = &claims.UserId

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&detail).Returning("id").Exec(ctx, &detail.ID); err != nil {
			return errors.Wrap(err, "creating leave")
		}
		if err := deactivateCard(ctx, tx, *request.UserID, end, claims.UserId); err != nil {
			return err
		}
		return createLeavePunches(ctx, tx, detail, claims.UserId)
	})
	if err != nil {
		return entity.Leave{}, web.NewRequestError(errors.Wrap(err, "applying leave"), http.StatusInternalServerError)
	}

	r.AppendJournal(ctx, &claims.UserId, "leave.create", map[string]interface{}{
		"leave_id": detail.ID,
		"user_id":  *request.UserID,
		"type":     *request.Type,
	}, entity.JournalStatusSuccess)

	return detail, nil
}

// Update reverses the previous synthetic effects and reapplies them with the
// new interval, all inside one transaction.
func (r Repository) Update(ctx context.Context, request UpdateRequest) (entity.Leave, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return entity.Leave{}, err
	}

	if err := r.ValidateStruct(&request, "ID", "StartDate", "EndDate", "Type", "Reason"); err != nil {
		return entity.Leave{}, err
	}

	start, end, err := parseInterval(*request.StartDate, *request.EndDate)
	if err != nil {
		return entity.Leave{}, err
	}
	if !validLeaveType(*request.Type) {
		return entity.Leave{}, web.NewRequestError(errors.Errorf("type must be %s, %s or %s",
			entity.LeaveTypeLeave, entity.LeaveTypeSick, entity.LeaveTypeTravel), http.StatusBadRequest)
	}

	detail, err := r.GetById(ctx, request.ID)
	if err != nil {
		return entity.Leave{}, err
	}

	detail.StartDate = start
	detail.EndDate = end
	detail.Type = request.Type
	detail.Reason = request.Reason

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// The dates may have moved: drop every prior synthetic day first.
		if err := deleteLeavePunches(ctx, tx, detail.ID); err != nil {
			return err
		}
		if err := reactivateCard(ctx, tx, *detail.UserID, claims.UserId); err != nil {
			return err
		}

		q := tx.NewUpdate().Table("leaves").Where("deleted_at IS NULL AND id = ?", detail.ID)
		q.Set("start_date = ?", start.Format(entity.WorkDayFormat))
		q.Set("end_date = ?", end.Format(entity.WorkDayFormat))
		q.Set("type = ?", request.Type)
		q.Set("reason = ?", request.Reason)
		q.Set("updated_at = ?", time.Now())
		q.Set("updated_by = ?", claims.UserId)
		if _, err := q.Exec(ctx); err != nil {
			return errors.Wrap(err, "updating leave")
		}

		if err := deactivateCard(ctx, tx, *detail.UserID, end, claims.UserId); err != nil {
			return err
		}
		return createLeavePunches(ctx, tx, detail, claims.UserId)
	})
	if err != nil {
		return entity.Leave{}, web.NewRequestError(errors.Wrap(err, "reapplying leave"), http.StatusInternalServerError)
	}

	r.AppendJournal(ctx, &claims.UserId, "leave.update", map[string]interface{}{
		"leave_id": detail.ID,
		"type":     *request.Type,
	}, entity.JournalStatusSuccess)

	return detail, nil
}

// Delete removes the synthetic punches, reactivates the badge and
// soft-deletes the leave, in one transaction.
func (r Repository) Delete(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	detail, err := r.GetById(ctx, id)
	if err != nil {
		return err
	}

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := deleteLeavePunches(ctx, tx, detail.ID); err != nil {
			return err
		}
		if err := reactivateCard(ctx, tx, *detail.UserID, claims.UserId); err != nil {
			return err
		}

		q := tx.NewUpdate().Table("leaves").Where("deleted_at IS NULL AND id = ?", id)
		q.Set("deleted_at = ?", time.Now())
		q.Set("deleted_by = ?", claims.UserId)
		if _, err := q.Exec(ctx); err != nil {
			return errors.Wrap(err, "deleting leave")
		}
		return nil
	})
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "reversing leave"), http.StatusInternalServerError)
	}

	r.AppendJournal(ctx, &claims.UserId, "leave.delete", map[string]interface{}{
		"leave_id": id,
	}, entity.JournalStatusSuccess)

	return nil
}

func parseInterval(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(entity.WorkDayFormat, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, web.NewRequestError(errors.Wrap(err, "start_date parse"), http.StatusBadRequest)
	}
	end, err := time.Parse(entity.WorkDayFormat, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, web.NewRequestError(errors.Wrap(err, "end_date parse"), http.StatusBadRequest)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, web.NewRequestError(errors.New("end_date must not be before start_date"), http.StatusBadRequest)
	}
	return start, end, nil
}

func deactivateCard(ctx context.Context, tx bun.Tx, userID int, until time.Time, actorID int) error {
	q := tx.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", userID)
	q.Set("status = ?", entity.UserStatusInactive)
	q.Set("reactivation_date = ?", until.Format(entity.WorkDayFormat))
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", actorID)

	if _, err := q.Exec(ctx); err != nil {
		return errors.Wrap(err, "deactivating card")
	}
	return nil
}

func reactivateCard(ctx context.Context, tx bun.Tx, userID int, actorID int) error {
	q := tx.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", userID)
	q.Set("status = ?", entity.UserStatusActive)
	q.Set("reactivation_date = NULL")
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", actorID)

	if _, err := q.Exec(ctx); err != nil {
		return errors.Wrap(err, "reactivating card")
	}
	return nil
}

// createLeavePunches upserts the synthetic present punch for every weekday
// of the leave. A row already created by a scan or the absence batch is
// overwritten: the validated leave is the stronger fact for those days.
func createLeavePunches(ctx context.Context, tx bun.Tx, detail entity.Leave, actorID int) error {
	now := time.Now()

	for _, day := range Workdays(detail.StartDate, detail.EndDate) {
		arrival := time.Date(day.Year(), day.Month(), day.Day(), syntheticArrivalHour, 0, 0, 0, day.Location())
		departure := time.Date(day.Year(), day.Month(), day.Day(), syntheticDepartureHour, 0, 0, 0, day.Location())

		punch := entity.Punch{
			UserID:  detail.UserID,
			WorkDay: day.Format(entity.WorkDayFormat),
			Confirmed: entity.PunchTimes{
				FirstIn: &arrival,
				LastOut: &departure,
			},
			Present: true,
			LeaveID: &detail.ID,
		}
		punch.CreatedAt = now
		punch.CreatedBy = &actorID

		_, err := tx.NewInsert().Model(&punch).
			On("CONFLICT (user_id, work_day) DO UPDATE").
			Set("confirmed_first_in = EXCLUDED.confirmed_first_in").
			Set("confirmed_last_out = EXCLUDED.confirmed_last_out").
			Set("confirmed_late = false").
			Set("candidate_first_in = NULL").
			Set("candidate_last_out = NULL").
			Set("candidate_late = false").
			Set("present = true").
			Set("pending = false").
			Set("rejected = false").
			Set("leave_id = EXCLUDED.leave_id").
			Set("updated_at = EXCLUDED.created_at").
			Set("updated_by = EXCLUDED.created_by").
			Exec(ctx)
		if err != nil {
			return errors.Wrapf(err, "synthesizing punch for %s", punch.WorkDay)
		}
	}

	return nil
}

func deleteLeavePunches(ctx context.Context, tx bun.Tx, leaveID int) error {
	if _, err := tx.NewDelete().Table("punches").Where("leave_id = ?", leaveID).Exec(ctx); err != nil {
		return errors.Wrap(err, "deleting synthetic punches")
	}
	return nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				l.deleted_at IS NULL
			`

	if filter.UserID != nil {
		whereQuery += fmt.Sprintf(" AND l.user_id = %d", *filter.UserID)
	}

	orderQuery := "ORDER BY l.start_date desc, l.id desc"

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
			l.id,
			l.user_id,
			trim(concat(u.first_name, ' ', u.last_name)),
			l.start_date,
			l.end_date,
			l.type,
			l.reason,
			l.status,
			l.validator_id,
			trim(concat(v.first_name, ' ', v.last_name))
		FROM leaves l
		LEFT JOIN users u ON l.user_id = u.id
		LEFT JOIN users v ON l.validator_id = v.id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	list, err := r.scanRows(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(l.id)
		FROM leaves l
		%s
	`, whereQuery)

	count := 0
	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting leaves"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetCurrent lists the leaves covering today.
func (r Repository) GetCurrent(ctx context.Context) ([]GetListResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(entity.WorkDayFormat)

	query := fmt.Sprintf(`
		SELECT
			l.id,
			l.user_id,
			trim(concat(u.first_name, ' ', u.last_name)),
			l.start_date,
			l.end_date,
			l.type,
			l.reason,
			l.status,
			l.validator_id,
			trim(concat(v.first_name, ' ', v.last_name))
		FROM leaves l
		LEFT JOIN users u ON l.user_id = u.id
		LEFT JOIN users v ON l.validator_id = v.id
		WHERE
			l.deleted_at IS NULL
			AND l.status = '%s'
			AND l.start_date <= '%s'
			AND l.end_date >= '%s'
		ORDER BY l.start_date desc
	`, entity.LeaveStatusValidated, today, today)

	return r.scanRows(ctx, query)
}

func (r Repository) scanRows(ctx context.Context, query string) ([]GetListResponse, error) {
	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting leaves"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var startString, endString string

		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.FullName,
			&startString,
			&endString,
			&detail.Type,
			&detail.Reason,
			&detail.Status,
			&detail.ValidatorID,
			&detail.Validator); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning leave list"), http.StatusInternalServerError)
		}

		startDate, err := date.ParseDate(startString)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "converting start_date to date.Date"), http.StatusInternalServerError)
		}
		detail.StartDate = &startDate

		endDate, err := date.ParseDate(endString)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "converting end_date to date.Date"), http.StatusInternalServerError)
		}
		detail.EndDate = &endDate

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading leave rows"), http.StatusInternalServerError)
	}

	return list, nil
}
