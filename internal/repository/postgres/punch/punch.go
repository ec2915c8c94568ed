package punch

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
	"github.com/bsm/redislock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Repository struct {
	*postgresql.Database

	locker *redislock.Client
}

func NewRepository(database *postgresql.Database, locker *redislock.Client) *Repository {
	return &Repository{Database: database, locker: locker}
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Punch, error) {
	var detail entity.Punch

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Punch{}, web.NewRequestError(postgres.ErrPunchNotFound, http.StatusNotFound)
	}

	return detail, err
}

// lockDay serializes scans for one user and day across gates. The lock is
// best effort: if redis is down the unique (user_id, work_day) index still
// keeps the rows consistent, so we proceed rather than refuse the badge.
func (r Repository) lockDay(ctx context.Context, userID int, day string) func() {
	if r.locker == nil {
		return func() {}
	}

	lock, err := r.locker.Obtain(ctx, fmt.Sprintf("punch:%d:%s", userID, day), 10*time.Second, nil)
	if err != nil {
		web.Logger().WithFields(logrus.Fields{
			"user_id":  userID,
			"work_day": day,
		}).Warn("punch: could not obtain redis lock; proceeding: " + err.Error())
		return func() {}
	}

	return func() { _ = lock.Release(ctx) }
}

// Scan processes one badge read. The resulting row is always pending: a
// supervisor has to confirm it before it counts as presence.
func (r Repository) Scan(ctx context.Context, request ScanRequest) (ScanResponse, error) {
	if err := r.ValidateStruct(&request, "CardID"); err != nil {
		r.AppendJournal(ctx, nil, "punch.scan", map[string]interface{}{"error": "card_id required"}, entity.JournalStatusError)
		return ScanResponse{}, err
	}

	var user entity.User
	err := r.NewSelect().Model(&user).
		Where("card_id = ? AND status = ? AND deleted_at IS NULL", *request.CardID, entity.UserStatusActive).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		r.AppendJournal(ctx, nil, "punch.scan", map[string]interface{}{
			"card_id": *request.CardID,
			"error":   postgres.ErrCardNotFound.Error(),
		}, entity.JournalStatusError)
		return ScanResponse{}, web.NewRequestError(postgres.ErrCardNotFound, http.StatusForbidden)
	}
	if err != nil {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "selecting badge owner"), http.StatusInternalServerError)
	}

	now := time.Now()
	today := now.Format(entity.WorkDayFormat)

	// Only a validated leave blocks the badge.
	onLeave, err := r.NewSelect().Table("leaves").
		Where("user_id = ? AND status = ? AND deleted_at IS NULL AND start_date <= ? AND end_date >= ?",
			user.ID, entity.LeaveStatusValidated, today, today).
		Exists(ctx)
	if err != nil {
		return ScanResponse{}, web.NewRequestError(errors.Wrap(err, "checking leave overlap"), http.StatusInternalServerError)
	}
	if onLeave {
		r.AppendJournal(ctx, &user.ID, "punch.scan", map[string]interface{}{
			"user_id": user.ID,
			"error":   postgres.ErrUserOnLeave.Error(),
		}, entity.JournalStatusError)
		return ScanResponse{}, web.NewRequestError(postgres.ErrUserOnLeave, http.StatusForbidden)
	}

	release := r.lockDay(ctx, user.ID, today)
	defer release()

	punch, kind, err := r.applyScan(ctx, user.ID, today, now)
	if err != nil {
		return ScanResponse{}, err
	}

	r.AppendJournal(ctx, &user.ID, "punch.scan", map[string]interface{}{
		"user_id":  user.ID,
		"punch_id": punch.ID,
		"kind":     kind,
	}, entity.JournalStatusSuccess)

	return ScanResponse{User: user, Punch: punch, Kind: kind}, nil
}

// applyScan loads or creates the (user, day) row and records the read. Two
// near simultaneous first scans race on the unique index: the loser's insert
// affects no rows and it retries through the update path.
func (r Repository) applyScan(ctx context.Context, userID int, day string, now time.Time) (entity.Punch, ScanKind, error) {
	var punch entity.Punch

	err := r.NewSelect().Model(&punch).
		Where("user_id = ? AND work_day = ? AND deleted_at IS NULL", userID, day).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		punch = entity.Punch{
			UserID:  &userID,
			WorkDay: day,
		}
		punch.CreatedAt = now
		kind := Apply(&punch, now)

		res, err := r.NewInsert().Model(&punch).
			On("CONFLICT (user_id, work_day) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return entity.Punch{}, "", web.NewRequestError(errors.Wrap(err, "creating punch"), http.StatusInternalServerError)
		}
		if rows, _ := res.RowsAffected(); rows > 0 {
			if err := r.NewSelect().Model(&punch).
				Where("user_id = ? AND work_day = ?", userID, day).
				Scan(ctx); err != nil {
				return entity.Punch{}, "", web.NewRequestError(errors.Wrap(err, "reloading punch"), http.StatusInternalServerError)
			}
			return punch, kind, nil
		}

		// Lost the race: another gate created the row. Reload and update.
		if err := r.NewSelect().Model(&punch).
			Where("user_id = ? AND work_day = ? AND deleted_at IS NULL", userID, day).
			Scan(ctx); err != nil {
			return entity.Punch{}, "", web.NewRequestError(errors.Wrap(err, "reloading punch after conflict"), http.StatusInternalServerError)
		}
	} else if err != nil {
		return entity.Punch{}, "", web.NewRequestError(errors.Wrap(err, "selecting punch"), http.StatusInternalServerError)
	}

	kind := Apply(&punch, now)

	q := r.NewUpdate().Table("punches").Where("id = ?", punch.ID)
	q.Set("candidate_first_in = ?", punch.Candidate.FirstIn)
	q.Set("candidate_last_out = ?", punch.Candidate.LastOut)
	q.Set("candidate_late = ?", punch.Candidate.Late)
	q.Set("present = ?", punch.Present)
	q.Set("pending = ?", punch.Pending)
	q.Set("rejected = ?", punch.Rejected)
	q.Set("updated_at = ?", now)

	if _, err := q.Exec(ctx); err != nil {
		return entity.Punch{}, "", web.NewRequestError(errors.Wrap(err, "updating punch"), http.StatusInternalServerError)
	}

	return punch, kind, nil
}

// Validate lets a supervisor confirm or reject a pending punch.
func (r Repository) Validate(ctx context.Context, id int, request ValidateRequest) (entity.Punch, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleSupervisor, auth.RoleAdmin)
	if err != nil {
		return entity.Punch{}, err
	}

	if err := r.ValidateStruct(&request, "Action"); err != nil {
		return entity.Punch{}, err
	}
	action := *request.Action
	if action != ActionConfirm && action != ActionReject {
		return entity.Punch{}, web.NewRequestError(postgres.ErrValidationFailed, http.StatusBadRequest)
	}

	var punch entity.Punch
	err = r.NewSelect().Model(&punch).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		r.AppendJournal(ctx, &claims.UserId, "punch.validate", map[string]interface{}{
			"punch_id": id,
			"error":    postgres.ErrPunchNotFound.Error(),
		}, entity.JournalStatusError)
		return entity.Punch{}, web.NewRequestError(postgres.ErrPunchNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Punch{}, web.NewRequestError(errors.Wrap(err, "selecting punch"), http.StatusInternalServerError)
	}

	switch action {
	case ActionConfirm:
		err = Confirm(&punch, claims.UserId)
	case ActionReject:
		err = Reject(&punch, claims.UserId)
	}
	if err != nil {
		r.AppendJournal(ctx, &claims.UserId, "punch.validate", map[string]interface{}{
			"punch_id": id,
			"error":    err.Error(),
		}, entity.JournalStatusError)
		return entity.Punch{}, web.NewRequestError(err, http.StatusConflict)
	}

	now := time.Now()

	q := r.NewUpdate().Table("punches").Where("deleted_at IS NULL AND id = ?", id)
	q.Set("candidate_first_in = ?", punch.Candidate.FirstIn)
	q.Set("candidate_last_out = ?", punch.Candidate.LastOut)
	q.Set("candidate_late = ?", punch.Candidate.Late)
	q.Set("confirmed_first_in = ?", punch.Confirmed.FirstIn)
	q.Set("confirmed_last_out = ?", punch.Confirmed.LastOut)
	q.Set("confirmed_late = ?", punch.Confirmed.Late)
	q.Set("present = ?", punch.Present)
	q.Set("pending = ?", punch.Pending)
	q.Set("rejected = ?", punch.Rejected)
	q.Set("validator_id = ?", punch.ValidatorID)
	q.Set("updated_at = ?", now)
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return entity.Punch{}, web.NewRequestError(errors.Wrap(err, "updating punch"), http.StatusInternalServerError)
	}

	r.AppendJournal(ctx, &claims.UserId, "punch.validate", map[string]interface{}{
		"punch_id": id,
		"action":   action,
	}, entity.JournalStatusSuccess)

	return punch, nil
}

// GenerateAbsences seeds the default absent row for every active user
// without a validated leave covering the day. Safe to run repeatedly: rows
// already created, by this batch or by a scan, are left untouched.
func (r Repository) GenerateAbsences(ctx context.Context, request GenerateRequest) (GenerateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return GenerateResponse{}, err
	}

	day := time.Now().Format(entity.WorkDayFormat)
	if request.Date != nil {
		parsed, err := time.Parse(entity.WorkDayFormat, *request.Date)
		if err != nil {
			return GenerateResponse{}, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		day = parsed.Format(entity.WorkDayFormat)
	}

	query := `
		INSERT INTO punches (user_id, work_day, present, pending, rejected, candidate_late, confirmed_late, created_at, created_by)
		SELECT u.id, ?, false, false, false, false, false, now(), ?
		FROM users u
		WHERE u.deleted_at IS NULL
		  AND u.status = ?
		  AND NOT EXISTS (
			SELECT 1 FROM leaves l
			WHERE l.user_id = u.id
			  AND l.deleted_at IS NULL
			  AND l.status = ?
			  AND l.start_date <= ?
			  AND l.end_date >= ?
		  )
		ON CONFLICT (user_id, work_day) DO NOTHING
	`

	res, err := r.ExecContext(ctx, query,
		day, claims.UserId, entity.UserStatusActive, entity.LeaveStatusValidated, day, day)
	if err != nil {
		return GenerateResponse{}, web.NewRequestError(errors.Wrap(err, "generating default absences"), http.StatusInternalServerError)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return GenerateResponse{}, web.NewRequestError(errors.Wrap(err, "counting generated absences"), http.StatusInternalServerError)
	}

	r.AppendJournal(ctx, &claims.UserId, "punch.generate_absences", map[string]interface{}{
		"date":  day,
		"count": count,
	}, entity.JournalStatusSuccess)

	return GenerateResponse{Date: day, Count: int(count)}, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				p.deleted_at IS NULL
			`

	if filter.UserID != nil {
		whereQuery += fmt.Sprintf(" AND p.user_id = %d", *filter.UserID)
	}
	if filter.Pending != nil {
		if *filter.Pending {
			whereQuery += " AND p.pending = true"
		} else {
			whereQuery += " AND p.pending = false"
		}
	}

	if filter.Date != nil {
		parsed, err := time.Parse(entity.WorkDayFormat, *filter.Date)
		if err != nil {
			return []GetListResponse{}, 0, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND p.work_day = '%s'", parsed.Format(entity.WorkDayFormat))
	} else {
		today := time.Now().Format(entity.WorkDayFormat)
		whereQuery += fmt.Sprintf(" AND p.work_day = '%s'", today)
	}

	orderQuery := "ORDER BY p.work_day desc, p.id desc"

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

	query := fmt.Sprintf(`%s %s %s %s %s`, listSelect, whereQuery, orderQuery, limitQuery, offsetQuery)

	list, err := r.scanRows(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(p.id)
		FROM punches p
		LEFT JOIN users u ON p.user_id = u.id
		LEFT JOIN department d ON u.department_id = d.id
		LEFT JOIN cohort c ON u.cohort_id = c.id
		%s
	`, whereQuery)

	count := 0
	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting punches"), http.StatusInternalServerError)
	}

	return list, count, nil
}

const listSelect = `
		SELECT
			p.id,
			p.user_id,
			u.employee_id,
			trim(concat(u.first_name, ' ', u.last_name)),
			u.department_id,
			d.name,
			u.cohort_id,
			c.name,
			p.work_day,
			p.confirmed_first_in,
			p.confirmed_last_out,
			p.confirmed_late,
			p.present,
			p.pending,
			p.rejected,
			p.leave_id
		FROM punches p
		LEFT JOIN users u ON p.user_id = u.id
		LEFT JOIN department d ON u.department_id = d.id
		LEFT JOIN cohort c ON u.cohort_id = c.id
`

func (r Repository) scanRows(ctx context.Context, query string) ([]GetListResponse, error) {
	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting punches"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var workDayString string

		if err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.EmployeeID,
			&detail.FullName,
			&detail.DepartmentID,
			&detail.Department,
			&detail.CohortID,
			&detail.Cohort,
			&workDayString,
			&detail.FirstIn,
			&detail.LastOut,
			&detail.Late,
			&detail.Present,
			&detail.Pending,
			&detail.Rejected,
			&detail.LeaveID); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning punch list"), http.StatusInternalServerError)
		}

		workDay, err := date.ParseDate(workDayString)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusInternalServerError)
		}
		detail.WorkDay = &workDay

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading punch rows"), http.StatusInternalServerError)
	}

	return list, nil
}

// GetHistory lists punches over a required inclusive [start, end] range.
func (r Repository) GetHistory(ctx context.Context, filter HistoryFilter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleSupervisor, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	if filter.Start == nil || filter.End == nil {
		return nil, 0, web.NewRequestError(errors.New("debut and fin are required"), http.StatusBadRequest)
	}
	start, err := time.Parse(entity.WorkDayFormat, *filter.Start)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "debut parse"), http.StatusBadRequest)
	}
	end, err := time.Parse(entity.WorkDayFormat, *filter.End)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "fin parse"), http.StatusBadRequest)
	}
	if end.Before(start) {
		return nil, 0, web.NewRequestError(errors.New("fin must not be before debut"), http.StatusBadRequest)
	}

	whereQuery := fmt.Sprintf(`
			WHERE
				p.deleted_at IS NULL
				AND p.work_day BETWEEN '%s' AND '%s'
			`, start.Format(entity.WorkDayFormat), end.Format(entity.WorkDayFormat))

	if filter.UserID != nil {
		whereQuery += fmt.Sprintf(" AND p.user_id = %d", *filter.UserID)
	}
	if filter.Kind != nil {
		switch *filter.Kind {
		case HistoryKindLate:
			whereQuery += " AND p.confirmed_late = true"
		case HistoryKindAbsence:
			whereQuery += " AND p.present = false"
		default:
			return nil, 0, web.NewRequestError(errors.Errorf("type must be %s or %s", HistoryKindLate, HistoryKindAbsence), http.StatusBadRequest)
		}
	}

	orderQuery := "ORDER BY p.work_day desc, p.id desc"

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

	query := fmt.Sprintf(`%s %s %s %s %s`, listSelect, whereQuery, orderQuery, limitQuery, offsetQuery)

	list, err := r.scanRows(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(p.id)
		FROM punches p
		LEFT JOIN users u ON p.user_id = u.id
		LEFT JOIN department d ON u.department_id = d.id
		LEFT JOIN cohort c ON u.cohort_id = c.id
		%s
	`, whereQuery)

	count := 0
	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting history"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// FilterPresence returns the matching rows and their statistics summary.
// Statistics cover every matching row, not just the requested page.
func (r Repository) FilterPresence(ctx context.Context, filter PresenceFilter) (PresenceResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleSupervisor, auth.RoleAdmin)
	if err != nil {
		return PresenceResponse{}, err
	}

	if filter.StartDate == nil || filter.EndDate == nil {
		return PresenceResponse{}, web.NewRequestError(errors.New("date_debut and date_fin are required"), http.StatusBadRequest)
	}
	start, err := time.Parse(entity.WorkDayFormat, *filter.StartDate)
	if err != nil {
		return PresenceResponse{}, web.NewRequestError(errors.Wrap(err, "date_debut parse"), http.StatusBadRequest)
	}
	end, err := time.Parse(entity.WorkDayFormat, *filter.EndDate)
	if err != nil {
		return PresenceResponse{}, web.NewRequestError(errors.Wrap(err, "date_fin parse"), http.StatusBadRequest)
	}
	if end.Before(start) {
		return PresenceResponse{}, web.NewRequestError(errors.New("date_fin must not be before date_debut"), http.StatusBadRequest)
	}

	return r.presence(ctx, start, end, filter)
}

// GetPresenceByPeriod is FilterPresence with the range derived from a
// reference day and a period shorthand (day, ISO week, calendar month).
func (r Repository) GetPresenceByPeriod(ctx context.Context, filter PresenceFilter) (PresenceResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleSupervisor, auth.RoleAdmin)
	if err != nil {
		return PresenceResponse{}, err
	}

	if filter.Date == nil || filter.Period == nil {
		return PresenceResponse{}, web.NewRequestError(errors.New("date and periode are required"), http.StatusBadRequest)
	}
	day, err := time.Parse(entity.WorkDayFormat, *filter.Date)
	if err != nil {
		return PresenceResponse{}, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
	}

	start, end, err := PeriodRange(day, *filter.Period)
	if err != nil {
		return PresenceResponse{}, err
	}

	return r.presence(ctx, start, end, filter)
}

func (r Repository) presence(ctx context.Context, start, end time.Time, filter PresenceFilter) (PresenceResponse, error) {
	whereQuery := fmt.Sprintf(`
			WHERE
				p.deleted_at IS NULL
				AND p.work_day BETWEEN '%s' AND '%s'
			`, start.Format(entity.WorkDayFormat), end.Format(entity.WorkDayFormat))

	if filter.CohortID != nil {
		whereQuery += fmt.Sprintf(" AND u.cohort_id = %d", *filter.CohortID)
	}
	if filter.DepartmentID != nil {
		whereQuery += fmt.Sprintf(" AND u.department_id = %d", *filter.DepartmentID)
	}
	if filter.UserKind != nil {
		if *filter.UserKind != entity.UserKindEmployee && *filter.UserKind != entity.UserKindLearner {
			return PresenceResponse{}, web.NewRequestError(errors.Errorf("type must be %s or %s", entity.UserKindLearner, entity.UserKindEmployee), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND u.kind = '%s'", *filter.UserKind)
	}
	if filter.Status != nil {
		switch *filter.Status {
		case StatusPresent:
			whereQuery += " AND p.present = true"
		case StatusAbsent:
			whereQuery += " AND p.present = false"
		case StatusLate:
			whereQuery += " AND p.confirmed_late = true"
		default:
			return PresenceResponse{}, web.NewRequestError(errors.Errorf("statut_presence must be %s, %s or %s", StatusPresent, StatusAbsent, StatusLate), http.StatusBadRequest)
		}
	}

	orderQuery := "ORDER BY p.work_day desc, p.id desc"

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

	query := fmt.Sprintf(`%s %s %s %s %s`, listSelect, whereQuery, orderQuery, limitQuery, offsetQuery)

	list, err := r.scanRows(ctx, query)
	if err != nil {
		return PresenceResponse{}, err
	}

	statsQuery := fmt.Sprintf(`
		SELECT
			count(p.id),
			count(*) FILTER (WHERE p.present),
			count(*) FILTER (WHERE NOT p.present),
			count(*) FILTER (WHERE p.confirmed_late)
		FROM punches p
		LEFT JOIN users u ON p.user_id = u.id
		%s
	`, whereQuery)

	var total, presents, absents, lates int
	if err := r.QueryRowContext(ctx, statsQuery).Scan(&total, &presents, &absents, &lates); err != nil {
		return PresenceResponse{}, web.NewRequestError(errors.Wrap(err, "computing presence statistics"), http.StatusInternalServerError)
	}

	return PresenceResponse{
		Results:    list,
		Statistics: BuildStatistics(total, presents, absents, lates),
	}, nil
}

// UpdateAll lets an administrator correct the confirmed value of a punch.
func (r Repository) UpdateAll(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	var punch entity.Punch
	err = r.NewSelect().Model(&punch).Where("id = ? AND deleted_at IS NULL", request.ID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(postgres.ErrPunchNotFound, http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting punch"), http.StatusInternalServerError)
	}

	q := r.NewUpdate().Table("punches").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.FirstIn != nil {
		q.Set("confirmed_first_in = ?", request.FirstIn)
	}
	if request.LastOut != nil {
		q.Set("confirmed_last_out = ?", request.LastOut)
	}
	if request.Late != nil {
		q.Set("confirmed_late = ?", request.Late)
	}
	if request.Present != nil {
		q.Set("present = ?", request.Present)
		if *request.Present {
			q.Set("pending = false")
			q.Set("rejected = false")
		}
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating punch"), http.StatusInternalServerError)
	}

	r.AppendJournal(ctx, &claims.UserId, "punch.update", map[string]interface{}{
		"punch_id": request.ID,
	}, entity.JournalStatusSuccess)

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "punches", id)
}
