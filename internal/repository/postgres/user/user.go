package user

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pointage/backend/foundation/web"
	"pointage/backend/internal/auth"
	"pointage/backend/internal/entity"
	"pointage/backend/internal/pkg/repository/postgresql"
	"pointage/backend/internal/repository/postgres"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetByEmployeeID(ctx context.Context, employeeID string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).Where("employee_id = ? AND deleted_at IS NULL", employeeID).Scan(ctx)
	if err != nil {
		return entity.User{}, &web.Error{
			Err:    errors.New("employee not found!"),
			Status: http.StatusUnauthorized,
		}
	}

	return detail, err
}

// GetByCardID resolves an active badge to its holder. Used by the reader
// endpoint that only checks whether a badge is recognized.
func (r Repository) GetByCardID(ctx context.Context, cardID string) (VerifyCardResponse, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).
		Where("card_id = ? AND status = ? AND deleted_at IS NULL", cardID, entity.UserStatusActive).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return VerifyCardResponse{}, web.NewRequestError(postgres.ErrCardNotFound, http.StatusForbidden)
	}
	if err != nil {
		return VerifyCardResponse{}, web.NewRequestError(errors.Wrap(err, "selecting user by card"), http.StatusInternalServerError)
	}

	return VerifyCardResponse{
		UserID:    detail.ID,
		FirstName: detail.FirstName,
		LastName:  detail.LastName,
		Kind:      detail.Kind,
		Status:    detail.Status,
	}, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleSupervisor, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				u.deleted_at IS NULL
			`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "", -1)

		whereQuery += fmt.Sprintf(` AND (
		u.employee_id ilike '%s' OR u.first_name ilike '%s' OR u.last_name ilike '%s')`,
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if filter.DepartmentID != nil {
		whereQuery += fmt.Sprintf(" AND u.department_id = %d", *filter.DepartmentID)
	}
	if filter.CohortID != nil {
		whereQuery += fmt.Sprintf(" AND u.cohort_id = %d", *filter.CohortID)
	}
	if filter.Kind != nil {
		whereQuery += fmt.Sprintf(" AND u.kind = '%s'", *filter.Kind)
	}
	if filter.Status != nil {
		whereQuery += fmt.Sprintf(" AND u.status = '%s'", *filter.Status)
	}

	orderQuery := "ORDER BY u.created_at desc"

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
			u.id,
			u.employee_id,
			u.card_id,
			u.first_name,
			u.last_name,
			u.role,
			u.kind,
			u.status,
			u.reactivation_date,
			u.department_id,
			d.name,
			u.cohort_id,
			c.name,
			u.phone,
			u.email
		FROM users u
		LEFT JOIN department d ON d.id = u.department_id
		LEFT JOIN cohort c ON c.id = u.cohort_id

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusBadRequest)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusBadRequest)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var reactivation *string
		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.CardID,
			&detail.FirstName,
			&detail.LastName,
			&detail.Role,
			&detail.Kind,
			&detail.Status,
			&reactivation,
			&detail.DepartmentID,
			&detail.Department,
			&detail.CohortID,
			&detail.Cohort,
			&detail.Phone,
			&detail.Email); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user list"), http.StatusBadRequest)
		}

		if reactivation != nil {
			d, err := date.ParseDate(*reactivation)
			if err != nil {
				return nil, 0, web.NewRequestError(errors.Wrap(err, "converting reactivation_date to date.Date"), http.StatusInternalServerError)
			}
			detail.ReactivationDate = &d
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(u.id)
		FROM users u
			%s
	`, whereQuery)

	count := 0
	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning user count"), http.StatusBadRequest)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleSupervisor, auth.RoleAdmin)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			u.id,
			u.employee_id,
			u.card_id,
			u.first_name,
			u.last_name,
			u.role,
			u.kind,
			u.status,
			u.reactivation_date,
			u.department_id,
			d.name,
			u.cohort_id,
			c.name,
			u.phone,
			u.email
		FROM
		    users u
		LEFT JOIN department d ON u.department_id = d.id
		LEFT JOIN cohort c ON u.cohort_id = c.id
		WHERE u.deleted_at IS NULL AND u.id = %d
	`, id)

	var detail GetDetailByIdResponse
	var reactivation *string

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.EmployeeID,
		&detail.CardID,
		&detail.FirstName,
		&detail.LastName,
		&detail.Role,
		&detail.Kind,
		&detail.Status,
		&reactivation,
		&detail.DepartmentID,
		&detail.Department,
		&detail.CohortID,
		&detail.Cohort,
		&detail.Phone,
		&detail.Email,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting user detail"), http.StatusBadRequest)
	}

	if reactivation != nil {
		d, err := date.ParseDate(*reactivation)
		if err != nil {
			return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting reactivation_date to date.Date"), http.StatusInternalServerError)
		}
		detail.ReactivationDate = &d
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "Password", "FirstName", "LastName", "Role"); err != nil {
		return CreateResponse{}, err
	}

	used, err := r.employeeIDUsed(ctx, *request.EmployeeID, 0)
	if err != nil {
		return CreateResponse{}, err
	}
	if used {
		return CreateResponse{}, web.NewRequestError(errors.New("employee_id is used"), http.StatusBadRequest)
	}

	role := strings.ToUpper(*request.Role)
	if !auth.ValidRole(role) {
		return CreateResponse{}, web.NewRequestError(errors.Errorf("incorrect role. role should be %s, %s or %s",
			auth.RoleEmployee, auth.RoleSupervisor, auth.RoleAdmin), http.StatusBadRequest)
	}

	if request.CardID != nil {
		used, err := r.cardIDUsed(ctx, *request.CardID, 0)
		if err != nil {
			return CreateResponse{}, err
		}
		if used {
			return CreateResponse{}, web.NewRequestError(errors.New("card_id is already assigned"), http.StatusBadRequest)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashedPassword := string(hash)

	kind := entity.UserKindEmployee
	if request.Kind != nil {
		kind = *request.Kind
	}
	if kind != entity.UserKindEmployee && kind != entity.UserKindLearner {
		return CreateResponse{}, web.NewRequestError(errors.Errorf("incorrect kind. kind should be %s or %s",
			entity.UserKindEmployee, entity.UserKindLearner), http.StatusBadRequest)
	}

	var response CreateResponse
	response.Role = &role
	response.FirstName = request.FirstName
	response.LastName = request.LastName
	response.EmployeeID = request.EmployeeID
	response.CardID = request.CardID
	response.Password = &hashedPassword
	response.Kind = &kind
	response.Status = entity.UserStatusActive
	response.DepartmentID = request.DepartmentID
	response.CohortID = request.CohortID
	response.Phone = request.Phone
	response.Email = request.Email
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating user"), http.StatusBadRequest)
	}

	response.Password = nil

	r.AppendJournal(ctx, &claims.UserId, "user.create", map[string]interface{}{
		"user_id":     response.ID,
		"employee_id": *request.EmployeeID,
	}, entity.JournalStatusSuccess)

	return response, nil
}

func (r Repository) UpdateAll(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID", "EmployeeID", "Role", "FirstName", "LastName"); err != nil {
		return err
	}

	used, err := r.employeeIDUsed(ctx, *request.EmployeeID, request.ID)
	if err != nil {
		return err
	}
	if used {
		return web.NewRequestError(errors.New("employee_id is used"), http.StatusBadRequest)
	}

	role := strings.ToUpper(*request.Role)
	if !auth.ValidRole(role) {
		return web.NewRequestError(errors.Errorf("incorrect role. role should be %s, %s or %s",
			auth.RoleEmployee, auth.RoleSupervisor, auth.RoleAdmin), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", request.ID)

	q.Set("employee_id = ?", request.EmployeeID)
	q.Set("role = ?", role)
	q.Set("first_name = ?", request.FirstName)
	q.Set("last_name = ?", request.LastName)
	q.Set("kind = ?", request.Kind)
	q.Set("department_id = ?", request.DepartmentID)
	q.Set("cohort_id = ?", request.CohortID)
	q.Set("phone = ?", request.Phone)
	q.Set("email = ?", request.Email)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if request.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		q.Set("password = ?", string(hash))
	}

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating user"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.EmployeeID != nil {
		used, err := r.employeeIDUsed(ctx, *request.EmployeeID, request.ID)
		if err != nil {
			return err
		}
		if used {
			return web.NewRequestError(errors.New("employee_id is used"), http.StatusBadRequest)
		}
		q.Set("employee_id = ?", request.EmployeeID)
	}

	if request.Role != nil {
		role := strings.ToUpper(*request.Role)
		if !auth.ValidRole(role) {
			return web.NewRequestError(errors.Errorf("incorrect role. role should be %s, %s or %s",
				auth.RoleEmployee, auth.RoleSupervisor, auth.RoleAdmin), http.StatusBadRequest)
		}
		q.Set("role = ?", role)
	}

	if request.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		q.Set("password = ?", string(hash))
	}

	if request.FirstName != nil {
		q.Set("first_name = ?", request.FirstName)
	}
	if request.LastName != nil {
		q.Set("last_name = ?", request.LastName)
	}
	if request.Kind != nil {
		q.Set("kind = ?", request.Kind)
	}
	if request.DepartmentID != nil {
		q.Set("department_id = ?", request.DepartmentID)
	}
	if request.CohortID != nil {
		q.Set("cohort_id = ?", request.CohortID)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.Email != nil {
		q.Set("email = ?", request.Email)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating user"), http.StatusBadRequest)
	}

	return nil
}

// AssignCard binds a badge to the user. A badge can only belong to one
// active user at a time.
func (r Repository) AssignCard(ctx context.Context, request AssignCardRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID", "CardID"); err != nil {
		return err
	}

	used, err := r.cardIDUsed(ctx, *request.CardID, request.ID)
	if err != nil {
		return err
	}
	if used {
		return web.NewRequestError(errors.New("card_id is already assigned"), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", request.ID)
	q.Set("card_id = ?", request.CardID)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "assigning card"), http.StatusBadRequest)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	r.AppendJournal(ctx, &claims.UserId, "user.assign_card", map[string]interface{}{
		"user_id": request.ID,
		"card_id": *request.CardID,
	}, entity.JournalStatusSuccess)

	return nil
}

// SetStatus activates or deactivates a badge by hand. Deactivation may carry
// a reactivation date, activation always clears it.
func (r Repository) SetStatus(ctx context.Context, request SetStatusRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID", "Status"); err != nil {
		return err
	}

	if *request.Status != entity.UserStatusActive && *request.Status != entity.UserStatusInactive {
		return web.NewRequestError(errors.Errorf("incorrect status. status should be %s or %s",
			entity.UserStatusActive, entity.UserStatusInactive), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("users").Where("deleted_at IS NULL AND id = ?", request.ID)
	q.Set("status = ?", request.Status)

	if *request.Status == entity.UserStatusActive {
		q.Set("reactivation_date = NULL")
	} else if request.ReactivationDate != nil {
		if _, err := time.Parse(entity.WorkDayFormat, *request.ReactivationDate); err != nil {
			return web.NewRequestError(errors.Wrap(err, "reactivation_date parse"), http.StatusBadRequest)
		}
		q.Set("reactivation_date = ?", request.ReactivationDate)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating user status"), http.StatusBadRequest)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	r.AppendJournal(ctx, &claims.UserId, "user.set_status", map[string]interface{}{
		"user_id": request.ID,
		"status":  *request.Status,
	}, entity.JournalStatusSuccess)

	return nil
}

// ReactivateDue flips back to active every user whose reactivation date has
// passed. Called alongside the daily absence batch.
func (r Repository) ReactivateDue(ctx context.Context) (int, error) {
	q := r.NewUpdate().Table("users").
		Where("deleted_at IS NULL AND status = ? AND reactivation_date IS NOT NULL AND reactivation_date < ?",
			entity.UserStatusInactive, time.Now().Format(entity.WorkDayFormat))
	q.Set("status = ?", entity.UserStatusActive)
	q.Set("reactivation_date = NULL")
	q.Set("updated_at = ?", time.Now())

	result, err := q.Exec(ctx)
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "reactivating users"), http.StatusInternalServerError)
	}
	rows, _ := result.RowsAffected()

	return int(rows), nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "users", id)
}

func (r Repository) employeeIDUsed(ctx context.Context, employeeID string, excludeID int) (bool, error) {
	used := true
	query := fmt.Sprintf(`SELECT
							CASE WHEN
							(SELECT id FROM users WHERE employee_id = '%s' AND deleted_at IS NULL AND id != %d) IS NOT NULL
							THEN true ELSE false END`, employeeID, excludeID)
	if err := r.QueryRowContext(ctx, query).Scan(&used); err != nil {
		return false, web.NewRequestError(errors.Wrap(err, "employee_id check"), http.StatusInternalServerError)
	}
	return used, nil
}

func (r Repository) cardIDUsed(ctx context.Context, cardID string, excludeID int) (bool, error) {
	used := true
	query := fmt.Sprintf(`SELECT
							CASE WHEN
							(SELECT id FROM users WHERE card_id = '%s' AND deleted_at IS NULL AND id != %d) IS NOT NULL
							THEN true ELSE false END`, cardID, excludeID)
	if err := r.QueryRowContext(ctx, query).Scan(&used); err != nil {
		return false, web.NewRequestError(errors.Wrap(err, "card_id check"), http.StatusInternalServerError)
	}
	return used, nil
}

// ExportList returns flat rows for the spreadsheet export.
func (r Repository) ExportList(ctx context.Context, filter Filter) ([]ExportRow, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	whereQuery := "WHERE u.deleted_at IS NULL"
	if filter.DepartmentID != nil {
		whereQuery += fmt.Sprintf(" AND u.department_id = %d", *filter.DepartmentID)
	}
	if filter.CohortID != nil {
		whereQuery += fmt.Sprintf(" AND u.cohort_id = %d", *filter.CohortID)
	}
	if filter.Kind != nil {
		whereQuery += fmt.Sprintf(" AND u.kind = '%s'", *filter.Kind)
	}

	query := fmt.Sprintf(`
		SELECT
			coalesce(u.employee_id, ''),
			coalesce(u.card_id, ''),
			coalesce(u.first_name, ''),
			coalesce(u.last_name, ''),
			coalesce(u.role, ''),
			coalesce(u.kind, ''),
			coalesce(u.status, ''),
			coalesce(d.name, ''),
			coalesce(c.name, ''),
			coalesce(u.email, ''),
			coalesce(u.phone, '')
		FROM users u
		LEFT JOIN department d ON d.id = u.department_id
		LEFT JOIN cohort c ON c.id = u.cohort_id
		%s
		ORDER BY u.last_name, u.first_name
	`, whereQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting export rows"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []ExportRow
	for rows.Next() {
		var row ExportRow
		if err = rows.Scan(
			&row.EmployeeID,
			&row.CardID,
			&row.FirstName,
			&row.LastName,
			&row.Role,
			&row.Kind,
			&row.Status,
			&row.Department,
			&row.Cohort,
			&row.Email,
			&row.Phone); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning export row"), http.StatusInternalServerError)
		}
		list = append(list, row)
	}

	return list, nil
}

// Import creates one employee user per spreadsheet row. Rows whose
// employee_id or card_id is already taken are skipped, not failed: a partial
// import reports what it skipped.
func (r Repository) Import(ctx context.Context, rows []ImportRow) (ImportResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return ImportResponse{}, err
	}

	var response ImportResponse

	for i, row := range rows {
		if row.EmployeeID == "" || row.FirstName == "" || row.LastName == "" {
			response.Skipped++
			response.Errors = append(response.Errors, fmt.Sprintf("row %d: employee_id, first_name and last_name are required", i+2))
			continue
		}

		used, err := r.employeeIDUsed(ctx, row.EmployeeID, 0)
		if err != nil {
			return response, err
		}
		if used {
			response.Skipped++
			response.Errors = append(response.Errors, fmt.Sprintf("row %d: employee_id %s is used", i+2, row.EmployeeID))
			continue
		}

		var cardID *string
		if row.CardID != "" {
			used, err := r.cardIDUsed(ctx, row.CardID, 0)
			if err != nil {
				return response, err
			}
			if used {
				response.Skipped++
				response.Errors = append(response.Errors, fmt.Sprintf("row %d: card_id %s is already assigned", i+2, row.CardID))
				continue
			}
			cardID = &row.CardID
		}

		kind := entity.UserKindEmployee
		if row.Kind != "" {
			kind = row.Kind
		}

		// Imported users sign in with their employee id until they change it.
		hash, err := bcrypt.GenerateFromPassword([]byte(row.EmployeeID), bcrypt.DefaultCost)
		if err != nil {
			return response, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		hashedPassword := string(hash)

		departmentID, err := r.lookupID(ctx, "department", row.Department)
		if err != nil {
			return response, err
		}
		cohortID, err := r.lookupID(ctx, "cohort", row.Cohort)
		if err != nil {
			return response, err
		}

		role := auth.RoleEmployee
		detail := CreateResponse{
			EmployeeID:   &row.EmployeeID,
			CardID:       cardID,
			Password:     &hashedPassword,
			Role:         &role,
			FirstName:    &row.FirstName,
			LastName:     &row.LastName,
			Kind:         &kind,
			Status:       entity.UserStatusActive,
			DepartmentID: departmentID,
			CohortID:     cohortID,
			CreatedAt:    time.Now(),
			CreatedBy:    claims.UserId,
		}
		if row.Email != "" {
			detail.Email = &row.Email
		}
		if row.Phone != "" {
			detail.Phone = &row.Phone
		}

		if _, err := r.NewInsert().Model(&detail).Exec(ctx); err != nil {
			return response, web.NewRequestError(errors.Wrapf(err, "creating user from row %d", i+2), http.StatusInternalServerError)
		}
		response.Created++
	}

	r.AppendJournal(ctx, &claims.UserId, "user.import", map[string]interface{}{
		"created": response.Created,
		"skipped": response.Skipped,
	}, entity.JournalStatusSuccess)

	return response, nil
}

func (r Repository) lookupID(ctx context.Context, table, name string) (*int, error) {
	if name == "" {
		return nil, nil
	}

	var id int
	err := r.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id FROM %s WHERE name = '%s' AND deleted_at IS NULL LIMIT 1", table, name)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrapf(err, "selecting %s by name", table), http.StatusInternalServerError)
	}
	return &id, nil
}
