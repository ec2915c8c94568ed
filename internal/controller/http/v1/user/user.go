package user

import (
	"fmt"
	"net/http"
	"os"
	"reflect"
	"time"

	"pointage/backend/foundation/web"
	"pointage/backend/internal/repository/postgres/user"
	"pointage/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	user User
}

func NewController(user User) *Controller {
	return &Controller{user}
}

func (uc Controller) GetUserList(c *web.Context) error {
	var filter user.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if departmentID, ok := c.GetQueryFunc(reflect.Int, "department_id").(*int); ok {
		filter.DepartmentID = departmentID
	}
	if cohortID, ok := c.GetQueryFunc(reflect.Int, "cohort_id").(*int); ok {
		filter.CohortID = cohortID
	}
	if kind, ok := c.GetQueryFunc(reflect.String, "kind").(*string); ok {
		filter.Kind = kind
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.user.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetUserDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.user.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// VerifyCard lets a reader check a badge without recording a punch.
func (uc Controller) VerifyCard(c *web.Context) error {
	var data user.VerifyCardRequest

	if err := c.BindFunc(&data, "CardID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.user.GetByCardID(c.Ctx, *data.CardID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) CreateUser(c *web.Context) error {
	var data user.CreateRequest

	if err := c.BindFunc(&data, "EmployeeID", "Password", "FirstName", "LastName", "Role"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.user.Create(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateUserAll(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data user.UpdateRequest
	if err := c.BindFunc(&data, "EmployeeID", "Role", "FirstName", "LastName"); err != nil {
		return c.RespondError(err)
	}
	data.ID = id

	if err := uc.user.UpdateAll(c.Ctx, data); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateUserColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data user.UpdateRequest
	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}
	data.ID = id

	if err := uc.user.UpdateColumns(c.Ctx, data); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) AssignCard(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data user.AssignCardRequest
	if err := c.BindFunc(&data, "CardID"); err != nil {
		return c.RespondError(err)
	}
	data.ID = id

	if err := uc.user.AssignCard(c.Ctx, data); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) SetUserStatus(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data user.SetStatusRequest
	if err := c.BindFunc(&data, "Status"); err != nil {
		return c.RespondError(err)
	}
	data.ID = id

	if err := uc.user.SetStatus(c.Ctx, data); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) DeleteUser(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.user.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// GetBadgeQr returns a QR image standing in for the user's physical badge.
func (uc Controller) GetBadgeQr(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}
	if detail.CardID == nil || detail.EmployeeID == nil {
		return c.RespondError(web.NewRequestError(errors.New("user has no badge assigned"), http.StatusNotFound))
	}

	size := 256
	if s, ok := c.GetQueryFunc(reflect.Int, "size").(*int); ok && s != nil {
		size = *s
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	png, err := service.BadgeQR(*detail.EmployeeID, *detail.CardID, size)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Type", "image/png")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=badge_%s.png", *detail.EmployeeID))
	c.Data(http.StatusOK, "image/png", png)

	return nil
}

func (uc Controller) ExportUsers(c *web.Context) error {
	var filter user.Filter

	if departmentID, ok := c.GetQueryFunc(reflect.Int, "department_id").(*int); ok {
		filter.DepartmentID = departmentID
	}
	if cohortID, ok := c.GetQueryFunc(reflect.Int, "cohort_id").(*int); ok {
		filter.CohortID = cohortID
	}
	if kind, ok := c.GetQueryFunc(reflect.String, "kind").(*string); ok {
		filter.Kind = kind
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.user.ExportList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	rows := make([]service.UserRow, 0, len(list))
	for _, item := range list {
		rows = append(rows, service.UserRow{
			EmployeeID: item.EmployeeID,
			CardID:     item.CardID,
			FirstName:  item.FirstName,
			LastName:   item.LastName,
			Role:       item.Role,
			Kind:       item.Kind,
			Status:     item.Status,
			Department: item.Department,
			Cohort:     item.Cohort,
			Email:      item.Email,
			Phone:      item.Phone,
		})
	}

	fileName := fmt.Sprintf("users_%s.xlsx", time.Now().Format("20060102_150405"))
	if err := service.BuildUserWorkbook(rows, fileName); err != nil {
		return c.RespondError(err)
	}
	defer os.Remove(fileName)

	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.File(fileName)

	return nil
}

func (uc Controller) ImportUsers(c *web.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "file is required"), http.StatusBadRequest))
	}

	path, err := service.Upload(fileHeader, "imports")
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}
	defer service.Remove(path)

	parsed, incompleteRows, err := service.ReadUserWorkbook(path)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "reading workbook"), http.StatusBadRequest))
	}

	rows := make([]user.ImportRow, 0, len(parsed))
	for _, item := range parsed {
		rows = append(rows, user.ImportRow{
			EmployeeID: item.EmployeeID,
			CardID:     item.CardID,
			FirstName:  item.FirstName,
			LastName:   item.LastName,
			Email:      item.Email,
			Phone:      item.Phone,
			Kind:       item.Kind,
			Department: item.Department,
			Cohort:     item.Cohort,
		})
	}

	response, err := uc.user.Import(c.Ctx, rows)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"created":         response.Created,
			"skipped":         response.Skipped,
			"errors":          response.Errors,
			"incomplete_rows": incompleteRows,
		},
		"status": true,
	}, http.StatusOK)
}
