package punch

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"pointage/backend/foundation/web"
	"pointage/backend/internal/repository/postgres/punch"
	"pointage/backend/internal/service"
)

type Controller struct {
	punch Punch
	user  User
}

func NewController(punch Punch, user User) *Controller {
	return &Controller{punch, user}
}

// Scan is the endpoint the badge readers call on every card presentation.
func (pc Controller) Scan(c *web.Context) error {
	var data punch.ScanRequest

	if err := c.BindFunc(&data, "CardID"); err != nil {
		return c.RespondError(err)
	}

	response, err := pc.punch.Scan(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (pc Controller) Validate(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data punch.ValidateRequest
	if err := c.BindFunc(&data, "Action"); err != nil {
		return c.RespondError(err)
	}

	response, err := pc.punch.Validate(c.Ctx, id, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (pc Controller) GenerateAbsences(c *web.Context) error {
	var data punch.GenerateRequest

	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}

	// Users whose reactivation date has passed must be active again before
	// the batch runs, otherwise they get no row for the day.
	if _, err := pc.user.ReactivateDue(c.Ctx); err != nil {
		return c.RespondError(err)
	}

	response, err := pc.punch.GenerateAbsences(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (pc Controller) GetPunchList(c *web.Context) error {
	var filter punch.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if dateStr, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = dateStr
	}
	if userID, ok := c.GetQueryFunc(reflect.Int, "user_id").(*int); ok {
		filter.UserID = userID
	}
	if pending, ok := c.GetQueryFunc(reflect.Bool, "pending").(*bool); ok {
		filter.Pending = pending
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := pc.punch.GetList(c.Ctx, filter)
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

func (pc Controller) GetHistory(c *web.Context) error {
	var filter punch.HistoryFilter

	if start, ok := c.GetQueryFunc(reflect.String, "debut").(*string); ok {
		filter.Start = start
	}
	if end, ok := c.GetQueryFunc(reflect.String, "fin").(*string); ok {
		filter.End = end
	}
	if userID, ok := c.GetQueryFunc(reflect.Int, "user_id").(*int); ok {
		filter.UserID = userID
	}
	if kind, ok := c.GetQueryFunc(reflect.String, "kind").(*string); ok {
		filter.Kind = kind
	}
	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := pc.punch.GetHistory(c.Ctx, filter)
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

func presenceFilter(c *web.Context) punch.PresenceFilter {
	var filter punch.PresenceFilter

	if start, ok := c.GetQueryFunc(reflect.String, "start_date").(*string); ok {
		filter.StartDate = start
	}
	if end, ok := c.GetQueryFunc(reflect.String, "end_date").(*string); ok {
		filter.EndDate = end
	}
	if dateStr, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = dateStr
	}
	if period, ok := c.GetQueryFunc(reflect.String, "periode").(*string); ok {
		filter.Period = period
	}
	if cohortID, ok := c.GetQueryFunc(reflect.Int, "cohort_id").(*int); ok {
		filter.CohortID = cohortID
	}
	if departmentID, ok := c.GetQueryFunc(reflect.Int, "department_id").(*int); ok {
		filter.DepartmentID = departmentID
	}
	if kind, ok := c.GetQueryFunc(reflect.String, "kind").(*string); ok {
		filter.UserKind = kind
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}

	return filter
}

func (pc Controller) FilterPresence(c *web.Context) error {
	filter := presenceFilter(c)
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := pc.punch.FilterPresence(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (pc Controller) GetPresenceByPeriod(c *web.Context) error {
	filter := presenceFilter(c)
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := pc.punch.GetPresenceByPeriod(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// GetPresenceReport renders the same presence query as a downloadable PDF.
func (pc Controller) GetPresenceReport(c *web.Context) error {
	filter := presenceFilter(c)
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := pc.punch.FilterPresence(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	period := ""
	if filter.StartDate != nil && filter.EndDate != nil {
		period = fmt.Sprintf("%s - %s", *filter.StartDate, *filter.EndDate)
	}

	rows := make([]service.PresenceReportRow, 0, len(response.Results))
	for _, item := range response.Results {
		row := service.PresenceReportRow{}
		if item.FullName != nil {
			row.FullName = *item.FullName
		}
		if item.Department != nil {
			row.Department = *item.Department
		}
		if item.Cohort != nil {
			row.Cohort = *item.Cohort
		}
		if item.FirstIn != nil {
			row.FirstIn = item.FirstIn.Format("15:04")
		}
		if item.LastOut != nil {
			row.LastOut = item.LastOut.Format("15:04")
		}
		switch {
		case item.Present && item.Late:
			row.Status = "late"
		case item.Present:
			row.Status = "present"
		default:
			row.Status = "absent"
		}
		rows = append(rows, row)
	}

	report, err := service.BuildPresenceReport(service.PresenceReportSummary{
		Title:              "Presence report",
		Period:             period,
		TotalUsers:         response.Statistics.TotalUsers,
		Presents:           response.Statistics.Presents,
		Absents:            response.Statistics.Absents,
		Lates:              response.Statistics.Lates,
		PresencePercentage: response.Statistics.PresencePercentage,
	}, rows)
	if err != nil {
		return c.RespondError(err)
	}

	fileName := fmt.Sprintf("presence_%s.pdf", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "application/pdf", report)

	return nil
}

func (pc Controller) UpdatePunch(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data punch.UpdateRequest
	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}
	data.ID = id

	if err := pc.punch.UpdateAll(c.Ctx, data); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (pc Controller) DeletePunch(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := pc.punch.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
