package cohort

import (
	"net/http"
	"reflect"

	"pointage/backend/foundation/web"
	"pointage/backend/internal/repository/postgres/cohort"
)

type Controller struct {
	cohort Cohort
}

func NewController(cohort Cohort) *Controller {
	return &Controller{cohort}
}

func (cc Controller) GetCohortList(c *web.Context) error {
	var filter cohort.Filter

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
	if year, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok {
		filter.Year = year
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := cc.cohort.GetList(c.Ctx, filter)
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

func (cc Controller) GetCohortDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := cc.cohort.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (cc Controller) CreateCohort(c *web.Context) error {
	var data cohort.CreateRequest

	if err := c.BindFunc(&data, "Name", "Year"); err != nil {
		return c.RespondError(err)
	}

	response, err := cc.cohort.Create(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (cc Controller) UpdateCohortAll(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data cohort.UpdateRequest
	if err := c.BindFunc(&data, "Name", "Year"); err != nil {
		return c.RespondError(err)
	}
	data.ID = id

	if err := cc.cohort.UpdateAll(c.Ctx, data); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (cc Controller) UpdateCohortColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var data cohort.UpdateRequest
	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}
	data.ID = id

	if err := cc.cohort.UpdateColumns(c.Ctx, data); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (cc Controller) DeleteCohort(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := cc.cohort.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
