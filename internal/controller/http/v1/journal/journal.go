package journal

import (
	"net/http"
	"reflect"

	"pointage/backend/foundation/web"
	"pointage/backend/internal/repository/postgres/journal"
)

type Controller struct {
	journal Journal
}

func NewController(journal Journal) *Controller {
	return &Controller{journal}
}

func (jc Controller) GetJournalList(c *web.Context) error {
	var filter journal.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if userID, ok := c.GetQueryFunc(reflect.Int, "user_id").(*int); ok {
		filter.UserID = userID
	}
	if action, ok := c.GetQueryFunc(reflect.String, "action").(*string); ok {
		filter.Action = action
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if debut, ok := c.GetQueryFunc(reflect.String, "debut").(*string); ok {
		filter.Debut = debut
	}
	if fin, ok := c.GetQueryFunc(reflect.String, "fin").(*string); ok {
		filter.Fin = fin
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := jc.journal.GetList(c.Ctx, filter)
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
