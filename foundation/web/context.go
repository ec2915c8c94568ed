package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the request scoped values through a handler call. Ctx is
// the context handlers must pass down; middleware enriches it with claims.
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrs []error
	paramErrs []error
}

// GetQueryFunc reads an optional query parameter and returns a typed pointer
// (*int, *string, *bool). A missing parameter yields a typed nil pointer so
// callers can assert the type unconditionally; parse failures are collected
// and reported by ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok || value == "" {
			return (*int)(nil)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, errors.Wrapf(err, "query parameter %q must be an integer", name))
			return (*int)(nil)
		}
		return &v
	case reflect.Bool:
		if !ok || value == "" {
			return (*bool)(nil)
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, errors.Wrapf(err, "query parameter %q must be a boolean", name))
			return (*bool)(nil)
		}
		return &v
	case reflect.String:
		if !ok || value == "" {
			return (*string)(nil)
		}
		return &value
	}

	c.queryErrs = append(c.queryErrs, errors.Errorf("unsupported query parameter kind for %q", name))
	return nil
}

// ValidQuery reports the first query parsing error collected by GetQueryFunc.
func (c *Context) ValidQuery() error {
	if len(c.queryErrs) > 0 {
		return NewRequestError(c.queryErrs[0], http.StatusBadRequest)
	}
	return nil
}

// GetParam reads a path parameter. Only int parameters are used by this API.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, errors.Wrapf(err, "path parameter %q must be an integer", name))
			return 0
		}
		return v
	case reflect.String:
		return value
	}

	c.paramErrs = append(c.paramErrs, errors.Errorf("unsupported path parameter kind for %q", name))
	return nil
}

// ValidParam reports the first path parameter error collected by GetParam.
func (c *Context) ValidParam() error {
	if len(c.paramErrs) > 0 {
		return NewRequestError(c.paramErrs[0], http.StatusBadRequest)
	}
	return nil
}

// BindFunc binds the request body into obj and checks that the named struct
// fields were provided. Field names are the Go names; comma separated lists
// are accepted for compatibility with older call sites.
func (c *Context) BindFunc(obj interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(obj); err != nil {
		return NewRequestError(errors.Wrap(err, "parsing request body"), http.StatusBadRequest)
	}

	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	for _, fields := range requiredFields {
		for _, name := range strings.Split(fields, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			field := v.FieldByName(name)
			if !field.IsValid() {
				return NewRequestError(errors.Errorf("unknown required field %q", name), http.StatusInternalServerError)
			}
			if field.IsZero() {
				return NewRequestError(errors.Errorf("field %s is required", fieldJSONName(v.Type(), name)), http.StatusBadRequest)
			}
		}
	}

	return nil
}

func fieldJSONName(t reflect.Type, name string) string {
	if f, ok := t.FieldByName(name); ok {
		if tag := strings.Split(f.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
			return tag
		}
	}
	return name
}

// Respond sends data as JSON with the given status code.
func (c *Context) Respond(data interface{}, statusCode int) error {
	c.JSON(statusCode, data)
	return nil
}

// RespondError translates err into a JSON error response. Trusted errors
// (web.Error) keep their status and message, everything else is a 500 with
// the detail kept out of the response body.
func (c *Context) RespondError(err error) error {
	if webErr := GetError(err); webErr != nil {
		return c.Respond(map[string]interface{}{
			"status": false,
			"error":  webErr.Err.Error(),
		}, webErr.Status)
	}

	log().Error(fmt.Sprintf("%+v", err))

	return c.Respond(map[string]interface{}{
		"status": false,
		"error":  http.StatusText(http.StatusInternalServerError),
	}, http.StatusInternalServerError)
}
