// Package web provides a small web framework on top of gin. Handlers return
// errors instead of writing responses directly so the error policy lives in
// one place.
package web

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Handler is the signature every application handler implements.
type Handler func(c *Context) error

// Middleware wraps a Handler with pre/post processing.
type Middleware func(Handler) Handler

// App is the entrypoint for the web application. It embeds the gin engine so
// plain gin routes (static files, websockets, swagger) can still be mounted.
type App struct {
	*gin.Engine
}

func NewApp() *App {
	return &App{Engine: gin.New()}
}

func (a *App) handle(method, path string, handler Handler, middlewares ...Middleware) {
	// Wrap the handler from the inside out.
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			handler = middlewares[i](handler)
		}
	}

	a.Handle(method, path, func(c *gin.Context) {
		ctx := &Context{Context: c, Ctx: c.Request.Context()}
		if err := handler(ctx); err != nil {
			// Handlers respond before returning; anything left here is a
			// programming error worth surfacing.
			_ = ctx.RespondError(err)
		}
	})
}

func (a *App) Get(path string, handler Handler, middlewares ...Middleware) {
	a.handle("GET", path, handler, middlewares...)
}

func (a *App) Post(path string, handler Handler, middlewares ...Middleware) {
	a.handle("POST", path, handler, middlewares...)
}

func (a *App) Put(path string, handler Handler, middlewares ...Middleware) {
	a.handle("PUT", path, handler, middlewares...)
}

func (a *App) Patch(path string, handler Handler, middlewares ...Middleware) {
	a.handle("PATCH", path, handler, middlewares...)
}

func (a *App) Delete(path string, handler Handler, middlewares ...Middleware) {
	a.handle("DELETE", path, handler, middlewares...)
}

// Ctx is a helper for handlers that only have the request context.
func Ctx(c *Context) context.Context {
	return c.Ctx
}
