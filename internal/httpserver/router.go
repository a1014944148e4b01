package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/hr_notify/internal/middleware/auth"
)

type Deps struct {
	AccountHandler *AccountHTTP
	Auth           *auth.BearerAuth
	// Ready reports whether the store is reachable.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.Pre(middleware.RemoveTrailingSlash())

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	api.POST("/register", d.AccountHandler.Register)
	api.POST("/login", d.AccountHandler.Login)
	api.GET("/active/:token", d.AccountHandler.Activate)
	api.POST("/active", d.AccountHandler.ResendActivation)

	api.GET("/current", d.AccountHandler.Current, d.Auth.RequireAuth)
	api.GET("", d.AccountHandler.List, d.Auth.RequireAuth)
}
