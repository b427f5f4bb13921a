package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Catalog.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Kitchen.RegisterRoutes(e)
	h.Payment.RegisterRoutes(e)
}
