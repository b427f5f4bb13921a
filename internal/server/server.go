package server

import (
	"tableside/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handlersはルーティングに必要なハンドラ一式
type Handlers struct {
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Kitchen *handler.KitchenHandler
	Payment *handler.PaymentHandler
}

// Newはechoを組み立てて返す。起動は呼び出し側で e.Start する。
func New(h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	RegisterRoutes(e, h)
	return e
}
