package handler

import (
	"net/http"

	"tableside/internal/middleware"
	"tableside/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// メニューとQRのHTTP
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// /t/{slug}/{code} 配下のゲスト向け参照系を登録
func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/t/:slug/:code")
	g.Use(middleware.GuestSession())

	g.GET("", h.resolveTable)
	g.GET("/menu", h.getMenu)
	g.GET("/qr.png", h.tableQR)
}

func (h *CatalogHandler) resolveTable(c echo.Context) error {
	out, err := h.uc.ResolveTable(c.Request().Context(), c.Param("slug"), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) getMenu(c echo.Context) error {
	out, err := h.uc.GetMenu(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) tableQR(c echo.Context) error {
	png, err := h.uc.TableQR(c.Request().Context(), c.Param("slug"), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
