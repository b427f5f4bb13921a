package handler

import (
	"net/http"
	"strconv"

	"tableside/internal/middleware"
	"tableside/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /t/{slug}/{code}/cart のHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddItemRequest struct {
	MenuItemID int64  `json:"menu_item_id"`
	Quantity   int64  `json:"quantity"`
	Notes      string `json:"notes"`
}

type UpdateLineRequest struct {
	Quantity int64 `json:"quantity"`
}

type DecrementRequest struct {
	MenuItemID int64  `json:"menu_item_id"`
	Amount     int64  `json:"amount"`
	Notes      string `json:"notes"`
}

type OrderIDResponse struct {
	OrderID int64 `json:"order_id"`
}

type RemainingResponse struct {
	Remaining int64 `json:"remaining"`
}

// /t/{slug}/{code}/cart 配下を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/t/:slug/:code")
	g.Use(middleware.GuestSession())

	g.GET("/cart", h.getCart)
	g.POST("/cart/items", h.addItem)
	g.PATCH("/cart/items/:id", h.patchLine)
	g.DELETE("/cart/items/:id", h.deleteLine)
	g.POST("/cart/decrement", h.decrement)
	g.POST("/submit", h.submit)
	g.GET("/orders", h.listMyOrders)
}

// URLとcookieからカートのコンテキストを作る
func cartContext(c echo.Context) usecase.CartContext {
	sid, _ := c.Get(middleware.CtxGuestSessionKey).(string)
	return usecase.CartContext{
		RestaurantSlug: c.Param("slug"),
		TableCode:      c.Param("code"),
		GuestSessionID: sid,
	}
}

func (h *CartHandler) getCart(c echo.Context) error {
	out, err := h.uc.GetCart(c.Request().Context(), cartContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	orderID, err := h.uc.AddItem(c.Request().Context(), cartContext(c), usecase.AddItemInput{
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OrderIDResponse{OrderID: orderID})
}

func (h *CartHandler) patchLine(c echo.Context) error {
	lineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateLineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateQuantity(c.Request().Context(), cartContext(c), lineID, req.Quantity); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *CartHandler) deleteLine(c echo.Context) error {
	lineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.RemoveLine(c.Request().Context(), cartContext(c), lineID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *CartHandler) decrement(c echo.Context) error {
	var req DecrementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	remaining, err := h.uc.DecrementItem(c.Request().Context(), cartContext(c), usecase.DecrementInput{
		MenuItemID: req.MenuItemID,
		Amount:     req.Amount,
		Notes:      req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, RemainingResponse{Remaining: remaining})
}

func (h *CartHandler) submit(c echo.Context) error {
	orderID, err := h.uc.Submit(c.Request().Context(), cartContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderIDResponse{OrderID: orderID})
}

func (h *CartHandler) listMyOrders(c echo.Context) error {
	out, err := h.uc.ListMyOrders(c.Request().Context(), cartContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
