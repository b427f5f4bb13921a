package handler

import (
	"net/http"
	"strconv"

	"tableside/internal/usecase"

	"github.com/labstack/echo/v4"
)

// KDS/管理画面向けのHTTP
type KitchenHandler struct {
	uc *usecase.KitchenUsecase
}

// DI
func NewKitchenHandler(uc *usecase.KitchenUsecase) *KitchenHandler {
	return &KitchenHandler{uc: uc}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`

	//KDS端末が名乗る表示名（監査ログ用、任意）
	ActorName string `json:"actor_name"`
}

// /kitchen/orders を登録
func (h *KitchenHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/kitchen")

	g.GET("/orders", h.list)
	g.PATCH("/orders/:id/status", h.updateStatus)
	g.GET("/orders/:id/audit", h.listAudit)
}

func (h *KitchenHandler) list(c echo.Context) error {
	restaurantID, err := strconv.ParseInt(c.QueryParam("restaurant_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid restaurant_id"})
	}

	in := usecase.KitchenListInput{
		RestaurantID: restaurantID,
		Status:       c.QueryParam("status"),
	}

	if v := c.QueryParam("table_id"); v != "" {
		tableID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid table_id"})
		}
		in.TableID = &tableID
	}

	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		in.Limit = limit
	}

	out, err := h.uc.ListActive(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KitchenHandler) updateStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateStatus(c.Request().Context(), orderID, usecase.UpdateOrderStatusInput{
		Status:    req.Status,
		ActorName: req.ActorName,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *KitchenHandler) listAudit(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
	}

	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
	}

	out, err := h.uc.ListAuditForOrder(c.Request().Context(), orderID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
