package handler

import (
	"net/http"
	"strconv"

	"souk/internal/config"
	"souk/internal/middleware"
	"souk/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc       *usecase.OrderUsecase
	statusUC *usecase.OrderStatusUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase, statusUC *usecase.OrderStatusUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, statusUC: statusUC}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.StaffRoleGuard())

	g.GET("", h.list)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	tenantID, err := strconv.ParseInt(c.QueryParam("tenant_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tenant_id"})
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.ListStaff(c.Request().Context(), userID, usecase.StaffOrderListInput{
		TenantID: tenantID,
		Page:     page,
		Limit:    limit,
		Status:   c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, CheckoutFailureResponse{Success: false, Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, CheckoutFailureResponse{Success: false, Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, CheckoutFailureResponse{Success: false, Error: "invalid body"})
	}

	if err := h.statusUC.UpdateStatus(c.Request().Context(), userID, id, usecase.UpdateStatusInput{
		Status: req.Status,
	}); err != nil {
		return writeEnvelopeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
