package handler

import (
	"net/http"

	"souk/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Storefront resolution by slug.
type TenantHandler struct {
	uc *usecase.TenantUsecase
}

func NewTenantHandler(uc *usecase.TenantUsecase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

func (h *TenantHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/tenants/:slug", h.bySlug)
}

func (h *TenantHandler) bySlug(c echo.Context) error {
	out, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
