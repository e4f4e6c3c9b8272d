package handler

import (
	"net/http"

	"souk/internal/config"
	"souk/internal/middleware"
	"souk/internal/usecase"
	"souk/internal/validator"

	"github.com/labstack/echo/v4"
)

// Checkout envelope. Storefront clients key on the success flag; field
// validation failures carry a per-field errors list.
type CheckoutSuccessResponse struct {
	Success bool                   `json:"success"`
	Order   usecase.CheckoutOutput `json:"order"`
}

type CheckoutFailureResponse struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error"`
	Errors  []validator.FieldError `json:"errors,omitempty"`
}

func writeEnvelopeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, CheckoutFailureResponse{
			Success: false,
			Error:   he.Message,
			Errors:  he.Fields,
		})
	}

	return c.JSON(http.StatusInternalServerError, CheckoutFailureResponse{
		Success: false,
		Error:   "internal error",
	})
}

type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckoutRequest struct {
	TenantID        int64  `json:"tenant_id"`
	TenantSlug      string `json:"tenant_slug"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerEmail   string `json:"customer_email"`
	DeliveryAddress string `json:"delivery_address"`
	Wilaya          string `json:"wilaya"`
	Commune         string `json:"commune"`
	Notes           string `json:"notes"`
	PaymentMethod   string `json:"payment_method"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/checkout")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.checkout)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, CheckoutFailureResponse{Success: false, Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, CheckoutFailureResponse{Success: false, Error: "invalid body"})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.CheckoutInput{
		TenantID:        req.TenantID,
		TenantSlug:      req.TenantSlug,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		DeliveryAddress: req.DeliveryAddress,
		Wilaya:          req.Wilaya,
		Commune:         req.Commune,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		return writeEnvelopeError(c, err)
	}

	return c.JSON(http.StatusOK, CheckoutSuccessResponse{Success: true, Order: out})
}
