package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"souk/internal/domain/model"
	repo "souk/internal/repository"
	"souk/internal/validator"

	"go.uber.org/zap"
)

// OrderNumberGenerator produces unique human-referenceable order numbers.
type OrderNumberGenerator interface {
	Next() string
}

// CheckoutUsecase turns a cart into a persisted order.
//
// The storage gateway gives us single-statement operations only, so the
// write sequence is not atomic. Ordering carries the invariants instead:
// all validation happens before the first write, a failed item insert
// compensates by deleting the order row, and stock decrement / cart clear
// run after the order is durable and are allowed to fail.
type CheckoutUsecase struct {
	tenantRepo    repo.TenantRepository
	productRepo   repo.ProductRepository
	cartRepo      repo.CartRepository
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	inventoryRepo repo.InventoryRepository
	orderNumbers  OrderNumberGenerator
	logger        *zap.Logger
}

func NewCheckoutUsecase(
	tenantRepo repo.TenantRepository,
	productRepo repo.ProductRepository,
	cartRepo repo.CartRepository,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	inventoryRepo repo.InventoryRepository,
	orderNumbers OrderNumberGenerator,
	logger *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tenantRepo:    tenantRepo,
		productRepo:   productRepo,
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		inventoryRepo: inventoryRepo,
		orderNumbers:  orderNumbers,
		logger:        logger,
	}
}

type CheckoutInput struct {
	TenantID        int64
	TenantSlug      string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	DeliveryAddress string
	Wilaya          string
	Commune         string
	Notes           string
	PaymentMethod   string
}

type CheckoutOutput struct {
	OrderID     int64  `json:"id"`
	OrderNumber string `json:"order_number"`
	Total       int64  `json:"total"`
}

func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID int64, in CheckoutInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.TenantID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid tenant_id")
	}

	if fields := validator.ValidateCheckout(validator.CheckoutForm{
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerEmail:   in.CustomerEmail,
		DeliveryAddress: in.DeliveryAddress,
		Wilaya:          in.Wilaya,
		Commune:         in.Commune,
		PaymentMethod:   in.PaymentMethod,
	}); len(fields) > 0 {
		return CheckoutOutput{}, NewValidationError(fields)
	}

	// cash is the only live payment path
	if in.PaymentMethod != "cash" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "card payments are not yet available")
	}

	tenant, err := u.tenantRepo.FindByID(ctx, in.TenantID)
	if err == repo.ErrNotFound {
		return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "store not found")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !tenant.IsActive {
		return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "store not found")
	}
	if in.TenantSlug != "" && tenant.Slug != in.TenantSlug {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid store")
	}

	lines, err := u.cartRepo.ListByUserAndTenant(ctx, userID, in.TenantID)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(lines) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "your cart is empty")
	}

	// Validate every line and snapshot name/price before any write, so a
	// mid-assembly price change cannot alter what the customer agreed to.
	items := make([]model.OrderItem, 0, len(lines))
	var subtotal int64 = 0

	for _, line := range lines {
		p, err := u.productRepo.FindByID(ctx, line.ProductID)
		if err == repo.ErrNotFound {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "a product in your cart is no longer available")
		}
		if err != nil {
			return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.IsActive {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("%s is no longer available", p.Name))
		}
		if p.StockQuantity < line.Quantity {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("insufficient stock for %s (only %d left)", p.Name, p.StockQuantity))
		}

		lineTotal := p.Price * line.Quantity
		subtotal += lineTotal

		items = append(items, model.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   p.Price,
			Quantity:    line.Quantity,
			TotalPrice:  lineTotal,
		})
	}

	if subtotal < tenant.MinimumOrder {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("minimum order is %d", tenant.MinimumOrder))
	}

	total := subtotal + tenant.DeliveryFee

	now := time.Now()
	orderNumber := u.orderNumbers.Next()
	address := fmt.Sprintf("%s, %s, %s",
		strings.TrimSpace(in.DeliveryAddress),
		strings.TrimSpace(in.Commune),
		strings.TrimSpace(in.Wilaya),
	)

	orderID, err := u.orderRepo.Create(ctx, model.Order{
		TenantID:        in.TenantID,
		UserID:          userID,
		OrderNumber:     orderNumber,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
		DeliveryAddress: address,
		DeliveryFee:     tenant.DeliveryFee,
		Subtotal:        subtotal,
		Total:           total,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "could not create order")
	}

	// An order must never exist without items: compensate by removing the
	// order row before surfacing the failure.
	if err := u.orderItemRepo.CreateBulk(ctx, orderID, items); err != nil {
		if delErr := u.orderRepo.DeleteByID(ctx, orderID); delErr != nil {
			u.logger.Error("failed to delete order after item insert failure",
				zap.Int64("order_id", orderID),
				zap.Error(delErr),
			)
		}
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "could not save order items")
	}

	// The order is durable from here on. Stock decrement and cart clear
	// failures leave correctable drift, never a lost order.
	for _, it := range items {
		ok, err := u.inventoryRepo.DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
		if err != nil || !ok {
			u.logger.Warn("stock decrement skipped after order creation",
				zap.Int64("order_id", orderID),
				zap.Int64("product_id", it.ProductID),
				zap.Int64("quantity", it.Quantity),
				zap.Error(err),
			)
		}
	}

	if err := u.cartRepo.ClearByUserAndTenant(ctx, userID, in.TenantID); err != nil {
		u.logger.Warn("cart clear failed after order creation",
			zap.Int64("order_id", orderID),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	return CheckoutOutput{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Total:       total,
	}, nil
}
