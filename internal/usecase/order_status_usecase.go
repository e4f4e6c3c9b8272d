package usecase

import (
	"context"
	"net/http"

	"souk/internal/domain/model"
	repo "souk/internal/repository"

	"go.uber.org/zap"
)

// Forward chain: pending -> confirmed -> preparing -> out_for_delivery ->
// delivered. cancelled is an alternate terminal reachable from pending or
// confirmed only. Backward moves are always rejected.
var statusRank = map[model.OrderStatus]int{
	model.OrderStatusPending:        0,
	model.OrderStatusConfirmed:      1,
	model.OrderStatusPreparing:      2,
	model.OrderStatusOutForDelivery: 3,
	model.OrderStatusDelivered:      4,
}

func isKnownStatus(s model.OrderStatus) bool {
	if s == model.OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

func isTerminal(s model.OrderStatus) bool {
	return s == model.OrderStatusDelivered || s == model.OrderStatusCancelled
}

func isCancellable(s model.OrderStatus) bool {
	return s == model.OrderStatusPending || s == model.OrderStatusConfirmed
}

// OrderStatusUsecase governs order status transitions: customer
// cancellation and staff-side advancement. payment_status is a separate
// axis and is never touched here.
type OrderStatusUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	inventoryRepo repo.InventoryRepository
	staffRepo     repo.StaffRepository
	auditRepo     repo.AuditLogRepository
	logger        *zap.Logger
}

func NewOrderStatusUsecase(
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	inventoryRepo repo.InventoryRepository,
	staffRepo repo.StaffRepository,
	auditRepo repo.AuditLogRepository,
	logger *zap.Logger,
) *OrderStatusUsecase {
	return &OrderStatusUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		inventoryRepo: inventoryRepo,
		staffRepo:     staffRepo,
		auditRepo:     auditRepo,
		logger:        logger,
	}
}

// Cancel is the only transition a customer may perform, on their own
// order, while it is still pending or confirmed. Foreign orders read as
// not found.
func (u *OrderStatusUsecase) Cancel(ctx context.Context, userID int64, orderID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if !isCancellable(o.Status) {
		return NewHTTPError(http.StatusBadRequest, "order can no longer be cancelled")
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.restock(ctx, orderID)
	return nil
}

type UpdateStatusInput struct {
	Status string
}

// UpdateStatus is the staff-side transition. The caller needs a staff
// assignment with the orders capability on the order's tenant. Moves must
// go strictly forward along the chain; cancelled only from pending or
// confirmed; same-status is a no-op.
func (u *OrderStatusUsecase) UpdateStatus(ctx context.Context, actorUserID int64, orderID int64, in UpdateStatusInput) error {
	if actorUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	target := model.OrderStatus(in.Status)
	if !isKnownStatus(target) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	a, err := u.staffRepo.FindByUserAndTenant(ctx, actorUserID, o.TenantID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !a.CanOrders {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if o.Status == target {
		return nil
	}
	if isTerminal(o.Status) {
		return NewHTTPError(http.StatusBadRequest, "invalid transition")
	}

	if target == model.OrderStatusCancelled {
		if !isCancellable(o.Status) {
			return NewHTTPError(http.StatusBadRequest, "invalid transition")
		}
	} else if statusRank[target] <= statusRank[o.Status] {
		return NewHTTPError(http.StatusBadRequest, "invalid transition")
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, target); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if target == model.OrderStatusCancelled {
		u.restock(ctx, orderID)
	}

	beforeJSON := `{"status":"` + string(o.Status) + `"}`
	afterJSON := `{"status":"` + string(target) + `"}`
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
	}); err != nil {
		u.logger.Warn("audit log write failed",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
	}

	return nil
}

// restock returns the order's quantities to inventory after cancellation.
// Best effort: the cancellation stands even if a restock write fails.
func (u *OrderStatusUsecase) restock(ctx context.Context, orderID int64) {
	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		u.logger.Warn("restock skipped, could not list order items",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
		return
	}

	for _, it := range items {
		if err := u.inventoryRepo.IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
			u.logger.Warn("restock failed for product",
				zap.Int64("order_id", orderID),
				zap.Int64("product_id", it.ProductID),
				zap.Int64("quantity", it.Quantity),
				zap.Error(err),
			)
		}
	}
}
