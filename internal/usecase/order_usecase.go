package usecase

import (
	"context"
	"net/http"
	"time"

	"souk/internal/domain/model"
	repo "souk/internal/repository"
)

type OrderUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	staffRepo     repo.StaffRepository
}

func NewOrderUsecase(
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	staffRepo repo.StaffRepository,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		staffRepo:     staffRepo,
	}
}

type OrderItemOutput struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	TotalPrice  int64  `json:"total_price"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	TenantID        int64             `json:"tenant_id"`
	OrderNumber     string            `json:"order_number"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	DeliveryAddress string            `json:"delivery_address"`
	DeliveryFee     int64             `json:"delivery_fee"`
	Subtotal        int64             `json:"subtotal"`
	Total           int64             `json:"total"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, tenantID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if tenantID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid tenant_id")
	}

	orders, _, err := u.orderRepo.ListByUserAndTenant(ctx, userID, tenantID, 1, 50)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		// foreign orders read as not found
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toOrderOutput(o, items), nil
}

type StaffOrderListInput struct {
	TenantID int64
	Page     int
	Limit    int
	Status   string
}

// ListStaff needs the orders capability on the tenant.
func (u *OrderUsecase) ListStaff(ctx context.Context, actorUserID int64, in StaffOrderListInput) ([]OrderOutput, error) {
	if actorUserID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.TenantID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid tenant_id")
	}
	if in.Page < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.Status != "" && !isKnownStatus(model.OrderStatus(in.Status)) {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	a, err := u.staffRepo.FindByUserAndTenant(ctx, actorUserID, in.TenantID)
	if err == repo.ErrNotFound {
		return []OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !a.CanOrders {
		return []OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	orders, _, err := u.orderRepo.ListStaff(ctx, repo.StaffOrderListFilter{
		TenantID: in.TenantID,
		Page:     in.Page,
		Limit:    in.Limit,
		Status:   in.Status,
	})
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}
	return outs, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			TotalPrice:  it.TotalPrice,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		TenantID:        o.TenantID,
		OrderNumber:     o.OrderNumber,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryFee:     o.DeliveryFee,
		Subtotal:        o.Subtotal,
		Total:           o.Total,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
