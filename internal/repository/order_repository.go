package repository

import (
	"context"
	"time"

	"souk/internal/domain/model"
)

type StaffOrderListFilter struct {
	TenantID int64
	Page     int
	Limit    int
	Status   string
	From     *time.Time
	To       *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserAndTenant(ctx context.Context, userID int64, tenantID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// Compensating delete for a failed item insert; the one place an order
	// row is ever removed.
	DeleteByID(ctx context.Context, orderID int64) error

	ListStaff(ctx context.Context, f StaffOrderListFilter) ([]model.Order, int64, error)
}
