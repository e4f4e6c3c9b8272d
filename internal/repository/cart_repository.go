package repository

import (
	"context"

	"souk/internal/domain/model"
)

type CartRepository interface {
	ListByUserAndTenant(ctx context.Context, userID int64, tenantID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, lineID int64) (model.CartItem, error)

	// Merge-on-add: an existing line for the same product gains quantity,
	// otherwise a new line is created.
	UpsertLine(ctx context.Context, userID int64, tenantID int64, productID int64, addQty int64) error
	UpdateQuantity(ctx context.Context, lineID int64, qty int64) error
	DeleteByID(ctx context.Context, lineID int64) error
	ClearByUserAndTenant(ctx context.Context, userID int64, tenantID int64) error
}
