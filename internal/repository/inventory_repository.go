package repository

import (
	"context"

	"souk/internal/domain/model"
)

type InventoryRepository interface {
	// Set the current stock level.
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// Conditional decrement: only applies when enough stock remains.
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// Restock (cancellation).
	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
