package repository

import (
	"context"
	"errors"

	"souk/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type ProductListQuery struct {
	TenantID int64
	Page     int
	Limit    int
	Q        string
	Sort     string
}

// Persistence only; stock mutation lives in InventoryRepository.
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
