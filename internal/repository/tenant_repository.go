package repository

import (
	"context"

	"souk/internal/domain/model"
)

type TenantRepository interface {
	FindByID(ctx context.Context, id int64) (model.Tenant, error)
	FindBySlug(ctx context.Context, slug string) (model.Tenant, error)
}
