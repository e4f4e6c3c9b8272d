package repository

import (
	"context"

	"souk/internal/domain/model"
)

type StaffRepository interface {
	// ErrNotFound when the user has no assignment on the tenant.
	FindByUserAndTenant(ctx context.Context, userID int64, tenantID int64) (model.StaffAssignment, error)
}
