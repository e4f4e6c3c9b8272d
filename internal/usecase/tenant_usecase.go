package usecase

import (
	"context"
	"net/http"
	"strings"

	"souk/internal/domain/model"
	repo "souk/internal/repository"
)

// TenantUsecase resolves storefronts. Tenant policy (delivery fee,
// minimum order, currency) is read-only here.
type TenantUsecase struct {
	tenantRepo repo.TenantRepository
}

func NewTenantUsecase(tenantRepo repo.TenantRepository) *TenantUsecase {
	return &TenantUsecase{tenantRepo: tenantRepo}
}

func (u *TenantUsecase) GetBySlug(ctx context.Context, slug string) (model.Tenant, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return model.Tenant{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	t, err := u.tenantRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return model.Tenant{}, NewHTTPError(http.StatusNotFound, "store not found")
	}
	if err != nil {
		return model.Tenant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !t.IsActive {
		return model.Tenant{}, NewHTTPError(http.StatusNotFound, "store not found")
	}

	return t, nil
}
