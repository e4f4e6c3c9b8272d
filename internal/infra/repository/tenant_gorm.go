package repository

import (
	"context"
	"errors"

	"souk/internal/domain/model"
	repo "souk/internal/repository"

	"gorm.io/gorm"
)

type TenantGormRepository struct {
	db *gorm.DB
}

func NewTenantGormRepository(db *gorm.DB) *TenantGormRepository {
	return &TenantGormRepository{db: db}
}

func (r *TenantGormRepository) FindByID(ctx context.Context, id int64) (model.Tenant, error) {
	var t model.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Tenant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Tenant{}, err
	}
	return t, nil
}

func (r *TenantGormRepository) FindBySlug(ctx context.Context, slug string) (model.Tenant, error) {
	var t model.Tenant
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Tenant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Tenant{}, err
	}
	return t, nil
}
