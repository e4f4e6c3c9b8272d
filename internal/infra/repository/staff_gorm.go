package repository

import (
	"context"
	"errors"

	"souk/internal/domain/model"
	repo "souk/internal/repository"

	"gorm.io/gorm"
)

type StaffGormRepository struct {
	db *gorm.DB
}

func NewStaffGormRepository(db *gorm.DB) *StaffGormRepository {
	return &StaffGormRepository{db: db}
}

func (r *StaffGormRepository) FindByUserAndTenant(ctx context.Context, userID int64, tenantID int64) (model.StaffAssignment, error) {
	var a model.StaffAssignment

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		First(&a).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.StaffAssignment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.StaffAssignment{}, err
	}
	return a, nil
}
