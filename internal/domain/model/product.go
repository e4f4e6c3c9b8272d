package model

import (
	"time"

	"gorm.io/gorm"
)

// Price is in minor currency units (centimes).
type Product struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID      int64          `gorm:"not null;index" json:"tenant_id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	NameAr        string         `gorm:"type:varchar(255);column:name_ar" json:"name_ar"`
	NameFr        string         `gorm:"type:varchar(255);column:name_fr" json:"name_fr"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         int64          `gorm:"not null" json:"price"`
	StockQuantity int64          `gorm:"not null;column:stock_quantity" json:"stock_quantity"`
	IsActive      bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
