package model

import "time"

// Tenant is one storefront. DeliveryFee and MinimumOrder are in minor
// currency units and drive the checkout totals for that store.
type Tenant struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug         string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	NameAr       string    `gorm:"type:varchar(255);column:name_ar" json:"name_ar"`
	NameFr       string    `gorm:"type:varchar(255);column:name_fr" json:"name_fr"`
	DeliveryFee  int64     `gorm:"not null;default:0" json:"delivery_fee"`
	MinimumOrder int64     `gorm:"not null;default:0" json:"minimum_order"`
	Currency     string    `gorm:"type:varchar(3);not null;default:'DZD'" json:"currency"`
	IsActive     bool      `gorm:"not null;default:false" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
