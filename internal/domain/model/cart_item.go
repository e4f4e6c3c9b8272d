package model

import "time"

// CartItem is one line of a user's cart in one store.
// At most one line per (user, tenant, product); quantity is always > 0
// while the line exists.
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_cart_line" json:"user_id"`
	TenantID  int64     `gorm:"not null;uniqueIndex:idx_cart_line;index" json:"tenant_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_line" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
