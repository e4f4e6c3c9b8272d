package model

import "time"

// StaffAssignment attaches a staff user to one tenant with an explicit
// capability set. Mutating admin entry points check the matching flag;
// there is no role inheritance.
type StaffAssignment struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"not null;uniqueIndex:idx_staff_tenant" json:"user_id"`
	TenantID     int64     `gorm:"not null;uniqueIndex:idx_staff_tenant" json:"tenant_id"`
	CanProducts  bool      `gorm:"not null;default:false" json:"can_products"`
	CanOrders    bool      `gorm:"not null;default:false" json:"can_orders"`
	CanCustomers bool      `gorm:"not null;default:false" json:"can_customers"`
	CanSettings  bool      `gorm:"not null;default:false" json:"can_settings"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
