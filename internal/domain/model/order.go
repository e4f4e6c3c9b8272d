package model

import "time"

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Amounts are in minor currency units (centimes).
// payment_status is independent of status: a delivered cash-on-delivery
// order can still be payment pending.
type Order struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID        int64         `gorm:"not null;index" json:"tenant_id"`
	UserID          int64         `gorm:"not null;index" json:"user_id"`
	OrderNumber     string        `gorm:"type:varchar(50);not null;uniqueIndex" json:"order_number"`
	Status          OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`
	CustomerName    string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone   string        `gorm:"type:varchar(30);not null" json:"customer_phone"`
	CustomerEmail   string        `gorm:"type:varchar(255)" json:"customer_email"`
	DeliveryAddress string        `gorm:"type:text;not null" json:"delivery_address"`
	DeliveryFee     int64         `gorm:"not null" json:"delivery_fee"`
	Subtotal        int64         `gorm:"not null" json:"subtotal"`
	Total           int64         `gorm:"not null" json:"total"`
	Notes           string        `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
