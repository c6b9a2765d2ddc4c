package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;index"`
	User      *User
	Reference string      `gorm:"size:36;uniqueIndex;not null"`
	Status    OrderStatus `gorm:"size:20;not null;index"`
	Total     float64     `gorm:"not null"`
	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"not null;index"`
	ProductID uint `gorm:"not null"`
	Product   *Product
	Size      string  `gorm:"size:10;not null"`
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"` // price at checkout time
	CreatedAt time.Time
}
