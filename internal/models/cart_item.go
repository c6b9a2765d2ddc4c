package models

import "time"

type CartItem struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_product_size"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_user_product_size"`
	Product   *Product
	Size      string `gorm:"size:10;not null;uniqueIndex:idx_cart_user_product_size"`
	Quantity  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
