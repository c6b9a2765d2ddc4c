package models

import "time"

type WishlistItem struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	Product   *Product
	CreatedAt time.Time
}
