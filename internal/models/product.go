package models

import "time"

type Product struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null;unique"`
	Description string  `gorm:"size:1000"`
	Category    string  `gorm:"size:50;index"`
	Price       float64 `gorm:"not null"`
	ImageURL    string  `gorm:"size:255"`
	Sizes       []ProductSize
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductSize holds the stock count for one size of a product.
// One row per (product, size) pair.
type ProductSize struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_product_size"`
	Size      string `gorm:"size:10;not null;uniqueIndex:idx_product_size"`
	Stock     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
