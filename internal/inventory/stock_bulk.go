package inventory

import (
	"errors"
	"sort"

	"github.com/bleep333/fake-shop-sub001/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEmptyBatch      = errors.New("stock batch is empty")
	ErrBadEntry        = errors.New("stock batch entry is malformed")
	ErrProductNotFound = errors.New("product in stock batch not found")
)

// StockUpdateEntry sets the absolute per-size stock counts for one
// product.
type StockUpdateEntry struct {
	ProductID   uint           `json:"product_id"`
	StockBySize map[string]int `json:"stock_by_size"`
}

// ApplyStockBatch applies every entry inside one transaction: either all
// products are updated or none are. A missing product fails the whole
// batch with ErrProductNotFound. Returns the number of products updated.
func ApplyStockBatch(db *gorm.DB, batch []StockUpdateEntry) (int, error) {
	if len(batch) == 0 {
		return 0, ErrEmptyBatch
	}
	for _, entry := range batch {
		if entry.ProductID == 0 || len(entry.StockBySize) == 0 {
			return 0, ErrBadEntry
		}
		for size, qty := range entry.StockBySize {
			if size == "" || qty < 0 {
				return 0, ErrBadEntry
			}
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	for _, entry := range batch {
		var product models.Product
		if err := tx.First(&product, "id = ?", entry.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrProductNotFound
			}
			return 0, err
		}

		// Deterministic write order across the map.
		sizes := make([]string, 0, len(entry.StockBySize))
		for size := range entry.StockBySize {
			sizes = append(sizes, size)
		}
		sort.Strings(sizes)

		for _, size := range sizes {
			qty := entry.StockBySize[size]

			res := tx.Model(&models.ProductSize{}).
				Where("product_id = ? AND size = ?", entry.ProductID, size).
				Update("stock", qty)
			if res.Error != nil {
				tx.Rollback()
				return 0, res.Error
			}
			if res.RowsAffected == 0 {
				row := models.ProductSize{
					ProductID: entry.ProductID,
					Size:      size,
					Stock:     qty,
				}
				if err := tx.Create(&row).Error; err != nil {
					tx.Rollback()
					return 0, err
				}
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	return len(batch), nil
}
