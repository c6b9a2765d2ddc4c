package admin

import (
	"errors"
	"fmt"

	"github.com/bleep333/fake-shop-sub001/internal/audit"
	"github.com/bleep333/fake-shop-sub001/internal/auth"
	"github.com/bleep333/fake-shop-sub001/internal/database"
	"github.com/bleep333/fake-shop-sub001/internal/inventory"
	"github.com/bleep333/fake-shop-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BulkStockRequest struct {
	Updates []inventory.StockUpdateEntry `json:"updates"`
}

// POST /api/admin/stock
// All products in the batch are updated atomically; a single missing
// product fails the whole request.
func BulkStockUpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body BulkStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		count, err := inventory.ApplyStockBatch(database.DB, body.Updates)
		if err != nil {
			switch {
			case errors.Is(err, inventory.ErrEmptyBatch), errors.Is(err, inventory.ErrBadEntry):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, inventory.ErrProductNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Could not apply stock batch")
			}
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      ident.UserID,
			UserName:    ident.Email,
			EntityType:  "stock_batch",
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Bulk stock update: %d products", count),
			After:       body.Updates,
		}); logErr != nil {
			fmt.Printf("Could not write audit log: %v\n", logErr)
		}

		return c.JSON(fiber.Map{"updated": count})
	}
}
