package admin

import (
	"github.com/bleep333/fake-shop-sub001/internal/database"
	"github.com/bleep333/fake-shop-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/audit-logs?entity_type=order
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC, id DESC").Limit(200).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list audit logs")
		}

		return c.JSON(logs)
	}
}
