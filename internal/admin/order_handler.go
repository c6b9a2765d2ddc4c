package admin

import (
	"fmt"

	"github.com/bleep333/fake-shop-sub001/internal/audit"
	"github.com/bleep333/fake-shop-sub001/internal/auth"
	"github.com/bleep333/fake-shop-sub001/internal/database"
	"github.com/bleep333/fake-shop-sub001/internal/models"
	"github.com/bleep333/fake-shop-sub001/internal/orders"
	"github.com/bleep333/fake-shop-sub001/internal/scope"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/orders?status=paid&owner_id=3&from=2026-01-01&to=2026-01-31
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		spec, err := scope.ParseFilterSpec(
			c.Query("status"),
			c.Query("owner_id"),
			c.Query("from"),
			c.Query("to"),
			"",
		)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		pred := scope.Build(spec, *ident)

		var orderRows []models.Order
		if err := pred.Apply(database.DB.Model(&models.Order{})).
			Preload("User").
			Preload("Items.Product").
			Order("created_at DESC, id DESC").
			Find(&orderRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list orders")
		}

		type adminOrderResponse struct {
			orders.OrderResponse
			OwnerEmail string `json:"owner_email"`
		}

		resp := make([]adminOrderResponse, 0, len(orderRows))
		for _, o := range orderRows {
			row := adminOrderResponse{OrderResponse: orders.ToOrderResponse(o)}
			if o.User != nil {
				row.OwnerEmail = o.User.Email
			}
			resp = append(resp, row)
		}
		return c.JSON(resp)
	}
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// PUT /api/admin/orders/:id/status
func UpdateOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Order id is invalid")
		}

		var body UpdateOrderStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		switch body.Status {
		case models.OrderStatusPending, models.OrderStatusPaid,
			models.OrderStatusShipped, models.OrderStatusDelivered,
			models.OrderStatusCancelled:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Invalid status (pending|paid|shipped|delivered|cancelled)")
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		before := order.Status
		order.Status = body.Status
		if err := database.DB.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update order status")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      ident.UserID,
			UserName:    ident.Email,
			EntityType:  "order",
			EntityID:    order.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Order %s status: %s -> %s", order.Reference, before, order.Status),
			Before:      fiber.Map{"status": before},
			After:       fiber.Map{"status": order.Status},
		}); logErr != nil {
			fmt.Printf("Could not write audit log: %v\n", logErr)
		}

		return c.JSON(fiber.Map{
			"id":     order.ID,
			"status": order.Status,
		})
	}
}
