package orders

import (
	"fmt"

	"github.com/bleep333/fake-shop-sub001/internal/auth"
	"github.com/bleep333/fake-shop-sub001/internal/database"
	"github.com/bleep333/fake-shop-sub001/internal/models"
	"github.com/bleep333/fake-shop-sub001/internal/scope"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type OrderResponse struct {
	ID        uint                `json:"id"`
	Reference string              `json:"reference"`
	UserID    uint                `json:"user_id"`
	Status    models.OrderStatus  `json:"status"`
	Total     float64             `json:"total"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt string              `json:"created_at"`
}

func ToOrderResponse(o models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		r := OrderItemResponse{
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		if item.Product != nil {
			r.ProductName = item.Product.Name
		}
		items = append(items, r)
	}
	return OrderResponse{
		ID:        o.ID,
		Reference: o.Reference,
		UserID:    o.UserID,
		Status:    o.Status,
		Total:     o.Total,
		Items:     items,
		CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/orders
// Turns the caller's cart into an order: order row, items, per-size stock
// decrement and cart clear all commit together or not at all.
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, ident.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		var cartItems []models.CartItem
		if err := database.DB.
			Preload("Product").
			Where("user_id = ?", ident.UserID).
			Find(&cartItems).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load cart")
		}
		if len(cartItems) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cart is empty")
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not start checkout")
		}

		order := models.Order{
			UserID:    ident.UserID,
			Reference: uuid.NewString(),
			Status:    models.OrderStatusPending,
		}

		for _, item := range cartItems {
			if item.Product == nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusNotFound, "Product in cart no longer exists")
			}

			var size models.ProductSize
			if err := tx.
				Where("product_id = ? AND size = ?", item.ProductID, item.Size).
				First(&size).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusNotFound, "Product size in cart no longer exists")
			}
			if size.Stock < item.Quantity {
				tx.Rollback()
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Not enough stock for %s size %s", item.Product.Name, item.Size))
			}

			if err := tx.Model(&models.ProductSize{}).
				Where("id = ?", size.ID).
				Update("stock", size.Stock-item.Quantity).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "Could not reserve stock")
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: item.ProductID,
				Size:      item.Size,
				Quantity:  item.Quantity,
				UnitPrice: item.Product.Price,
			})
			order.Total += item.Product.Price * float64(item.Quantity)
		}

		if err := tx.Create(&order).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create order")
		}

		if err := tx.Delete(&models.CartItem{}, "user_id = ?", ident.UserID).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Could not clear cart")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not complete checkout")
		}

		database.DB.Preload("Items.Product").First(&order, order.ID)
		return c.Status(fiber.StatusCreated).JSON(ToOrderResponse(order))
	}
}

// GET /api/orders?status=paid&from=2026-01-01&to=2026-01-31
// Non-admin callers only ever see their own orders, whatever filters they
// send; admins can pass owner_id to inspect a single user.
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, ident.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
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

		var orders []models.Order
		if err := pred.Apply(database.DB.Model(&models.Order{})).
			Preload("Items.Product").
			Order("created_at DESC, id DESC").
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list orders")
		}

		resp := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, ToOrderResponse(o))
		}
		return c.JSON(resp)
	}
}

// GET /api/orders/:id
// A non-admin asking for someone else's order gets 404, not 403, so the
// response does not reveal whether the order exists.
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		order, err := loadOwnedOrder(c, ident)
		if err != nil {
			return err
		}

		return c.JSON(ToOrderResponse(*order))
	}
}

// GET /api/orders/:id/invoice
func OrderInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		order, err := loadOwnedOrder(c, ident)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, order.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		pdfBytes, filename, err := BuildInvoicePDF(*order, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate invoice")
		}

		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(pdfBytes)
	}
}

func loadOwnedOrder(c *fiber.Ctx, ident *auth.Identity) (*models.Order, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Order id is invalid")
	}

	var order models.Order
	if err := database.DB.
		Preload("Items.Product").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Order not found")
	}

	if !ident.IsAdmin && order.UserID != ident.UserID {
		return nil, fiber.NewError(fiber.StatusNotFound, "Order not found")
	}

	return &order, nil
}
