package catalog

import (
	"github.com/bleep333/fake-shop-sub001/internal/auth"
	"github.com/bleep333/fake-shop-sub001/internal/database"
	"github.com/bleep333/fake-shop-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CartItemResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
}

func toCartItemResponse(item models.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Size:      item.Size,
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		resp.ProductName = item.Product.Name
		resp.Price = item.Product.Price
	}
	return resp
}

// GET /api/cart
func GetCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var items []models.CartItem
		if err := database.DB.
			Preload("Product").
			Where("user_id = ?", ident.UserID).
			Order("created_at DESC, id DESC").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load cart")
		}

		resp := make([]CartItemResponse, 0, len(items))
		total := 0.0
		for _, item := range items {
			resp = append(resp, toCartItemResponse(item))
			if item.Product != nil {
				total += item.Product.Price * float64(item.Quantity)
			}
		}

		return c.JSON(fiber.Map{
			"items": resp,
			"total": total,
		})
	}
}

type AddCartItemRequest struct {
	ProductID uint   `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// POST /api/cart
// Adding an already-present (product, size) pair bumps its quantity.
func AddCartItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body AddCartItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ProductID == 0 || body.Size == "" || body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id, size and a positive quantity are required")
		}

		var size models.ProductSize
		if err := database.DB.
			Where("product_id = ? AND size = ?", body.ProductID, body.Size).
			First(&size).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product size not found")
		}

		var item models.CartItem
		err = database.DB.
			Where("user_id = ? AND product_id = ? AND size = ?", ident.UserID, body.ProductID, body.Size).
			First(&item).Error
		if err == nil {
			item.Quantity += body.Quantity
			if err := database.DB.Save(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not update cart item")
			}
		} else {
			item = models.CartItem{
				UserID:    ident.UserID,
				ProductID: body.ProductID,
				Size:      body.Size,
				Quantity:  body.Quantity,
			}
			if err := database.DB.Create(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not add cart item")
			}
		}

		database.DB.Preload("Product").First(&item, item.ID)
		return c.Status(fiber.StatusCreated).JSON(toCartItemResponse(item))
	}
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// PUT /api/cart/:id
func UpdateCartItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cart item id is invalid")
		}

		var body UpdateCartItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity must be positive")
		}

		var item models.CartItem
		if err := database.DB.
			Where("id = ? AND user_id = ?", id, ident.UserID).
			First(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cart item not found")
		}

		item.Quantity = body.Quantity
		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update cart item")
		}

		database.DB.Preload("Product").First(&item, item.ID)
		return c.JSON(toCartItemResponse(item))
	}
}

// DELETE /api/cart/:id
func RemoveCartItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cart item id is invalid")
		}

		res := database.DB.Delete(&models.CartItem{}, "id = ? AND user_id = ?", id, ident.UserID)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not remove cart item")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Cart item not found")
		}

		return c.JSON(fiber.Map{"deleted": id})
	}
}

// DELETE /api/cart
func ClearCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(&models.CartItem{}, "user_id = ?", ident.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not clear cart")
		}

		return c.JSON(fiber.Map{"cleared": true})
	}
}
