package catalog

import (
	"github.com/bleep333/fake-shop-sub001/internal/auth"
	"github.com/bleep333/fake-shop-sub001/internal/database"
	"github.com/bleep333/fake-shop-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

type WishlistItemResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

// GET /api/wishlist
func ListWishlistHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var items []models.WishlistItem
		if err := database.DB.
			Preload("Product").
			Where("user_id = ?", ident.UserID).
			Order("created_at DESC, id DESC").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load wishlist")
		}

		resp := make([]WishlistItemResponse, 0, len(items))
		for _, item := range items {
			r := WishlistItemResponse{ID: item.ID, ProductID: item.ProductID}
			if item.Product != nil {
				r.ProductName = item.Product.Name
				r.Price = item.Product.Price
				r.ImageURL = item.Product.ImageURL
			}
			resp = append(resp, r)
		}

		return c.JSON(resp)
	}
}

type AddWishlistItemRequest struct {
	ProductID uint `json:"product_id"`
}

// POST /api/wishlist
// Adding a product twice is a no-op.
func AddWishlistItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body AddWishlistItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id is required")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var existing models.WishlistItem
		err = database.DB.
			Where("user_id = ? AND product_id = ?", ident.UserID, body.ProductID).
			First(&existing).Error
		if err == nil {
			return c.JSON(fiber.Map{"id": existing.ID, "product_id": existing.ProductID})
		}

		item := models.WishlistItem{
			UserID:    ident.UserID,
			ProductID: body.ProductID,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not add wishlist item")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": item.ID, "product_id": item.ProductID})
	}
}

// DELETE /api/wishlist/:id
func RemoveWishlistItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Wishlist item id is invalid")
		}

		res := database.DB.Delete(&models.WishlistItem{}, "id = ? AND user_id = ?", id, ident.UserID)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not remove wishlist item")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Wishlist item not found")
		}

		return c.JSON(fiber.Map{"deleted": id})
	}
}
