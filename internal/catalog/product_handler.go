package catalog

import (
	"strings"

	"github.com/bleep333/fake-shop-sub001/internal/database"
	"github.com/bleep333/fake-shop-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductSizeResponse struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

type ProductResponse struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Price       float64               `json:"price"`
	ImageURL    string                `json:"image_url"`
	Sizes       []ProductSizeResponse `json:"sizes"`
}

func toProductResponse(p models.Product) ProductResponse {
	sizes := make([]ProductSizeResponse, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, ProductSizeResponse{Size: s.Size, Stock: s.Stock})
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Sizes:       sizes,
	}
}

// GET /api/products?category=shirts&search=tee
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{}).Preload("Sizes")

		if category := c.Query("category"); category != "" {
			dbq = dbq.Where("category = ?", category)
		}
		if search := c.Query("search"); search != "" {
			needle := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
		}

		var products []models.Product
		if err := dbq.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}
		return c.JSON(resp)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Product id is invalid")
		}

		var product models.Product
		if err := database.DB.Preload("Sizes").First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		return c.JSON(toProductResponse(product))
	}
}

type ProductRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Price       float64        `json:"price"`
	ImageURL    string         `json:"image_url"`
	Sizes       map[string]int `json:"sizes"` // size -> initial stock
}

// POST /api/admin/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name == "" || body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required, price cannot be negative")
		}

		product := models.Product{
			Name:        body.Name,
			Description: body.Description,
			Category:    body.Category,
			Price:       body.Price,
			ImageURL:    body.ImageURL,
		}
		for size, stock := range body.Sizes {
			if size == "" || stock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Sizes must have a name and non-negative stock")
			}
			product.Sizes = append(product.Sizes, models.ProductSize{Size: size, Stock: stock})
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create product")
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Product id is invalid")
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" || body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required, price cannot be negative")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		product.Name = body.Name
		product.Description = body.Description
		product.Category = body.Category
		product.Price = body.Price
		product.ImageURL = body.ImageURL

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}

		database.DB.Preload("Sizes").First(&product, product.ID)
		return c.JSON(toProductResponse(product))
	}
}

// DELETE /api/admin/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Product id is invalid")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var orderItemCount int64
		database.DB.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&orderItemCount)
		if orderItemCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Product is referenced by orders and cannot be deleted")
		}

		tx := database.DB.Begin()
		if err := tx.Delete(&models.ProductSize{}, "product_id = ?", id).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product sizes")
		}
		if err := tx.Delete(&models.CartItem{}, "product_id = ?", id).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Could not clean cart references")
		}
		if err := tx.Delete(&models.WishlistItem{}, "product_id = ?", id).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Could not clean wishlist references")
		}
		if err := tx.Delete(&product).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}
		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}

		return c.JSON(fiber.Map{"deleted": product.ID})
	}
}
