package main

import (
	"log"
	"strings"

	"github.com/bleep333/fake-shop-sub001/internal/admin"
	"github.com/bleep333/fake-shop-sub001/internal/auth"
	"github.com/bleep333/fake-shop-sub001/internal/catalog"
	"github.com/bleep333/fake-shop-sub001/internal/config"
	"github.com/bleep333/fake-shop-sub001/internal/database"
	"github.com/bleep333/fake-shop-sub001/internal/orders"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Get("/products", catalog.ListProductsHandler())
	api.Get("/products/:id", catalog.GetProductHandler())

	// Authenticated
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Cart
	protected.Get("/cart", catalog.GetCartHandler())
	protected.Post("/cart", catalog.AddCartItemHandler())
	protected.Put("/cart/:id", catalog.UpdateCartItemHandler())
	protected.Delete("/cart/:id", catalog.RemoveCartItemHandler())
	protected.Delete("/cart", catalog.ClearCartHandler())

	// Wishlist
	protected.Get("/wishlist", catalog.ListWishlistHandler())
	protected.Post("/wishlist", catalog.AddWishlistItemHandler())
	protected.Delete("/wishlist/:id", catalog.RemoveWishlistItemHandler())

	// Orders
	protected.Post("/orders", orders.CreateOrderHandler())
	protected.Get("/orders", orders.ListOrdersHandler())
	protected.Get("/orders/:id", orders.GetOrderHandler())
	protected.Get("/orders/:id/invoice", orders.OrderInvoiceHandler())

	// Admin panel
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireAdmin())

	adminRoutes.Get("/orders", admin.ListOrdersHandler())
	adminRoutes.Put("/orders/:id/status", admin.UpdateOrderStatusHandler())

	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())
	adminRoutes.Delete("/users/:id", admin.DeleteUserHandler())

	adminRoutes.Post("/products", catalog.CreateProductHandler())
	adminRoutes.Put("/products/:id", catalog.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler())

	adminRoutes.Post("/stock", admin.BulkStockUpdateHandler())
	adminRoutes.Get("/audit-logs", admin.ListAuditLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
