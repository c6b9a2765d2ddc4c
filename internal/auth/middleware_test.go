package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/bleep333/fake-shop-sub001/internal/config"
	"github.com/bleep333/fake-shop-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareStatusMapping(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}

	app := fiber.New()
	app.Use(JWTMiddleware(cfg))
	adminGroup := app.Group("/admin", RequireAdmin())
	adminGroup.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	memberToken, err := GenerateToken(testSecret, &models.User{ID: 1, Email: "member@shop.test"})
	require.NoError(t, err)
	adminToken, err := GenerateToken(testSecret, &models.User{ID: 2, Email: "admin@shop.test", IsAdmin: true})
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"not a bearer token", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", fiber.StatusUnauthorized},
		{"member on admin route", "Bearer " + memberToken, fiber.StatusForbidden},
		{"admin on admin route", "Bearer " + adminToken, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin/ping", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
