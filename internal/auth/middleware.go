package auth

import (
	"strings"

	"github.com/bleep333/fake-shop-sub001/internal/config"

	"github.com/gofiber/fiber/v2"
)

const CtxIdentityKey = "identity"

// JWTMiddleware resolves the caller's identity from the Authorization
// header and requires CapabilityAuthenticated. The resolved *Identity is
// stored in locals for downstream handlers.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization format must be 'Bearer <token>'")
		}

		ident := ResolveIdentity(cfg.JWTSecret, parts[1])
		if Authorize(ident, CapabilityAuthenticated) != Allow {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(CtxIdentityKey, ident)
		return c.Next()
	}
}

// RequireAdmin gates a route group behind CapabilityAdmin. Must run after
// JWTMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := c.Locals(CtxIdentityKey).(*Identity)
		switch Authorize(ident, CapabilityAdmin) {
		case Allow:
			return c.Next()
		case DenyUnauthenticated:
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		default:
			return fiber.NewError(fiber.StatusForbidden, "Admin access required")
		}
	}
}

// CurrentIdentity returns the identity stored by JWTMiddleware.
func CurrentIdentity(c *fiber.Ctx) (*Identity, error) {
	ident, ok := c.Locals(CtxIdentityKey).(*Identity)
	if !ok || ident == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
	return ident, nil
}
