package middleware

import (
	"github.com/gofiber/fiber/v2"

	"unistay/internal/domain"
)

// RequireRole allows callers whose role is at least required, using the
// student < owner < admin order.
func RequireRole(required domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, err := GetRequestContext(c)
		if err != nil {
			return err
		}

		user := domain.User{Role: string(rc.Role)}
		if !user.HasRole(string(required)) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
