package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"unistay/internal/domain"
	"unistay/internal/service/auth"
)

const RequestContextKey = "request_context"

// AuthRequired validates the bearer token, reloads the user so role changes
// apply immediately, and stores a domain.RequestContext for handlers.
func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		user, err := authService.GetUserByID(c.UserContext(), claims.UserID)
		if err != nil || user == nil {
			return Unauthorized("User not found")
		}

		c.Locals(RequestContextKey, domain.RequestContext{
			UserID: user.ID,
			Role:   domain.UserRole(user.Role),
		})

		return c.Next()
	}
}

// GetRequestContext returns the caller stored by AuthRequired.
func GetRequestContext(c *fiber.Ctx) (domain.RequestContext, error) {
	rc, ok := c.Locals(RequestContextKey).(domain.RequestContext)
	if !ok {
		return domain.RequestContext{}, Unauthorized("User not found")
	}
	return rc, nil
}
