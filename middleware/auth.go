// middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the authenticated user identity set
// by the Gateway. Authentication itself happens upstream; the engine
// only ever sees pre-validated ids.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		var roles []string
		for _, r := range strings.Split(c.Get("X-User-Roles"), ",") {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}

		c.Locals("user_id", userID)
		c.Locals("user_roles", roles)
		return c.Next()
	}
}

// RequireAdmin guards admin-only routes on the roles forwarded by the
// Gateway.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals("user_roles").([]string)
		for _, r := range roles {
			if r == "admin" {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "admin role required",
		})
	}
}
