package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "threadline/internal/log"
	"threadline/internal/services"
)

// RequireAdmin gates the admin surface on the shared-password session.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("admin_sid")
		if !auth.Admitted(sid) {
			applog.Security(c, "access.denied.admin", nil)
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
			}
			return c.Redirect("/admin/login")
		}
		c.Locals("admin", true)
		return c.Next()
	}
}
