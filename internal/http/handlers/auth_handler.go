package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "threadline/internal/log"
	"threadline/internal/services"
	"threadline/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "admin_login", fiber.Map{"Err": ""})
}

// Login checks the shared admin password; there are no per-user accounts.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	pass := c.FormValue("password")
	if !validate.Password(pass) {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("admin_login", fiber.Map{"Err": "Invalid password"})
	}

	sid, err := h.Auth.Login(pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", nil)
		return c.Status(fiber.StatusUnauthorized).Render("admin_login", fiber.Map{"Err": "Invalid password"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "admin_sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // set true behind TLS
	})
	applog.Audit(c, "auth.login.success", nil)
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("admin_sid"); sid != "" {
		h.Auth.Logout(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "admin_sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}
