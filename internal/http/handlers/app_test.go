package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"threadline/internal/config"
	"threadline/internal/http/handlers"
	"threadline/internal/repos"
	"threadline/internal/services"
)

const testAdminPassword = "opensesame123"

// newTestApp wires the routes the way the server does, against a seeded
// in-memory database.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{
		DBDSN:           ":memory:",
		MediaDir:        t.TempDir(),
		AdminPassword:   testAdminPassword,
		SessionTTL:      time.Hour,
		WhatsAppNumber:  "923001234567",
		ShippingFee:     150,
		FreeShippingMin: 1000,
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	authSvc, err := services.NewAuthService(cfg.AdminPassword, cfg.SessionTTL)
	if err != nil {
		t.Fatalf("auth init: %v", err)
	}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("admin_sid"); sid != "" && authSvc.Admitted(sid) {
			c.Locals("admin", true)
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{Max: 1000, Expiration: time.Minute}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}))

	deps := handlers.NewDeps(db, cfg, authSvc)

	app.Get("/", deps.ShopHandler.Home)
	app.Get("/product/:id", deps.ShopHandler.Detail)

	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/increase", deps.CartHandler.Increase)
	app.Post("/cart/decrease", deps.CartHandler.Decrease)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/cart/clear", deps.CartHandler.Clear)

	app.Get("/checkout", deps.CheckoutHandler.Form)
	app.Post("/checkout", deps.CheckoutHandler.Place)

	api := app.Group("/api/v1")
	api.Get("/products", deps.APIHandler.List)
	api.Post("/products", handlers.RequireAdmin(authSvc), deps.APIHandler.Create)
	api.Put("/products/:id", handlers.RequireAdmin(authSvc), deps.APIHandler.Update)
	api.Delete("/products/:id", handlers.RequireAdmin(authSvc), deps.APIHandler.Delete)

	app.Get("/admin/login", authH.LoginForm)
	app.Post("/admin/login", authH.Login)
	app.Post("/admin/logout", authH.Logout)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/products/new", deps.AdminHandler.NewForm)
	admin.Get("/products/:id/edit", deps.AdminHandler.EditForm)
	admin.Post("/products", deps.AdminHandler.Create)
	admin.Post("/products/:id", deps.AdminHandler.Update)
	admin.Post("/products/:id/delete", deps.AdminHandler.Delete)

	return app
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// mintCSRF performs a GET so the middleware issues a token cookie.
func mintCSRF(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/admin/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := cookieValue(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

func formPost(path, body string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// adminLogin returns an admitted admin session cookie.
func adminLogin(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	tok := mintCSRF(t, app)
	resp, err := app.Test(formPost("/admin/login",
		"csrf="+tok+"&password="+testAdminPassword,
		&http.Cookie{Name: "csrf_", Value: tok}))
	if err != nil {
		t.Fatal(err)
	}
	sid := cookieValue(resp, "admin_sid")
	if sid == "" {
		t.Fatalf("login did not set admin session, status %d", resp.StatusCode)
	}
	return &http.Cookie{Name: "admin_sid", Value: sid}
}
