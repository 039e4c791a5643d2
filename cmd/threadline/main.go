package main

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"threadline/internal/config"
	"threadline/internal/http/handlers"
	applog "threadline/internal/log"
	"threadline/internal/media"
	"threadline/internal/repos"
	"threadline/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()
	applog.Init(zl)

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		zl.Fatal("open db", zap.Error(err))
	}

	// Admin gate wiring
	authSvc, err := services.NewAuthService(cfg.AdminPassword, cfg.SessionTTL)
	if err != nil {
		zl.Fatal("auth init", zap.Error(err))
	}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard (covers image uploads)
	app.Server().MaxRequestBodySize = 5 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Flag admitted admin sessions for templates/headers
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("admin_sid"); sid != "" && authSvc.Admitted(sid) {
			c.Locals("admin", true)
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			// The JSON API is gated by the admin session, not CSRF forms.
			return strings.HasPrefix(c.Path(), "/api/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaStore := media.NewStore(cfg.MediaDir)
	zl.Info("static mounts", zap.String("static", "./web/static"), zap.String("media", mediaStore.Dir))

	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		full, ok := mediaStore.Resolve(c.Params("*"))
		if !ok {
			applog.Security(c, "media.traversal.block", map[string]any{"path": c.Params("*")})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(full, true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	// Storefront. /search serves the same filtered grid for direct links.
	app.Get("/", deps.ShopHandler.Home)
	app.Get("/search", deps.ShopHandler.Home)
	app.Get("/product/:id", deps.ShopHandler.Detail)

	// Cart
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/increase", deps.CartHandler.Increase)
	app.Post("/cart/decrease", deps.CartHandler.Decrease)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/cart/clear", deps.CartHandler.Clear)

	// Checkout -> WhatsApp deep link
	app.Get("/checkout", deps.CheckoutHandler.Form)
	app.Post("/checkout", deps.CheckoutHandler.Place)

	// JSON API (catalog store boundary)
	api := app.Group("/api/v1")
	api.Get("/products", deps.APIHandler.List)
	api.Post("/products", handlers.RequireAdmin(authSvc), deps.APIHandler.Create)
	api.Put("/products/:id", handlers.RequireAdmin(authSvc), deps.APIHandler.Update)
	api.Delete("/products/:id", handlers.RequireAdmin(authSvc), deps.APIHandler.Delete)

	// Admin auth (login throttled)
	app.Get("/admin/login", authH.LoginForm)
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("admin_login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/admin/logout", authH.Logout)

	// Admin CRUD
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/products/new", deps.AdminHandler.NewForm)
	admin.Get("/products/:id/edit", deps.AdminHandler.EditForm)
	admin.Post("/products", deps.AdminHandler.Create)
	admin.Post("/products/:id", deps.AdminHandler.Update)
	admin.Post("/products/:id/delete", deps.AdminHandler.Delete)
	admin.Post("/upload", deps.AdminHandler.Upload)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	zl.Info("listening", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		zl.Fatal("serve", zap.Error(err))
	}
}
