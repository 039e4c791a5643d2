package handlers

import (
	"github.com/jmoiron/sqlx"

	"threadline/internal/cart"
	"threadline/internal/checkout"
	"threadline/internal/config"
	"threadline/internal/media"
	"threadline/internal/repos"
	"threadline/internal/services"
)

type Deps struct {
	ShopHandler     *ShopHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	AdminHandler    *AdminHandler
	APIHandler      *APIHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	carts := cart.NewStore()
	mediaStore := media.NewStore(cfg.MediaDir)

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(carts, prodRepo)
	checkoutSvc := services.NewCheckoutService(carts,
		checkout.Options{FlatFee: cfg.ShippingFee, FreeThreshold: cfg.FreeShippingMin},
		cfg.WhatsAppNumber)
	adminSvc := services.NewAdminService(prodRepo, catalogSvc)

	return &Deps{
		ShopHandler:     &ShopHandler{Catalog: catalogSvc, Cart: cartSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		CheckoutHandler: &CheckoutHandler{Cart: cartSvc, Checkout: checkoutSvc},
		AdminHandler:    &AdminHandler{Admin: adminSvc, Catalog: catalogSvc, Media: mediaStore},
		APIHandler:      &APIHandler{Catalog: catalogSvc, Admin: adminSvc},
	}
}
