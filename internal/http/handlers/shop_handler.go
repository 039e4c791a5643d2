package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"threadline/internal/catalog"
	"threadline/internal/domain"
	applog "threadline/internal/log"
	"threadline/internal/services"
	"threadline/internal/validate"
)

type ShopHandler struct {
	Catalog *services.CatalogService
	Cart    *services.CartService
}

// criteriaFromQuery builds filter criteria from query params, rejecting
// malformed values rather than silently ignoring them.
func criteriaFromQuery(c *fiber.Ctx) (catalog.Criteria, string, bool) {
	var cr catalog.Criteria

	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		cr.Category = domain.Category(cat)
		if !cr.Category.Valid() {
			return cr, "category", false
		}
	}
	if kw := strings.TrimSpace(c.Query("sub")); kw != "" {
		q, ok := validate.Q(kw)
		if !ok {
			return cr, "sub", false
		}
		cr.Keyword = q
	}
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			return cr, "max_price", false
		}
		cr.MaxPrice = n
	}
	if rawQ := strings.TrimSpace(c.Query("q")); rawQ != "" {
		q, ok := validate.Q(rawQ)
		if !ok {
			return cr, "q", false
		}
		cr.Query = q
	}
	cr.Sort = catalog.Sort(c.Query("sort"))
	if !cr.Sort.Valid() {
		return cr, "sort", false
	}
	return cr, "", true
}

// Home renders the storefront grid with the active filters applied.
func (h *ShopHandler) Home(c *fiber.Ctx) error {
	cr, field, ok := criteriaFromQuery(c)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": field})
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Invalid filter"})
	}
	products, err := h.Catalog.Filter(cr)
	if err != nil {
		applog.Error(c, "catalog.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the catalog. Please retry."})
	}
	return render(c, "home", fiber.Map{
		"Products":   products,
		"Categories": domain.Categories(),
		"Criteria":   cr,
		"CartCount":  h.Cart.View(ensureSID(c)).TotalItems,
	})
}

func (h *ShopHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{
		"P":         p,
		"CartCount": h.Cart.View(ensureSID(c)).TotalItems,
	})
}
