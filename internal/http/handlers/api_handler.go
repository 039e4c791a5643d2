package handlers

import (
	"github.com/gofiber/fiber/v2"

	"threadline/internal/domain"
	applog "threadline/internal/log"
	"threadline/internal/repos"
	"threadline/internal/services"
	"threadline/internal/validate"
)

// APIHandler exposes the catalog store boundary as JSON: list for everyone,
// create/update/delete behind the admin gate.
type APIHandler struct {
	Catalog *services.CatalogService
	Admin   *services.AdminService
}

type productJSON struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	ExtraImages   []string `json:"extraImages,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
}

func toJSON(p domain.Product) productJSON {
	return productJSON{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      string(p.Category),
		Subcategory:   p.Subcategory,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		ExtraImages:   p.ExtraImages(),
		Sizes:         p.Sizes(),
		Rating:        p.Rating,
		Reviews:       p.Reviews,
	}
}

type productPayload struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"originalPrice"`
	Image         string   `json:"image"`
	ExtraImages   []string `json:"extraImages"`
	Sizes         []string `json:"sizes"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
}

func (p productPayload) input() domain.ProductInput {
	return domain.ProductInput{
		Name:          p.Name,
		Description:   p.Description,
		Category:      domain.Category(p.Category),
		Subcategory:   p.Subcategory,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		ExtraImages:   p.ExtraImages,
		Sizes:         p.Sizes,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
	}
}

// GET /api/v1/products
func (h *APIHandler) List(c *fiber.Ctx) error {
	cr, field, ok := criteriaFromQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid filter: " + field})
	}
	products, err := h.Catalog.Filter(cr)
	if err != nil {
		applog.Error(c, "api.products.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "store unavailable"})
	}
	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toJSON(p))
	}
	return c.JSON(out)
}

// POST /api/v1/products (admin)
func (h *APIHandler) Create(c *fiber.Ctx) error {
	var payload productPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	p, fieldErrs, err := h.Admin.Create(payload.input())
	if err != nil {
		applog.Error(c, "api.products.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "store unavailable"})
	}
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrs})
	}
	applog.Audit(c, "api.products.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(toJSON(p))
}

// PUT /api/v1/products/:id (admin)
func (h *APIHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var payload productPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	fieldErrs, err := h.Admin.Update(id, payload.input())
	if err == repos.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err != nil {
		applog.Error(c, "api.products.update.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "store unavailable"})
	}
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrs})
	}
	applog.Audit(c, "api.products.update", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /api/v1/products/:id (admin)
func (h *APIHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err := h.Admin.Delete(id); err != nil {
		if err == repos.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		applog.Error(c, "api.products.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "store unavailable"})
	}
	applog.Audit(c, "api.products.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
