package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"threadline/internal/domain"
	applog "threadline/internal/log"
	"threadline/internal/media"
	"threadline/internal/services"
	"threadline/internal/validate"
)

type AdminHandler struct {
	Admin   *services.AdminService
	Catalog *services.CatalogService
	Media   media.Store
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	products, err := h.Catalog.List()
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "admin_products", fiber.Map{"Products": products})
}

// GET /admin/products/new
func (h *AdminHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "admin_product_form", fiber.Map{
		"Categories": domain.Categories(),
		"Action":     "/admin/products",
	})
}

// GET /admin/products/:id/edit
func (h *AdminHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	return render(c, "admin_product_form", fiber.Map{
		"Categories": domain.Categories(),
		"P":          p,
		"Action":     "/admin/products/" + strconv.FormatInt(id, 10),
	})
}

// POST /admin/products
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	in := productInputFromForm(c)
	p, fieldErrs, err := h.Admin.Create(in)
	if err != nil {
		applog.Error(c, "admin.products.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not save the product"})
	}
	if len(fieldErrs) > 0 {
		applog.Security(c, "validation.fail", map[string]any{"fields": fieldErrs})
		return c.Status(fiber.StatusBadRequest).Render("admin_product_form", fiber.Map{
			"Categories": domain.Categories(),
			"In":         in,
			"Errors":     fieldErrs,
			"Action":     "/admin/products",
		})
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": p.ID})
	return c.Redirect("/admin")
}

// POST /admin/products/:id
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	in := productInputFromForm(c)
	fieldErrs, err := h.Admin.Update(id, in)
	if err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Could not update the product"})
	}
	if len(fieldErrs) > 0 {
		applog.Security(c, "validation.fail", map[string]any{"fields": fieldErrs})
		return c.Status(fiber.StatusBadRequest).Render("admin_product_form", fiber.Map{
			"Categories": domain.Categories(),
			"In":         in,
			"Errors":     fieldErrs,
			"Action":     "/admin/products/" + strconv.FormatInt(id, 10),
		})
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id})
	return c.Redirect("/admin")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	if err := h.Admin.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Could not delete the product"})
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin")
}

// POST /admin/upload turns a selected image file into a stable /media URL
// for the product form.
func (h *AdminHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no file"})
	}
	url, err := h.Media.SaveUpload(fh)
	if err == media.ErrBadUpload {
		applog.Security(c, "admin.upload.reject", map[string]any{"filename": fh.Filename})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported image type"})
	}
	if err != nil {
		applog.Error(c, "admin.upload.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "upload failed"})
	}
	applog.Audit(c, "admin.upload", map[string]any{"url": url})
	return c.JSON(fiber.Map{"url": url})
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// productInputFromForm parses leniently; range checks belong to validation.
func productInputFromForm(c *fiber.Ctx) domain.ProductInput {
	price, _ := strconv.ParseInt(strings.TrimSpace(c.FormValue("price")), 10, 64)
	origPrice, _ := strconv.ParseInt(strings.TrimSpace(c.FormValue("original_price")), 10, 64)
	rating, _ := strconv.ParseFloat(strings.TrimSpace(c.FormValue("rating")), 64)
	reviews, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("reviews")))

	return domain.ProductInput{
		Name:          strings.TrimSpace(c.FormValue("name")),
		Description:   strings.TrimSpace(c.FormValue("description")),
		Category:      domain.Category(strings.TrimSpace(c.FormValue("category"))),
		Subcategory:   strings.TrimSpace(c.FormValue("subcategory")),
		Price:         price,
		OriginalPrice: origPrice,
		Image:         strings.TrimSpace(c.FormValue("image")),
		ExtraImages:   splitList(c.FormValue("extra_images")),
		Sizes:         splitList(c.FormValue("sizes")),
		Rating:        rating,
		Reviews:       reviews,
	}
}
