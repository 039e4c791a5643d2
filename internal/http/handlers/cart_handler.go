package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "threadline/internal/log"
	"threadline/internal/services"
	"threadline/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv := h.Cart.View(ensureSID(c))
	return render(c, "cart", fiber.Map{"Cart": cv, "CartCount": cv.TotalItems})
}

// key validates the (product id, size) pair every cart mutation takes.
func key(c *fiber.Ctx) (int64, string, bool) {
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		return 0, "", false
	}
	size, ok := validate.Size(c.FormValue("size"))
	if !ok {
		return 0, "", false
	}
	return id, size, true
}

// Add puts one unit into the cart; repeated adds of the same (id, size)
// merge into one entry.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, size, ok := key(c)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId/size"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid product or size")
	}
	if err := h.Cart.Add(sid, id, size); err != nil {
		applog.Error(c, "cart.add.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).SendString("could not add to cart")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Increase(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if id, size, ok := key(c); ok {
		h.Cart.Increase(sid, id, size)
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Decrease(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if id, size, ok := key(c); ok {
		h.Cart.Decrease(sid, id, size)
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if id, size, ok := key(c); ok {
		h.Cart.Remove(sid, id, size)
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.Cart.Clear(ensureSID(c))
	return c.Redirect("/cart")
}
