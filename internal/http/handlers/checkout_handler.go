package handlers

import (
	"github.com/gofiber/fiber/v2"

	"threadline/internal/checkout"
	applog "threadline/internal/log"
	"threadline/internal/services"
	"threadline/internal/validate"
)

type CheckoutHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
}

func (h *CheckoutHandler) Form(c *fiber.Ctx) error {
	cv := h.Cart.View(ensureSID(c))
	if cv.IsEmpty {
		return c.Redirect("/cart")
	}
	return render(c, "checkout", fiber.Map{"Cart": cv, "CartCount": cv.TotalItems})
}

// Place validates the shipping form, formats the order summary, and hands the
// customer off to WhatsApp via a deep link. Nothing is stored server-side.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	ship, field, ok := shippingFromForm(c)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": field})
		cv := h.Cart.View(sid)
		return c.Status(fiber.StatusBadRequest).Render("checkout", fiber.Map{
			"Cart": cv, "CartCount": cv.TotalItems,
			"Err": "Please check the " + field + " field",
		})
	}

	sum, link, err := h.Checkout.Place(sid, ship)
	if err == checkout.ErrEmptyCart {
		return c.Redirect("/cart")
	}
	if err != nil {
		applog.Error(c, "checkout.place.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not prepare your order. Please retry."})
	}

	applog.Audit(c, "checkout.place", map[string]any{
		"reference": sum.Reference,
		"subtotal":  sum.Subtotal,
		"shipping":  sum.ShippingFee,
		"total":     sum.Total,
	})
	return c.Redirect(link, fiber.StatusSeeOther)
}

func shippingFromForm(c *fiber.Ctx) (checkout.ShippingDetails, string, bool) {
	var ship checkout.ShippingDetails
	var ok bool
	if ship.Name, ok = validate.Name(c.FormValue("name")); !ok {
		return ship, "name", false
	}
	if ship.Phone, ok = validate.Phone(c.FormValue("phone")); !ok {
		return ship, "phone", false
	}
	if ship.Email, ok = validate.Email(c.FormValue("email")); !ok {
		return ship, "email", false
	}
	if ship.Street, ok = validate.Street(c.FormValue("street")); !ok {
		return ship, "street", false
	}
	if ship.City, ok = validate.City(c.FormValue("city")); !ok {
		return ship, "city", false
	}
	if ship.Postal, ok = validate.Postal(c.FormValue("postal")); !ok {
		return ship, "postal", false
	}
	return ship, "", true
}
