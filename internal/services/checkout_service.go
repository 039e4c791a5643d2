package services

import (
	"threadline/internal/cart"
	"threadline/internal/checkout"
)

// CheckoutService builds the ephemeral order summary and the dispatch link.
// Orders are never stored; the WhatsApp message is the only record.
type CheckoutService struct {
	Carts *cart.Store
	Opts  checkout.Options
	Dest  string // destination WhatsApp number, digits only
}

func NewCheckoutService(carts *cart.Store, opts checkout.Options, dest string) *CheckoutService {
	return &CheckoutService{Carts: carts, Opts: opts, Dest: dest}
}

// Place formats the session cart into an order summary and returns the
// wa.me link carrying it. The cart is emptied on success.
func (s *CheckoutService) Place(sessionID string, ship checkout.ShippingDetails) (checkout.Summary, string, error) {
	c := s.Carts.Get(sessionID)
	sum, err := checkout.Build(c.Items(), ship, s.Opts)
	if err != nil {
		return checkout.Summary{}, "", err
	}
	link := checkout.WhatsAppLink(s.Dest, sum.Text())
	c.Clear()
	return sum, link, nil
}
