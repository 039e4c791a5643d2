// Package checkout turns the current cart plus a shipping form into an
// ephemeral order summary: a human-readable text block handed off through a
// WhatsApp deep link. Nothing here is persisted.
package checkout

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/go-faster/errors"

	"threadline/internal/cart"
)

// ErrEmptyCart is returned when Build is called without any line items.
// Callers are expected to check the cart first; this is a guard, not a flow.
var ErrEmptyCart = errors.New("cart is empty")

// refPrefix precedes the six random digits of an order reference. The
// reference is cosmetic: collisions are possible and not checked.
const refPrefix = "TL-"

type ShippingDetails struct {
	Name   string
	Phone  string
	Email  string // optional
	Street string
	City   string
	Postal string
}

type Line struct {
	Name     string
	Size     string
	Quantity int
	Total    int64
}

type Summary struct {
	Reference   string
	Lines       []Line
	Subtotal    int64
	ShippingFee int64
	Total       int64
	Ship        ShippingDetails
}

// Options carries the shipping step function constants.
type Options struct {
	FlatFee       int64
	FreeThreshold int64
}

// Fee applies the step function: flat fee below the free threshold, zero at
// or above it.
func (o Options) Fee(subtotal int64) int64 {
	if subtotal >= o.FreeThreshold {
		return 0
	}
	return o.FlatFee
}

// NewReference generates the cosmetic order reference: fixed prefix plus six
// random decimal digits.
func NewReference() string {
	return fmt.Sprintf("%s%06d", refPrefix, rand.IntN(1_000_000))
}

// Build computes the order summary for the given cart items. Deterministic
// for the same inputs apart from the generated reference.
func Build(items []cart.LineItem, ship ShippingDetails, opt Options) (Summary, error) {
	if len(items) == 0 {
		return Summary{}, ErrEmptyCart
	}
	s := Summary{
		Reference: NewReference(),
		Lines:     make([]Line, 0, len(items)),
		Ship:      ship,
	}
	for _, it := range items {
		s.Lines = append(s.Lines, Line{
			Name:     it.Name,
			Size:     it.Size,
			Quantity: it.Quantity,
			Total:    it.LineTotal(),
		})
		s.Subtotal += it.LineTotal()
	}
	s.ShippingFee = opt.Fee(s.Subtotal)
	s.Total = s.Subtotal + s.ShippingFee
	return s, nil
}

func money(n int64) string {
	return fmt.Sprintf("Rs %d", n)
}

// Text renders the summary as the WhatsApp message body.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "*New Order %s*\n\n", s.Reference)
	b.WriteString("*Items*\n")
	for _, l := range s.Lines {
		if l.Size != "" {
			fmt.Fprintf(&b, "%dx %s (%s) - %s\n", l.Quantity, l.Name, l.Size, money(l.Total))
		} else {
			fmt.Fprintf(&b, "%dx %s - %s\n", l.Quantity, l.Name, money(l.Total))
		}
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", money(s.Subtotal))
	if s.ShippingFee == 0 {
		b.WriteString("Shipping: FREE\n")
	} else {
		fmt.Fprintf(&b, "Shipping: %s\n", money(s.ShippingFee))
	}
	fmt.Fprintf(&b, "*Total: %s*\n", money(s.Total))

	b.WriteString("\n*Shipping Details*\n")
	fmt.Fprintf(&b, "Name: %s\n", s.Ship.Name)
	fmt.Fprintf(&b, "Phone: %s\n", s.Ship.Phone)
	if s.Ship.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", s.Ship.Email)
	}
	fmt.Fprintf(&b, "Address: %s, %s %s\n", s.Ship.Street, s.Ship.City, s.Ship.Postal)
	return b.String()
}

// WhatsAppLink builds the dispatch deep link for a destination number
// (digits only, country code included).
func WhatsAppLink(number, text string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}
