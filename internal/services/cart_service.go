package services

import (
	"threadline/internal/cart"
	"threadline/internal/repos"
)

// CartService binds session-scoped carts to the catalog. Adds snapshot the
// product's fields at add time; later catalog edits never reach the cart.
type CartService struct {
	Carts *cart.Store
	Prods *repos.ProductRepo
}

func NewCartService(carts *cart.Store, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add puts one unit of (productID, size) into the session cart. A product id
// that no longer exists is a silent no-op.
func (s *CartService) Add(sessionID string, productID int64, size string) error {
	p, err := s.Prods.Get(productID)
	if err == repos.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	s.Carts.Get(sessionID).Add(cart.LineItem{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Size:          size,
	})
	return nil
}

func (s *CartService) Increase(sessionID string, productID int64, size string) {
	s.Carts.Get(sessionID).IncreaseQty(productID, size)
}

func (s *CartService) Decrease(sessionID string, productID int64, size string) {
	s.Carts.Get(sessionID).DecreaseQty(productID, size)
}

func (s *CartService) Remove(sessionID string, productID int64, size string) {
	s.Carts.Get(sessionID).Remove(productID, size)
}

func (s *CartService) Clear(sessionID string) {
	s.Carts.Get(sessionID).Clear()
}

type CartView struct {
	Items      []cart.LineItem
	TotalItems int
	TotalPrice int64
	IsEmpty    bool
}

func (s *CartService) View(sessionID string) CartView {
	c := s.Carts.Get(sessionID)
	return CartView{
		Items:      c.Items(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		IsEmpty:    c.IsEmpty(),
	}
}
