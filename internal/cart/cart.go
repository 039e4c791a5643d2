// Package cart holds the in-memory shopping cart: an ordered list of line
// items keyed by (product id, size). Carts live only in process memory and
// are scoped to a browser session; nothing here touches the database.
package cart

import "sync"

// LineItem is one (product, size) pairing and its quantity. Name, price and
// image are snapshots taken when the item was first added and are never
// re-synced from the catalog.
type LineItem struct {
	ProductID     int64
	Name          string
	Price         int64
	OriginalPrice int64
	Image         string
	Size          string // "" means the product has no size
	Quantity      int
}

func (it LineItem) LineTotal() int64 {
	return it.Price * int64(it.Quantity)
}

// Cart is safe for overlapping requests on the same session, though each
// session has a single logical writer.
type Cart struct {
	mu    sync.Mutex
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// find returns the index of the entry matching (id, size), or -1. An absent
// size only matches an absent size; distinct concrete sizes never match.
func (c *Cart) find(id int64, size string) int {
	for i := range c.items {
		if c.items[i].ProductID == id && c.items[i].Size == size {
			return i
		}
	}
	return -1
}

// Add merges into an existing (id, size) entry, bumping its quantity by one
// and leaving the stored snapshot untouched, or appends a fresh entry with
// quantity 1. It cannot fail.
func (c *Cart) Add(item LineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.find(item.ProductID, item.Size); i >= 0 {
		c.items[i].Quantity++
		return
	}
	item.Quantity = 1
	c.items = append(c.items, item)
}

// IncreaseQty bumps the matching entry by one; no-op if absent.
func (c *Cart) IncreaseQty(id int64, size string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.find(id, size); i >= 0 {
		c.items[i].Quantity++
	}
}

// DecreaseQty lowers the matching entry by one but never below 1. Deleting a
// quantity-1 entry requires an explicit Remove.
func (c *Cart) DecreaseQty(id int64, size string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.find(id, size); i >= 0 && c.items[i].Quantity > 1 {
		c.items[i].Quantity--
	}
}

// Remove deletes the matching entry regardless of quantity; no-op if absent.
func (c *Cart) Remove(id int64, size string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.find(id, size); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy in insertion order; callers never see the live list.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the sum of quantities across all entries.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for i := range c.items {
		n += c.items[i].Quantity
	}
	return n
}

// TotalPrice is the sum of price*quantity across all entries.
func (c *Cart) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for i := range c.items {
		total += c.items[i].LineTotal()
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Store maps session ids to carts. Sessions are created lazily on first use
// and evicted only when the process exits, matching the one-browsing-session
// cart lifetime.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns the cart for a session, creating it if needed.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok = s.carts[sessionID]; ok {
		return c
	}
	c = New()
	s.carts[sessionID] = c
	return c
}

// Drop discards a session's cart.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
