package domain

import "encoding/json"

// Category is the fixed set of catalog categories.
type Category string

const (
	CategoryTees        Category = "tees"
	CategoryHoodies     Category = "hoodies"
	CategoryPants       Category = "pants"
	CategorySneakers    Category = "sneakers"
	CategoryAccessories Category = "accessories"
)

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{CategoryTees, CategoryHoodies, CategoryPants, CategorySneakers, CategoryAccessories}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryTees, CategoryHoodies, CategoryPants, CategorySneakers, CategoryAccessories:
		return true
	}
	return false
}

// Sized reports whether products in this category carry a size list.
// Accessories are one-size and must not declare sizes.
func (c Category) Sized() bool {
	return c.Valid() && c != CategoryAccessories
}

func (c Category) Label() string {
	switch c {
	case CategoryTees:
		return "Tees"
	case CategoryHoodies:
		return "Hoodies"
	case CategoryPants:
		return "Pants"
	case CategorySneakers:
		return "Sneakers"
	case CategoryAccessories:
		return "Accessories"
	}
	return string(c)
}

type Product struct {
	ID              int64    `db:"id"`
	Name            string   `db:"name"`
	Description     string   `db:"description"`
	Category        Category `db:"category"`
	Subcategory     string   `db:"subcategory"`
	Price           int64    `db:"price"`          // integer currency units, > 0
	OriginalPrice   int64    `db:"original_price"` // 0 when not discounted; >= Price otherwise
	Image           string   `db:"image"`
	ExtraImagesJSON string   `db:"extra_images_json"`
	SizesJSON       string   `db:"sizes_json"`
	Rating          float64  `db:"rating"`
	Reviews         int      `db:"reviews"`
	CreatedAt       string   `db:"created_at"`
	UpdatedAt       string   `db:"updated_at"`
}

// Sizes decodes the ordered size list; nil when the product is unsized.
func (p Product) Sizes() []string {
	return decodeStrings(p.SizesJSON)
}

// ExtraImages decodes the additional image references.
func (p Product) ExtraImages() []string {
	return decodeStrings(p.ExtraImagesJSON)
}

func (p Product) OnSale() bool {
	return p.OriginalPrice > p.Price
}

func decodeStrings(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// EncodeStrings renders a string list into the JSON column form; empty lists
// store as "" so that Sizes/ExtraImages round-trip to nil.
func EncodeStrings(list []string) string {
	if len(list) == 0 {
		return ""
	}
	b, _ := json.Marshal(list)
	return string(b)
}

// ProductInput carries admin-submitted product fields before validation.
// ID is absent: creates assign one, updates take it from the route.
type ProductInput struct {
	Name          string
	Description   string
	Category      Category
	Subcategory   string
	Price         int64
	OriginalPrice int64
	Image         string
	ExtraImages   []string
	Sizes         []string
	Rating        float64
	Reviews       int
}
