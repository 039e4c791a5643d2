// Package catalog derives filtered and sorted views over the product list.
// Everything is pure over the input slice; a small single-entry memo avoids
// recomputing the same view between catalog writes.
package catalog

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"threadline/internal/domain"
)

type Sort string

const (
	SortNone      Sort = ""
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

func (s Sort) Valid() bool {
	return s == SortNone || s == SortPriceAsc || s == SortPriceDesc
}

// Criteria is the filter tuple. Zero values mean "no constraint".
type Criteria struct {
	Category domain.Category
	Keyword  string // matched against subcategory, falling back to name
	MaxPrice int64
	Query    string // free text over name and description
	Sort     Sort
}

func (cr Criteria) IsZero() bool {
	return cr == Criteria{}
}

func matches(p domain.Product, cr Criteria) bool {
	if cr.Category != "" && p.Category != cr.Category {
		return false
	}
	if cr.MaxPrice > 0 && p.Price > cr.MaxPrice {
		return false
	}
	if cr.Keyword != "" {
		kw := strings.ToLower(cr.Keyword)
		target := strings.ToLower(p.Subcategory)
		if target == "" {
			target = strings.ToLower(p.Name)
		}
		if !strings.Contains(target, kw) {
			return false
		}
	}
	if cr.Query != "" {
		q := strings.ToLower(cr.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

// Apply returns the filtered subsequence in original relative order, sorted
// by price only when explicitly requested (stable, so ties keep their order).
func Apply(products []domain.Product, cr Criteria) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, cr) {
			out = append(out, p)
		}
	}
	switch cr.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}

// View memoizes the last Apply result keyed on (catalog generation,
// criteria). Correctness never depends on the memo: any write simply bumps
// the generation.
type View struct {
	gen uint64

	mu     sync.Mutex
	hitGen uint64
	hitCr  Criteria
	hitOK  bool
	hitOut []domain.Product
}

func NewView() *View {
	return &View{}
}

// Invalidate marks all memoized results stale; call after any catalog write.
func (v *View) Invalidate() {
	atomic.AddUint64(&v.gen, 1)
}

func (v *View) Apply(products []domain.Product, cr Criteria) []domain.Product {
	gen := atomic.LoadUint64(&v.gen)

	v.mu.Lock()
	if v.hitOK && v.hitGen == gen && v.hitCr == cr {
		out := v.hitOut
		v.mu.Unlock()
		return out
	}
	v.mu.Unlock()

	out := Apply(products, cr)

	v.mu.Lock()
	v.hitGen, v.hitCr, v.hitOut, v.hitOK = gen, cr, out, true
	v.mu.Unlock()
	return out
}
