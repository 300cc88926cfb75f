// Package catalog holds the static, read-only product list and the
// filtering and search queries the shop views run against it.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceRange is one price bracket of the shop filter. A nil Max means the
// bracket is unbounded above. Membership is min <= price < max.
type PriceRange struct {
	Label string
	Min   decimal.Decimal
	Max   *decimal.Decimal
}

// Contains reports whether the price falls inside the bracket.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	if price.LessThan(r.Min) {
		return false
	}
	if r.Max != nil && !price.LessThan(*r.Max) {
		return false
	}
	return true
}

// PriceRanges are the shop filter brackets, last one unbounded.
var PriceRanges = []PriceRange{
	{Label: "Under 1,500 EGP", Min: decimal.Zero, Max: decimalPtr(1500)},
	{Label: "1,500 - 3,000 EGP", Min: decimal.NewFromInt(1500), Max: decimalPtr(3000)},
	{Label: "3,000 - 5,000 EGP", Min: decimal.NewFromInt(3000), Max: decimalPtr(5000)},
	{Label: "Over 5,000 EGP", Min: decimal.NewFromInt(5000)},
}

func decimalPtr(value int64) *decimal.Decimal {
	d := decimal.NewFromInt(value)
	return &d
}

// PriceRangeByLabel resolves a bracket from its display label.
func PriceRangeByLabel(label string) (PriceRange, bool) {
	for _, r := range PriceRanges {
		if r.Label == label {
			return r, true
		}
	}
	return PriceRange{}, false
}

// Catalog is an immutable ordered product collection.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a catalog over the given products, preserving their order.
func New(products []Product) *Catalog {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if _, exists := byID[p.ID]; !exists {
			byID[p.ID] = i
		}
	}
	return &Catalog{products: products, byID: byID}
}

// Default returns the built-in REMAN catalog.
func Default() *Catalog {
	return New(defaultProducts)
}

// Products returns the full ordered list.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID resolves a product by id.
func (c *Catalog) ByID(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Filter narrows the catalog by the shop sidebar selections. Zero values
// (or category "All") leave the corresponding dimension unfiltered.
type Filter struct {
	Category   string
	Size       string
	PriceRange *PriceRange
}

// Filter returns the products matching every set dimension, in catalog order.
func (c *Catalog) Filter(f Filter) []Product {
	matched := []Product{}
	for _, p := range c.products {
		if f.Category != "" && f.Category != "All" && p.Category != f.Category {
			continue
		}
		if f.Size != "" && !p.HasSize(f.Size) {
			continue
		}
		if f.PriceRange != nil && !f.PriceRange.Contains(p.Price) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// Search returns products whose name or category contains the query,
// case-insensitively. A blank query matches nothing.
func (c *Catalog) Search(query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	matched := []Product{}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Resolve maps product ids to products, preserving the input order and
// skipping ids no longer in the catalog. Used to render wishlists.
func (c *Catalog) Resolve(ids []string) []Product {
	resolved := []Product{}
	for _, id := range ids {
		if p, ok := c.ByID(id); ok {
			resolved = append(resolved, p)
		}
	}
	return resolved
}
