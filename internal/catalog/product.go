package catalog

import "github.com/shopspring/decimal"

// Product is one entry of the static storefront catalog. Prices are whole
// EGP amounts.
type Product struct {
	ID              string          `json:"id" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"originalPrice,omitempty"`
	Image           string          `json:"image" validate:"required"`
	Images          []string        `json:"images" validate:"min=1,dive,required"`
	Category        string          `json:"category" validate:"required"`
	Material        string          `json:"material"`
	RecycledContent string          `json:"recycledContent"`
	Sizes           []string        `json:"sizes" validate:"min=1,dive,required"`
	IsNew           bool            `json:"isNew,omitempty"`
	InStock         bool            `json:"inStock"`
}

// HasSize reports whether the product is offered in the given size.
func (p Product) HasSize(size string) bool {
	for _, candidate := range p.Sizes {
		if candidate == size {
			return true
		}
	}
	return false
}

// OnSale reports whether the product carries a compare-at price above the
// current one.
func (p Product) OnSale() bool {
	return p.OriginalPrice.GreaterThan(p.Price)
}
