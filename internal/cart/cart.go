// Package cart owns the visitor's selected purchase items. Line items are
// keyed by (product, size); every mutation is persisted as a full snapshot
// and then announced to subscribers.
package cart

import (
	"github.com/shopspring/decimal"
)

// SnapshotKey is the durable storage key for the cart state.
const SnapshotKey = "cart"

// LineItem is one (product, size) purchase intent with a quantity.
type LineItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category"`
}

// Key identifies a line item inside the cart.
type Key struct {
	ProductID string
	Size      string
}

// Key returns the identity of the line item.
func (li LineItem) Key() Key {
	return Key{ProductID: li.ProductID, Size: li.Size}
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Item is the payload for adding a product to the cart. Quantity lives on
// the resulting line item, not here.
type Item struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Image     string
	Size      string
	Category  string
}

func (i Item) toLine(quantity int) LineItem {
	return LineItem{
		ProductID: i.ProductID,
		Name:      i.Name,
		UnitPrice: i.UnitPrice,
		Image:     i.Image,
		Size:      i.Size,
		Quantity:  quantity,
		Category:  i.Category,
	}
}

// snapshot is the persisted cart shape. The open/closed panel flag is a
// view concern and is deliberately not part of it.
type snapshot struct {
	Items []LineItem `json:"items"`
}
