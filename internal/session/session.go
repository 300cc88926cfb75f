// Package session owns the visitor identity, the editable profile, the
// wishlist membership set and the append-only order history.
package session

import (
	"time"

	"github.com/reman-wear/storefront/pkg/enums"
	"github.com/reman-wear/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// Durable storage keys, one snapshot each.
const (
	IdentityKey = "user"
	WishlistKey = "wishlist"
	OrdersKey   = "orders"
)

// Identity is the authenticated user's profile record.
type Identity struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone,omitempty"`
	Address *types.Address `json:"address,omitempty"`
}

// ProfileUpdate carries the fields to merge into the current identity.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *types.Address
}

// OrderItem is a frozen copy of a cart line at checkout time.
type OrderItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Image     string          `json:"image"`
}

// Order is an immutable record of a completed checkout. Only its status
// may change later, and not through this store.
type Order struct {
	ID              string                `json:"id"`
	Date            time.Time             `json:"date"`
	Items           []OrderItem           `json:"items"`
	Total           decimal.Decimal       `json:"total"`
	Status          enums.OrderStatus     `json:"status"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
}

// OrderInput is the caller-supplied part of a new order. ID, date and
// status are assigned by the store.
type OrderInput struct {
	Items           []OrderItem
	Total           decimal.Decimal
	ShippingAddress types.ShippingAddress
}
