// Package checkout drives the mock purchase flow: it snapshots the cart
// into an order on the session store and empties the cart. It is also
// where order placement is gated on authentication; the session store
// itself stays permissive.
package checkout

import (
	"context"

	"github.com/reman-wear/storefront/internal/cart"
	"github.com/reman-wear/storefront/internal/session"
	pkgerrors "github.com/reman-wear/storefront/pkg/errors"
	"github.com/reman-wear/storefront/pkg/logger"
	"github.com/reman-wear/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

type cartStore interface {
	Items() []cart.LineItem
	TotalPrice() decimal.Decimal
	Clear(ctx context.Context) error
}

type sessionStore interface {
	IsAuthenticated() bool
	AddOrder(ctx context.Context, input session.OrderInput) (session.Order, error)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Cart    cartStore
	Session sessionStore
	Logger  *logger.Logger
}

// Service places orders from the current cart.
type Service struct {
	cart    cartStore
	session sessionStore
	logg    *logger.Logger
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (*Service, error) {
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if params.Session == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session store is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &Service{cart: params.Cart, session: params.Session, logg: params.Logger}, nil
}

// PlaceOrder freezes the current cart into a pending order shipped to the
// given address, then clears the cart. Shipping is free, so the order
// total equals the cart subtotal.
func (s *Service) PlaceOrder(ctx context.Context, shipping types.ShippingAddress) (session.Order, error) {
	if !s.session.IsAuthenticated() {
		return session.Order{}, pkgerrors.New(pkgerrors.CodeUnauthenticated, "checkout requires a signed-in user")
	}
	if missing := shipping.Validate(); len(missing) > 0 {
		return session.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "incomplete shipping address").
			WithDetails(map[string]any{"missing": missing})
	}

	lines := s.cart.Items()
	if len(lines) == 0 {
		return session.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]session.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, session.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Image:     line.Image,
		})
	}

	order, err := s.session.AddOrder(ctx, session.OrderInput{
		Items:           items,
		Total:           s.cart.TotalPrice(),
		ShippingAddress: shipping,
	})
	if err != nil {
		return session.Order{}, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		// The order exists at this point; the stale cart is the lesser
		// problem, so hand both back to the caller.
		s.logg.Error(ctx, "clear cart after checkout", err)
		return order, err
	}

	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID), "order placed")
	return order, nil
}
