package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reman-wear/storefront/pkg/enums"
	pkgerrors "github.com/reman-wear/storefront/pkg/errors"
	"github.com/reman-wear/storefront/pkg/kv"
	"github.com/reman-wear/storefront/pkg/logger"
	"go.uber.org/multierr"
)

// StoreParams groups dependencies for the session store.
type StoreParams struct {
	Repo     kv.Store
	Provider IdentityProvider
	Logger   *logger.Logger
}

// Store is the session state container: identity lifecycle, profile
// edits, wishlist membership and order history. Wishlist and orders are
// usable without an identity; only order placement is expected to be
// gated by the checkout collaborator.
type Store struct {
	mu          sync.Mutex
	identity    *Identity
	wishlist    []string
	orders      []Order
	repo        kv.Store
	provider    IdentityProvider
	logg        *logger.Logger
	subscribers map[int]func()
	nextSubID   int
}

// NewStore builds a session store with the required dependencies.
func NewStore(params StoreParams) (*Store, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "snapshot repository is required")
	}
	if params.Provider == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "identity provider is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &Store{
		repo:        params.Repo,
		provider:    params.Provider,
		logg:        params.Logger,
		subscribers: map[int]func(){},
	}, nil
}

// Hydrate loads identity, wishlist and order history from durable
// storage. Absent keys hydrate to empty state; decode failures for the
// individual keys are aggregated.
func (s *Store) Hydrate(ctx context.Context) error {
	var identity *Identity
	var wishlist []string
	var orders []Order

	errIdentity := s.loadKey(ctx, IdentityKey, &identity)
	errWishlist := s.loadKey(ctx, WishlistKey, &wishlist)
	errOrders := s.loadKey(ctx, OrdersKey, &orders)

	if err := multierr.Combine(errIdentity, errWishlist, errOrders); err != nil {
		return err
	}

	s.mu.Lock()
	s.identity = identity
	s.wishlist = wishlist
	s.orders = orders
	s.mu.Unlock()
	return nil
}

func (s *Store) loadKey(ctx context.Context, key string, dest any) error {
	data, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load "+key+" snapshot")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode "+key+" snapshot")
	}
	return nil
}

// Subscribe registers a callback invoked after every state change. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Login authenticates against the identity provider and stores the
// resulting identity. With the default stub provider it cannot fail
// except on context cancellation.
func (s *Store) Login(ctx context.Context, email, password string) error {
	identity, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}
	return s.setIdentity(ctx, identity)
}

// Signup registers a new account and stores the resulting identity.
func (s *Store) Signup(ctx context.Context, name, email, password string) error {
	identity, err := s.provider.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return s.setIdentity(ctx, identity)
}

func (s *Store) setIdentity(ctx context.Context, identity Identity) error {
	s.mu.Lock()
	s.identity = &identity
	err := s.persistIdentityLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.logg.Info(s.logg.WithUserID(ctx, identity.ID), "identity established")
	s.notify()
	return nil
}

// Logout clears the identity. Wishlist and order history are untouched.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	err := s.repo.Delete(ctx, IdentityKey)
	s.mu.Unlock()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "clear identity snapshot")
	}
	s.notify()
	return nil
}

// UpdateProfile merges the non-nil fields into the current identity.
// With no identity present it is a no-op, not an error.
func (s *Store) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return nil
	}
	if update.Name != nil {
		s.identity.Name = *update.Name
	}
	if update.Email != nil {
		s.identity.Email = *update.Email
	}
	if update.Phone != nil {
		s.identity.Phone = *update.Phone
	}
	if update.Address != nil {
		address := *update.Address
		s.identity.Address = &address
	}
	err := s.persistIdentityLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// Identity returns the current identity, if any.
func (s *Store) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// IsAuthenticated reports whether an identity is present.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Identity()
	return ok
}

// AddToWishlist inserts the product id if it is not already a member.
func (s *Store) AddToWishlist(ctx context.Context, productID string) error {
	s.mu.Lock()
	if s.containsLocked(productID) {
		s.mu.Unlock()
		return nil
	}
	s.wishlist = append(s.wishlist, productID)
	err := s.persistWishlistLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// RemoveFromWishlist removes the product id if present.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) error {
	s.mu.Lock()
	removed := false
	for i, id := range s.wishlist {
		if id == productID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			removed = true
			break
		}
	}
	var err error
	if removed {
		err = s.persistWishlistLocked(ctx)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if removed {
		s.notify()
	}
	return nil
}

// IsInWishlist reports wishlist membership.
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(productID)
}

// Wishlist returns the bookmarked product ids in insertion order.
func (s *Store) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

func (s *Store) containsLocked(productID string) bool {
	for _, id := range s.wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// AddOrder freezes the input into a new pending order at the head of the
// history. The store does not require authentication; the checkout flow
// is expected to gate the call.
func (s *Store) AddOrder(ctx context.Context, input OrderInput) (Order, error) {
	order := Order{
		ID:              uuid.NewString(),
		Date:            time.Now().UTC(),
		Items:           input.Items,
		Total:           input.Total,
		Status:          enums.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
	}

	s.mu.Lock()
	s.orders = append([]Order{order}, s.orders...)
	err := s.persistOrdersLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return Order{}, err
	}
	s.notify()
	return order, nil
}

// Orders returns the order history, newest first.
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Store) persistIdentityLocked(ctx context.Context) error {
	return s.persistLocked(ctx, IdentityKey, s.identity)
}

func (s *Store) persistWishlistLocked(ctx context.Context) error {
	return s.persistLocked(ctx, WishlistKey, s.wishlist)
}

func (s *Store) persistOrdersLocked(ctx context.Context) error {
	return s.persistLocked(ctx, OrdersKey, s.orders)
}

func (s *Store) persistLocked(ctx context.Context, key string, state any) error {
	data, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode "+key+" snapshot")
	}
	if err := s.repo.Set(ctx, key, data); err != nil {
		s.logg.Error(s.logg.WithStoreKey(ctx, key), "persist snapshot", err)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist "+key+" snapshot")
	}
	return nil
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
