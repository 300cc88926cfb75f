package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	pkgerrors "github.com/reman-wear/storefront/pkg/errors"
	"github.com/reman-wear/storefront/pkg/kv"
	"github.com/reman-wear/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// Store is the cart state container. It is safe for use from a single
// writer; reads are guarded so a rendering layer may poll concurrently.
type Store struct {
	mu          sync.Mutex
	items       []LineItem
	isOpen      bool
	repo        kv.Store
	logg        *logger.Logger
	subscribers map[int]func()
	nextSubID   int
}

// NewStore builds a cart store backed by the given snapshot repository.
func NewStore(repo kv.Store, logg *logger.Logger) (*Store, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "snapshot repository is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &Store{
		repo:        repo,
		logg:        logg,
		subscribers: map[int]func(){},
	}, nil
}

// Hydrate loads the persisted cart, if any. An absent snapshot yields an
// empty cart; a corrupt one is a storage error.
func (s *Store) Hydrate(ctx context.Context) error {
	data, err := s.repo.Get(ctx, SnapshotKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load cart snapshot")
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode cart snapshot")
	}

	s.mu.Lock()
	s.items = snap.Items
	s.mu.Unlock()
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

// AddItem merges the item into an existing line with the same (product,
// size) key or appends a new one, then opens the cart panel. A quantity
// below one defaults to one.
func (s *Store) AddItem(ctx context.Context, item Item, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].Key() == (Key{ProductID: item.ProductID, Size: item.Size}) {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item.toLine(quantity))
	}
	s.isOpen = true
	err := s.persistLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// RemoveItem drops the matching line item. Removing an absent item is a
// no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, productID, size string) error {
	s.mu.Lock()
	removed := s.removeLocked(productID, size)
	var err error
	if removed {
		err = s.persistLocked(ctx)
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

// UpdateQuantity sets the line item's quantity exactly. A quantity of zero
// or below removes the line instead.
func (s *Store) UpdateQuantity(ctx context.Context, productID, size string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID, size)
	}

	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].Key() == (Key{ProductID: productID, Size: size}) {
			s.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	var err error
	if changed {
		err = s.persistLocked(ctx)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if changed {
		s.notify()
	}
	return nil
}

// Clear empties the cart. The panel visibility is unaffected.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	err := s.persistLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// SetOpen toggles the cart panel visibility. The flag is reactive state
// for the views but is never persisted.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	changed := s.isOpen != open
	s.isOpen = open
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// IsOpen reports the cart panel visibility.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Items returns the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of all line item quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *Store) removeLocked(productID, size string) bool {
	key := Key{ProductID: productID, Size: size}
	for i := range s.items {
		if s.items[i].Key() == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(snapshot{Items: s.items})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.repo.Set(ctx, SnapshotKey, data); err != nil {
		s.logg.Error(ctx, "persist cart snapshot", err)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist cart snapshot")
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
