package session

import (
	"context"
	"io"
	"testing"

	"github.com/reman-wear/storefront/pkg/enums"
	"github.com/reman-wear/storefront/pkg/kv"
	"github.com/reman-wear/storefront/pkg/logger"
	"github.com/reman-wear/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestStore(t *testing.T) (*Store, kv.Store) {
	t.Helper()
	repo := kv.NewMemory()
	store, err := NewStore(StoreParams{
		Repo:     repo,
		Provider: StubProvider{},
		Logger:   testLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error building store: %v", err)
	}
	return store, repo
}

func orderInput() OrderInput {
	return OrderInput{
		Items: []OrderItem{
			{ProductID: "1", Name: "Hoodie", UnitPrice: decimal.NewFromInt(2750), Quantity: 1, Size: "M", Image: "x"},
		},
		Total: decimal.NewFromInt(2750),
		ShippingAddress: types.ShippingAddress{
			Name: "Jane", Street: "1 Nile St", City: "Cairo", State: "Cairo", ZipCode: "11511", Phone: "+20100000000",
		},
	}
}

func TestNewStoreRequiresDeps(t *testing.T) {
	t.Parallel()

	logg := testLogger()
	if _, err := NewStore(StoreParams{Provider: StubProvider{}, Logger: logg}); err == nil {
		t.Fatal("expected error for missing repo")
	}
	if _, err := NewStore(StoreParams{Repo: kv.NewMemory(), Logger: logg}); err == nil {
		t.Fatal("expected error for missing provider")
	}
	if _, err := NewStore(StoreParams{Repo: kv.NewMemory(), Provider: StubProvider{}}); err == nil {
		t.Fatal("expected error for missing logger")
	}
}

func TestLoginBindsDemoIdentityToEmail(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if store.IsAuthenticated() {
		t.Fatal("fresh store should be anonymous")
	}

	if err := store.Login(ctx, "visitor@example.com", "whatever"); err != nil {
		t.Fatalf("login must not fail with the stub provider: %v", err)
	}

	identity, ok := store.Identity()
	if !ok {
		t.Fatal("expected identity after login")
	}
	if identity.Email != "visitor@example.com" {
		t.Fatalf("identity not bound to supplied email: %q", identity.Email)
	}
	if identity.Name != "Demo User" {
		t.Fatalf("expected demo identity, got %q", identity.Name)
	}
}

func TestSignupScenario(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Signup(ctx, "Jane", "jane@x.com", "pw"); err != nil {
		t.Fatalf("signup must not fail with the stub provider: %v", err)
	}

	identity, ok := store.Identity()
	if !ok || identity.Name != "Jane" || identity.Email != "jane@x.com" {
		t.Fatalf("unexpected identity %+v", identity)
	}
	if !store.IsAuthenticated() {
		t.Fatal("expected isAuthenticated after signup")
	}

	order, err := store.AddOrder(ctx, orderInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("new order status should be pending, got %s", order.Status)
	}
	if len(store.Orders()) != 1 {
		t.Fatalf("expected order history length 1, got %d", len(store.Orders()))
	}
}

func TestSignupIdentitiesAreDistinct(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Signup(ctx, "A", "a@x.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, _ := store.Identity()

	if err := store.Signup(ctx, "B", "b@x.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := store.Identity()

	if first.ID == second.ID {
		t.Fatalf("signup ids must be unique, both %q", first.ID)
	}
}

func TestLogoutClearsIdentityOnly(t *testing.T) {
	t.Parallel()

	store, repo := newTestStore(t)
	ctx := context.Background()

	if err := store.Signup(ctx, "Jane", "jane@x.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.AddToWishlist(ctx, "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.AddOrder(ctx, orderInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Logout(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.IsAuthenticated() {
		t.Fatal("expected anonymous state after logout")
	}
	if !store.IsInWishlist("3") {
		t.Fatal("logout must not clear the wishlist")
	}
	if len(store.Orders()) != 1 {
		t.Fatal("logout must not clear order history")
	}
	if _, err := repo.Get(ctx, IdentityKey); err == nil {
		t.Fatal("identity snapshot should be deleted on logout")
	}
}

func TestUpdateProfileMergesFields(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	// Without an identity the call is a silent no-op.
	phone := "+20123456789"
	if err := store.UpdateProfile(ctx, ProfileUpdate{Phone: &phone}); err != nil {
		t.Fatalf("profile update without identity must not fail: %v", err)
	}

	if err := store.Signup(ctx, "Jane", "jane@x.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := "Jane Doe"
	address := types.Address{Street: "5 Tahrir Sq", City: "Giza", State: "Giza", ZipCode: "12511"}
	if err := store.UpdateProfile(ctx, ProfileUpdate{Name: &name, Phone: &phone, Address: &address}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	identity, _ := store.Identity()
	if identity.Name != "Jane Doe" || identity.Phone != phone {
		t.Fatalf("merge failed: %+v", identity)
	}
	if identity.Email != "jane@x.com" {
		t.Fatalf("untouched field was overwritten: %q", identity.Email)
	}
	if identity.Address == nil || identity.Address.City != "Giza" {
		t.Fatalf("address not merged: %+v", identity.Address)
	}
}

func TestWishlistScenarioAnonymous(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.AddToWishlist(ctx, "3"); err != nil {
		t.Fatalf("wishlist must work without authentication: %v", err)
	}
	if !store.IsInWishlist("3") {
		t.Fatal("expected membership after add")
	}
	if err := store.RemoveFromWishlist(ctx, "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.IsInWishlist("3") {
		t.Fatal("expected no membership after remove")
	}
}

func TestAddToWishlistIsIdempotent(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.AddToWishlist(ctx, "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.AddToWishlist(ctx, "3"); err != nil {
		t.Fatalf("second add must still succeed: %v", err)
	}
	if got := store.Wishlist(); len(got) != 1 {
		t.Fatalf("expected a single membership entry, got %v", got)
	}

	if err := store.RemoveFromWishlist(ctx, "ghost"); err != nil {
		t.Fatalf("removing a non-member must be a no-op: %v", err)
	}
}

func TestAddOrderPrependsWithUniqueIDs(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.AddOrder(ctx, orderInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.AddOrder(ctx, orderInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID == second.ID {
		t.Fatalf("order ids must be unique, both %q", first.ID)
	}
	if first.Date.IsZero() || second.Date.IsZero() {
		t.Fatal("orders must carry a creation timestamp")
	}

	history := store.Orders()
	if len(history) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(history))
	}
	if history[0].ID != second.ID {
		t.Fatal("newest order must be first in history")
	}
}

func TestHydrateRoundTrip(t *testing.T) {
	t.Parallel()

	repo := kv.NewMemory()
	ctx := context.Background()

	first, err := NewStore(StoreParams{Repo: repo, Provider: StubProvider{}, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := first.Signup(ctx, "Jane", "jane@x.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := first.AddToWishlist(ctx, "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	placed, err := first.AddOrder(ctx, orderInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := NewStore(StoreParams{Repo: repo, Provider: StubProvider{}, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := second.Hydrate(ctx); err != nil {
		t.Fatalf("unexpected hydrate error: %v", err)
	}

	identity, ok := second.Identity()
	if !ok || identity.Email != "jane@x.com" {
		t.Fatalf("identity lost in round trip: %+v", identity)
	}
	if !second.IsInWishlist("3") {
		t.Fatal("wishlist lost in round trip")
	}
	orders := second.Orders()
	if len(orders) != 1 || orders[0].ID != placed.ID {
		t.Fatalf("orders lost in round trip: %+v", orders)
	}
	if orders[0].Status != enums.OrderStatusPending {
		t.Fatalf("order status lost in round trip: %s", orders[0].Status)
	}
	if !orders[0].Total.Equal(placed.Total) {
		t.Fatalf("order total lost in round trip: %s", orders[0].Total)
	}
}

func TestHydrateAbsentKeysYieldEmptyState(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("absent snapshots should hydrate clean: %v", err)
	}
	if store.IsAuthenticated() || len(store.Wishlist()) != 0 || len(store.Orders()) != 0 {
		t.Fatal("expected empty session state")
	}
}

func TestHydrateAggregatesCorruptKeys(t *testing.T) {
	t.Parallel()

	repo := kv.NewMemory()
	ctx := context.Background()
	if err := repo.Set(ctx, WishlistKey, []byte("{nope")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Set(ctx, OrdersKey, []byte("{nope")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store, err := NewStore(StoreParams{Repo: repo, Provider: StubProvider{}, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Hydrate(ctx); err == nil {
		t.Fatal("expected hydrate to report corrupt snapshots")
	}
}

func TestSubscribersNotified(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	calls := 0
	unsubscribe := store.Subscribe(func() { calls++ })

	if err := store.AddToWishlist(ctx, "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected notification after wishlist add, got %d", calls)
	}

	// Idempotent re-add changes nothing and must not notify.
	if err := store.AddToWishlist(ctx, "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("no-op must not notify, got %d", calls)
	}

	unsubscribe()
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("unsubscribed callback still invoked, calls=%d", calls)
	}
}
