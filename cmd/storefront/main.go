package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/reman-wear/storefront/internal/cart"
	"github.com/reman-wear/storefront/internal/catalog"
	"github.com/reman-wear/storefront/internal/checkout"
	"github.com/reman-wear/storefront/internal/session"
	"github.com/reman-wear/storefront/pkg/config"
	"github.com/reman-wear/storefront/pkg/kv"
	"github.com/reman-wear/storefront/pkg/logger"
)

// The storefront core has no network surface; this binary is the
// composition root a UI shell embeds. Run standalone it boots the
// configured stack, hydrates both state containers and reports a
// summary, which doubles as a smoke test of the storage backend.
func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	snapshots, err := openSnapshotStore(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open snapshot storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := snapshots.Close(); err != nil {
			logg.Error(ctx, "error closing snapshot storage", err)
		}
	}()

	products := catalog.Default()
	if cfg.Catalog.File != "" {
		products, err = catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			logg.Error(ctx, "failed to load catalog file", err)
			os.Exit(1)
		}
	}

	cartStore, err := cart.NewStore(snapshots, logg)
	if err != nil {
		logg.Error(ctx, "failed to create cart store", err)
		os.Exit(1)
	}
	if err := cartStore.Hydrate(ctx); err != nil {
		logg.Error(ctx, "failed to hydrate cart", err)
		os.Exit(1)
	}

	sessionStore, err := session.NewStore(session.StoreParams{
		Repo:     snapshots,
		Provider: session.StubProvider{Latency: cfg.Auth.SimulatedLatency},
		Logger:   logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create session store", err)
		os.Exit(1)
	}
	if err := sessionStore.Hydrate(ctx); err != nil {
		logg.Error(ctx, "failed to hydrate session", err)
		os.Exit(1)
	}

	if _, err := checkout.NewService(checkout.ServiceParams{
		Cart:    cartStore,
		Session: sessionStore,
		Logger:  logg,
	}); err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	summary := logg.WithFields(ctx, map[string]any{
		"storage_driver": cfg.Storage.Driver,
		"catalog_size":   products.Len(),
		"cart_items":     cartStore.TotalItems(),
		"cart_total":     cartStore.TotalPrice().String(),
		"authenticated":  sessionStore.IsAuthenticated(),
		"wishlist_size":  len(sessionStore.Wishlist()),
		"order_count":    len(sessionStore.Orders()),
	})
	logg.Info(summary, "storefront state hydrated")
}

func openSnapshotStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kv.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return kv.NewMemory(), nil
	case config.StorageDriverFile:
		return kv.NewFile(cfg.Storage.Dir)
	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		return kv.OpenDB(ctx, cfg.Storage, logg)
	case config.StorageDriverRedis:
		return kv.NewRedis(ctx, cfg.Redis, logg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
