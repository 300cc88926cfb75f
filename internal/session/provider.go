package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/reman-wear/storefront/pkg/errors"
	"github.com/reman-wear/storefront/pkg/types"
)

// IdentityProvider is the asynchronous authentication boundary. A real
// backend implementation is expected to return AUTH_REJECTED or
// NETWORK_UNAVAILABLE errors; the stub below never does.
type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (Identity, error)
	Register(ctx context.Context, name, email, password string) (Identity, error)
}

// StubProvider simulates an auth round trip with a fixed latency and
// unconditionally succeeds. Credentials are not checked.
type StubProvider struct {
	Latency time.Duration
}

// Authenticate returns the fixed demo identity bound to the supplied email.
func (p StubProvider) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	if err := p.wait(ctx); err != nil {
		return Identity{}, err
	}
	return Identity{
		ID:    "1",
		Name:  "Demo User",
		Email: email,
		Phone: "+201111111111",
		Address: &types.Address{
			Street:  "123 Main St",
			City:    "Cairo",
			State:   "Cairo",
			ZipCode: "11511",
		},
	}, nil
}

// Register mints a fresh identity for the given name and email.
func (p StubProvider) Register(ctx context.Context, name, email, password string) (Identity, error) {
	if err := p.wait(ctx); err != nil {
		return Identity{}, err
	}
	return Identity{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
	}, nil
}

func (p StubProvider) wait(ctx context.Context) error {
	if p.Latency <= 0 {
		if err := ctx.Err(); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "auth round trip aborted")
		}
		return nil
	}
	timer := time.NewTimer(p.Latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, ctx.Err(), "auth round trip aborted")
	}
}
