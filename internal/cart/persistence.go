package cart

import (
	"context"
	"errors"

	"github.com/giasinguyen/TrendShirts/internal/domain"
)

// Persistence is the durable key-value store carts survive restarts in.
// It is a best-effort cache, never the system of record: every write failure
// is logged and swallowed, the in-memory cart stays authoritative.
type Persistence interface {
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error

	// Saved shipping info is the "remember my details" feature; same
	// best-effort contract as the cart itself.
	SaveShippingInfo(ctx context.Context, sessionID string, info domain.ShippingInfo) error
	LoadShippingInfo(ctx context.Context, sessionID string) (*domain.ShippingInfo, error)
}

var ErrNotFound = errors.New("not found in cart persistence")
