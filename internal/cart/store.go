// Package cart holds the authoritative in-session cart state. Mutations use
// idempotent-merge semantics and never fail: unknown item keys are no-ops,
// and persistence failures are logged without blocking the in-memory change.
package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/giasinguyen/TrendShirts/internal/domain"
)

type Store struct {
	mu      sync.RWMutex
	carts   map[string]*domain.Cart
	persist Persistence
	sfg     singleflight.Group // prevents concurrent loads of the same session
}

func NewStore(persist Persistence) *Store {
	return &Store{
		carts:   make(map[string]*domain.Cart),
		persist: persist,
	}
}

// Get returns a detached copy of the session's cart, restoring it from
// persistence on first access. A session with no persisted cart gets a fresh
// empty one. Callers never see the live cart: concurrent mutations on the
// same session would race with their reads otherwise.
func (s *Store) Get(ctx context.Context, sessionID string) *domain.Cart {
	cart := s.live(ctx, sessionID)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return cart.Snapshot()
}

// live returns the shared cart instance. Only the store itself may touch it,
// and only under mu.
func (s *Store) live(ctx context.Context, sessionID string) *domain.Cart {
	s.mu.RLock()
	cart, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return cart
	}

	v, _, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		loaded, err := s.persist.Load(ctx, sessionID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Printf("cart load error for session %s: %v", sessionID, err)
			}
			now := time.Now()
			loaded = &domain.Cart{SessionID: sessionID, CreatedAt: now, UpdatedAt: now}
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		// another goroutine may have won while persistence was loading
		if existing, ok := s.carts[sessionID]; ok {
			return existing, nil
		}
		s.carts[sessionID] = loaded
		return loaded, nil
	})
	return v.(*domain.Cart)
}

// AddItem merges the item into the cart: an existing line with the same item
// key gets its quantity incremented, otherwise the item is appended. A repeat
// add is the defined merge behavior, not an error. Quantity below 1 or a
// negative unit price is ignored.
func (s *Store) AddItem(ctx context.Context, sessionID string, item domain.LineItem, quantity int) {
	if quantity < 1 || item.UnitPrice.IsNegative() {
		return
	}

	cart := s.live(ctx, sessionID)

	s.mu.Lock()
	merged := false
	for i := range cart.Items {
		if cart.Items[i].ItemKey == item.ItemKey {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		item.AddedAt = time.Now()
		cart.Items = append(cart.Items, item)
	}
	cart.UpdatedAt = time.Now()
	snapshot := cart.Snapshot()
	s.mu.Unlock()

	s.save(ctx, snapshot)
}

// UpdateQuantity replaces the line's quantity in place. Below 1 it behaves as
// RemoveItem. An unknown item key is a no-op; the UI may hold stale state.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, itemKey string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(ctx, sessionID, itemKey)
		return
	}

	cart := s.live(ctx, sessionID)

	s.mu.Lock()
	found := false
	for i := range cart.Items {
		if cart.Items[i].ItemKey == itemKey {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	cart.UpdatedAt = time.Now()
	snapshot := cart.Snapshot()
	s.mu.Unlock()

	s.save(ctx, snapshot)
}

// RemoveItem drops the matching line item; no-op if absent.
func (s *Store) RemoveItem(ctx context.Context, sessionID, itemKey string) {
	cart := s.live(ctx, sessionID)

	s.mu.Lock()
	found := false
	for i, item := range cart.Items {
		if item.ItemKey == itemKey {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	cart.UpdatedAt = time.Now()
	snapshot := cart.Snapshot()
	s.mu.Unlock()

	s.save(ctx, snapshot)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context, sessionID string) {
	cart := s.live(ctx, sessionID)

	s.mu.Lock()
	cart.Items = nil
	cart.UpdatedAt = time.Now()
	s.mu.Unlock()

	// persistence write is detached from the request deadline but bounded
	dctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.persist.Delete(dctx, sessionID); err != nil {
		log.Printf("cart delete error for session %s: %v", sessionID, err)
	}
}

// save writes the snapshot to persistence, best-effort.
func (s *Store) save(_ context.Context, snapshot *domain.Cart) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.persist.Save(ctx, snapshot); err != nil {
		log.Printf("cart save error for session %s: %v", snapshot.SessionID, err)
	}
}
