package checkout

import (
	"context"
	"fmt"
	"log"

	"github.com/giasinguyen/TrendShirts/internal/cart"
	"github.com/giasinguyen/TrendShirts/internal/client"
	"github.com/giasinguyen/TrendShirts/internal/domain"
	"github.com/giasinguyen/TrendShirts/internal/pricing"
)

type Service struct {
	carts   *cart.Store
	orders  client.OrderAPI
	persist cart.Persistence
	cfg     pricing.Config
}

func NewService(carts *cart.Store, orders client.OrderAPI, persist cart.Persistence, cfg pricing.Config) *Service {
	return &Service{
		carts:   carts,
		orders:  orders,
		persist: persist,
		cfg:     cfg,
	}
}

// Quote prices the session's current cart for display.
func (s *Service) Quote(ctx context.Context, sessionID string) pricing.Quote {
	return pricing.QuoteCart(s.carts.Get(ctx, sessionID), s.cfg)
}

// SavedShippingInfo returns previously saved shipping details, if any.
func (s *Service) SavedShippingInfo(ctx context.Context, sessionID string) *domain.ShippingInfo {
	info, err := s.persist.LoadShippingInfo(ctx, sessionID)
	if err != nil {
		return nil
	}
	return info
}

// PlaceOrder runs the checkout sequence: validate, build the draft from a
// cart snapshot, submit, and clear the cart only after the backend confirms.
// Any failure leaves the cart untouched.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, shipping domain.ShippingInfo, payment domain.PaymentInfo) (*domain.Order, error) {
	// Get hands back a detached copy, so the draft is priced against a
	// stable view even while the session keeps mutating the cart
	snapshot := s.carts.Get(ctx, sessionID)

	draft, err := BuildDraft(snapshot, shipping, payment, s.cfg)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if shipping.SaveInfo {
		if err := s.persist.SaveShippingInfo(ctx, sessionID, shipping); err != nil {
			log.Printf("save shipping info error for session %s: %v", sessionID, err)
		}
	}

	s.carts.Clear(ctx, sessionID)
	return order, nil
}
