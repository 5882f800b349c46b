// Package orders drives the order status lifecycle. Transitions are checked
// against the domain table first; only valid ones are delegated to the order
// API, and local state changes only after the backend confirms.
package orders

import (
	"context"
	"fmt"

	"github.com/giasinguyen/TrendShirts/internal/client"
	"github.com/giasinguyen/TrendShirts/internal/domain"
)

type Service struct {
	api client.OrderAPI
}

func NewService(api client.OrderAPI) *Service {
	return &Service{api: api}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.api.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return order, nil
}

// SetStatus requests a status transition. The order passed in is mutated
// only after the backend confirms; on any failure it is left untouched.
func (s *Service) SetStatus(ctx context.Context, order *domain.Order, newStatus domain.OrderStatus) error {
	if !newStatus.Valid() {
		return &domain.InvalidTransitionError{From: order.Status, To: newStatus}
	}
	if !order.Status.CanTransition(newStatus) {
		return &domain.InvalidTransitionError{From: order.Status, To: newStatus}
	}

	updated, err := s.api.UpdateOrderStatus(ctx, order.ID, newStatus)
	if err != nil {
		return fmt.Errorf("failed to update order %s status: %w", order.ID, err)
	}

	order.Status = updated.Status
	order.UpdatedAt = updated.UpdatedAt
	return nil
}

// Cancel transitions the order to CANCELLED, which the lifecycle only allows
// before shipment.
func (s *Service) Cancel(ctx context.Context, order *domain.Order) error {
	return s.SetStatus(ctx, order, domain.OrderStatusCancelled)
}

func (s *Service) List(ctx context.Context, filter client.OrderFilter) (*client.OrderPage, error) {
	page, err := s.api.ListOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return page, nil
}

func (s *Service) Statistics(ctx context.Context) (*client.OrderStatistics, error) {
	stats, err := s.api.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get order statistics: %w", err)
	}
	return stats, nil
}
