package client

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giasinguyen/TrendShirts/internal/domain"
)

// FixtureOrderAPI is the in-memory stand-in for the order backend, used in
// development and tests. It applies the same rules the real backend does:
// new orders start PENDING and status changes obey the lifecycle table.
type FixtureOrderAPI struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	seq    int
}

func NewFixtureOrderAPI() *FixtureOrderAPI {
	return &FixtureOrderAPI{orders: make(map[string]*domain.Order)}
}

func (f *FixtureOrderAPI) CreateOrder(_ context.Context, draft *domain.OrderDraft) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	now := time.Now()
	order := &domain.Order{
		ID:                 uuid.NewString(),
		OrderNumber:        fmt.Sprintf("TN-%06d", f.seq),
		Status:             domain.OrderStatusPending,
		Items:              draft.Items,
		Subtotal:           draft.Subtotal,
		ShippingCost:       draft.ShippingCost,
		TaxAmount:          draft.TaxAmount,
		Total:              draft.Total,
		ShippingAddress:    draft.ShippingAddress,
		CustomerEmail:      draft.CustomerEmail,
		PaymentMethodLabel: draft.PaymentMethodLabel,
		LastFourDigits:     draft.LastFourDigits,
		PaymentStatus:      "PAID",
		OrderDate:          now,
		UpdatedAt:          now,
	}
	f.orders[order.ID] = order

	return copyOrder(order), nil
}

func (f *FixtureOrderAPI) GetOrderByID(_ context.Context, id string) (*domain.Order, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	order, ok := f.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return copyOrder(order), nil
}

func (f *FixtureOrderAPI) UpdateOrderStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if !order.Status.CanTransition(status) {
		return nil, &domain.InvalidTransitionError{From: order.Status, To: status}
	}

	order.Status = status
	order.UpdatedAt = time.Now()
	return copyOrder(order), nil
}

func (f *FixtureOrderAPI) ListOrders(_ context.Context, filter OrderFilter) (*OrderPage, error) {
	f.mu.RLock()
	all := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		all = append(all, *copyOrder(o))
	}
	f.mu.RUnlock()

	sortOrders(all, filter.SortBy, filter.SortOrder)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	totalItems := len(all)
	totalPages := (totalItems + limit - 1) / limit
	start := (page - 1) * limit
	if start > totalItems {
		start = totalItems
	}
	end := start + limit
	if end > totalItems {
		end = totalItems
	}

	return &OrderPage{
		Orders:     all[start:end],
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

func (f *FixtureOrderAPI) Statistics(_ context.Context) (*OrderStatistics, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	stats := &OrderStatistics{
		TotalRevenue:   decimal.Zero,
		TotalOrders:    len(f.orders),
		OrdersByStatus: make(map[domain.OrderStatus]int),
	}
	for _, o := range f.orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		stats.OrdersByStatus[o.Status]++
	}
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.
			Div(decimal.NewFromInt(int64(stats.TotalOrders))).Round(2)
	} else {
		stats.AverageOrderValue = decimal.Zero
	}
	return stats, nil
}

func sortOrders(orders []domain.Order, sortBy, sortOrder string) {
	less := func(a, b domain.Order) bool { return a.OrderDate.Before(b.OrderDate) }
	switch sortBy {
	case "total":
		less = func(a, b domain.Order) bool { return a.Total.LessThan(b.Total) }
	case "status":
		less = func(a, b domain.Order) bool { return a.Status < b.Status }
	}

	// ties fall back to the id: the gather above walks a map, so without a
	// total order equal orders would page differently on every call
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if sortOrder == "asc" {
			a, b = b, a
		}
		if less(b, a) {
			return true
		}
		if less(a, b) {
			return false
		}
		return orders[i].ID < orders[j].ID
	})
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = make([]domain.LineItem, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp
}
