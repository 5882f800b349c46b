// Package client defines the narrow interfaces to the storefront's external
// collaborators, the product catalog and the order backend, plus their two
// implementations each: a remote HTTP client and an in-process fixture.
// Which one runs is decided once, at composition time.
package client

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/giasinguyen/TrendShirts/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// FilterOptions are passed through to the catalog; the core does not
// interpret pagination or sorting beyond forwarding them.
type FilterOptions struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Sort     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type ProductPage struct {
	Items      []domain.Product `json:"items"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
}

type ProductAPI interface {
	GetProducts(ctx context.Context, opts FilterOptions) (*ProductPage, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
}

// OrderFilter is the admin listing filter.
type OrderFilter struct {
	Page      int
	Limit     int
	Status    domain.OrderStatus
	SortBy    string // created_at, total, status
	SortOrder string // asc, desc
}

type OrderPage struct {
	Orders     []domain.Order `json:"orders"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

// OrderStatistics is the admin dashboard aggregate.
type OrderStatistics struct {
	TotalRevenue      decimal.Decimal            `json:"total_revenue"`
	TotalOrders       int                        `json:"total_orders"`
	OrdersByStatus    map[domain.OrderStatus]int `json:"orders_by_status"`
	AverageOrderValue decimal.Decimal            `json:"average_order_value"`
}

type OrderAPI interface {
	// CreateOrder persists the draft; the backend assigns id, order number
	// and the initial PENDING status.
	CreateOrder(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) (*OrderPage, error)
	Statistics(ctx context.Context) (*OrderStatistics, error)
}
