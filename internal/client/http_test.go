package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giasinguyen/TrendShirts/internal/domain"
)

func TestHTTPProductAPI_GetProductByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    7,
			"name":  "Classic Tee",
			"price": "29.99",
		})
	}))
	defer srv.Close()

	api := NewHTTPProductAPI(srv.URL, 5*time.Second)
	product, err := api.GetProductByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), product.ID)
	assert.Equal(t, "Classic Tee", product.Name)
	assert.True(t, dec("29.99").Equal(product.Price))
}

func TestHTTPProductAPI_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	api := NewHTTPProductAPI(srv.URL, 5*time.Second)
	_, err := api.GetProductByID(context.Background(), 999)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestHTTPProductAPI_ForwardsFilterOptions(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		json.NewEncoder(w).Encode(ProductPage{Page: 2, Limit: 5})
	}))
	defer srv.Close()

	minPrice := dec("10")
	api := NewHTTPProductAPI(srv.URL, 5*time.Second)
	page, err := api.GetProducts(context.Background(), FilterOptions{
		Page:     2,
		Limit:    5,
		Category: "shirts",
		Search:   "classic",
		Sort:     "price_asc",
		MinPrice: &minPrice,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Contains(t, query, "page=2")
	assert.Contains(t, query, "category=shirts")
	assert.Contains(t, query, "search=classic")
	assert.Contains(t, query, "sort=price_asc")
	assert.Contains(t, query, "minPrice=10")
}

func TestHTTPOrderAPI_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)

		var received domain.OrderDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, "1111", received.LastFourDigits)

		json.NewEncoder(w).Encode(domain.Order{
			ID:          "ord-1",
			OrderNumber: "TN-000001",
			Status:      domain.OrderStatusPending,
			Total:       received.Total,
		})
	}))
	defer srv.Close()

	api := NewHTTPOrderAPI(srv.URL, 5*time.Second)
	order, err := api.CreateOrder(context.Background(), draft("70.77"))

	require.NoError(t, err)
	assert.Equal(t, "TN-000001", order.OrderNumber)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, dec("70.77").Equal(order.Total))
}

func TestHTTPOrderAPI_UpdateOrderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/orders/ord-1/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(domain.Order{ID: "ord-1", Status: domain.OrderStatus(body["status"])})
	}))
	defer srv.Close()

	api := NewHTTPOrderAPI(srv.URL, 5*time.Second)
	order, err := api.UpdateOrderStatus(context.Background(), "ord-1", domain.OrderStatusShipped)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)
}

func TestHTTPOrderAPI_ConflictBecomesInvalidTransition(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "cannot ship a delivered order", http.StatusConflict)
	}))
	defer srv.Close()

	api := NewHTTPOrderAPI(srv.URL, 5*time.Second)
	ctx := context.Background()

	// a rejected transition must not count as a backend failure either:
	// repeated conflicts would otherwise open the breaker
	var terr *domain.InvalidTransitionError
	for i := 0; i < 10; i++ {
		_, err := api.UpdateOrderStatus(ctx, "ord-1", domain.OrderStatusShipped)
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, domain.OrderStatusShipped, terr.To)
	}
	assert.Equal(t, 10, calls)
}

func TestHTTPOrderAPI_ServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	api := NewHTTPOrderAPI(srv.URL, 5*time.Second)
	_, err := api.CreateOrder(context.Background(), draft("70.77"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestHTTPClient_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	api := NewHTTPOrderAPI(srv.URL, time.Second)
	ctx := context.Background()

	// default gobreaker trips after five consecutive failures
	for i := 0; i < 6; i++ {
		_, err := api.GetOrderByID(ctx, "ord-1")
		require.Error(t, err)
	}

	_, err := api.GetOrderByID(ctx, "ord-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}
