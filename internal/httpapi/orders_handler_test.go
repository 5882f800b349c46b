package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giasinguyen/TrendShirts/internal/client"
	"github.com/giasinguyen/TrendShirts/internal/domain"
)

// placeOrder drives a full checkout so the order exists in the fixture
// backend the same way it would in production.
func placeOrder(t *testing.T, env *testEnv, sessionID string) domain.Order {
	t.Helper()

	env.request(t, http.MethodPost, "/api/v1/cart/items", sessionID, addItemBody(env, 1))
	rec := env.request(t, http.MethodPost, "/api/v1/checkout", sessionID, validCheckoutBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[domain.Order](t, rec)
}

func TestGetOrder(t *testing.T) {
	env := newTestEnv(t)
	placed := placeOrder(t, env, "sess-1")

	rec := env.request(t, http.MethodGet, "/api/v1/orders/"+placed.ID, "sess-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[OrderViewDTO](t, rec)
	assert.Equal(t, placed.OrderNumber, view.OrderNumber)
	assert.Equal(t, domain.OrderStatusPending, view.Status)
	assert.Equal(t, "Pending", view.StatusDisplay.Label)
	assert.Equal(t, "credit-card", view.StatusDisplay.Icon)
}

func TestGetOrder_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/orders/no-such-order", "sess-1", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[ErrorResponse](t, rec).Code)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	env := newTestEnv(t)
	placed := placeOrder(t, env, "sess-1")

	rec := env.request(t, http.MethodPatch, "/api/v1/orders/"+placed.ID+"/status", "sess-1",
		UpdateStatusRequestDTO{Status: "PROCESSING"})

	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[OrderViewDTO](t, rec)
	assert.Equal(t, domain.OrderStatusProcessing, view.Status)
	assert.Equal(t, "text-blue-500", view.StatusDisplay.Color)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	env := newTestEnv(t)
	placed := placeOrder(t, env, "sess-1")

	for _, status := range []string{"DELIVERED", "SHIPPED", "NONSENSE"} {
		rec := env.request(t, http.MethodPatch, "/api/v1/orders/"+placed.ID+"/status", "sess-1",
			UpdateStatusRequestDTO{Status: status})

		require.Equal(t, http.StatusConflict, rec.Code, "PENDING -> %s", status)
		assert.Equal(t, "invalid_transition", decode[ErrorResponse](t, rec).Code)
	}

	// the order is untouched after the rejected attempts
	rec := env.request(t, http.MethodGet, "/api/v1/orders/"+placed.ID, "sess-1", nil)
	assert.Equal(t, domain.OrderStatusPending, decode[OrderViewDTO](t, rec).Status)
}

func TestCancelOrder(t *testing.T) {
	env := newTestEnv(t)
	placed := placeOrder(t, env, "sess-1")

	rec := env.request(t, http.MethodPost, "/api/v1/orders/"+placed.ID+"/cancel", "sess-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[OrderViewDTO](t, rec)
	assert.Equal(t, domain.OrderStatusCancelled, view.Status)
	assert.Equal(t, "x-circle", view.StatusDisplay.Icon)

	// cancelled is terminal
	rec = env.request(t, http.MethodPost, "/api/v1/orders/"+placed.ID+"/cancel", "sess-1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)
	placeOrder(t, env, "sess-1")
	placeOrder(t, env, "sess-2")

	rec := env.request(t, http.MethodGet, "/api/v1/orders?page=1&limit=10", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[client.OrderPage](t, rec)
	assert.Equal(t, 2, page.TotalItems)
	assert.Len(t, page.Orders, 2)
}

func TestListOrders_FilterByStatus(t *testing.T) {
	env := newTestEnv(t)
	placeOrder(t, env, "sess-1")
	second := placeOrder(t, env, "sess-2")
	env.request(t, http.MethodPost, "/api/v1/orders/"+second.ID+"/cancel", "sess-2", nil)

	rec := env.request(t, http.MethodGet, "/api/v1/orders?status=CANCELLED", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[client.OrderPage](t, rec)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, second.ID, page.Orders[0].ID)
}

func TestOrderStatistics(t *testing.T) {
	env := newTestEnv(t)
	placeOrder(t, env, "sess-1")
	placeOrder(t, env, "sess-2")

	rec := env.request(t, http.MethodGet, "/api/v1/orders/statistics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[client.OrderStatistics](t, rec)
	assert.Equal(t, 2, stats.TotalOrders)
	// one item at 29.99 plus 5.99 shipping and 2.40 tax, per order
	assert.Equal(t, "76.76", stats.TotalRevenue.String())
	assert.Equal(t, "38.38", stats.AverageOrderValue.String())
	assert.Equal(t, 2, stats.OrdersByStatus[domain.OrderStatusPending])
}
