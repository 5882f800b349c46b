package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/giasinguyen/TrendShirts/internal/client"
	"github.com/giasinguyen/TrendShirts/internal/domain"
	"github.com/giasinguyen/TrendShirts/internal/orders"
)

type OrdersHandler struct {
	orders *orders.Service
}

func NewOrdersHandler(svc *orders.Service) *OrdersHandler {
	return &OrdersHandler{orders: svc}
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

// OrderViewDTO decorates an order with its status display metadata for the UI.
type OrderViewDTO struct {
	*domain.Order
	StatusDisplay domain.StatusDisplay `json:"status_display"`
}

func orderView(o *domain.Order) OrderViewDTO {
	return OrderViewDTO{Order: o, StatusDisplay: o.Status.Display()}
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "order_id")

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderView(order))
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "order_id")

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.orders.SetStatus(r.Context(), order, domain.OrderStatus(req.Status)); err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderView(order))
}

func (h *OrdersHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "order_id")

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.orders.Cancel(r.Context(), order); err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderView(order))
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := client.OrderFilter{
		Status:    domain.OrderStatus(q.Get("status")),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	page, err := h.orders.List(r.Context(), filter)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *OrdersHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Statistics(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
