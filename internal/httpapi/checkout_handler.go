package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/giasinguyen/TrendShirts/internal/checkout"
	"github.com/giasinguyen/TrendShirts/internal/domain"
)

type CheckoutHandler struct {
	checkout *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc}
}

type PlaceOrderRequestDTO struct {
	Shipping domain.ShippingInfo `json:"shipping"`
	Payment  domain.PaymentInfo  `json:"payment"`
}

func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	respondJSON(w, http.StatusOK, h.checkout.Quote(r.Context(), sessionID))
}

func (h *CheckoutHandler) SavedShippingInfo(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	info := h.checkout.SavedShippingInfo(r.Context(), sessionID)
	if info == nil {
		respondError(w, http.StatusNotFound, "not_found", "no saved shipping info")
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), sessionID, req.Shipping, req.Payment)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}
