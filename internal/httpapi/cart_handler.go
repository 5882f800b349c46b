package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/giasinguyen/TrendShirts/internal/cart"
	"github.com/giasinguyen/TrendShirts/internal/client"
	"github.com/giasinguyen/TrendShirts/internal/domain"
	"github.com/giasinguyen/TrendShirts/internal/pricing"
)

type CartHandler struct {
	carts    *cart.Store
	products client.ProductAPI
	cfg      pricing.Config
}

func NewCartHandler(carts *cart.Store, products client.ProductAPI, cfg pricing.Config) *CartHandler {
	return &CartHandler{carts: carts, products: products, cfg: cfg}
}

type AddItemRequestDTO struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items     []domain.LineItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	Quote     pricing.Quote     `json:"quote"`
}

func (h *CartHandler) cartResponse(c *domain.Cart) CartResponseDTO {
	items := c.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return CartResponseDTO{
		Items:     items,
		ItemCount: c.ItemCount(),
		Subtotal:  pricing.Round2(c.Subtotal()),
		Quote:     pricing.QuoteCart(c, h.cfg),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	c := h.carts.Get(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, h.cartResponse(c))
}

// AddItem resolves the product against the catalog so the cart always
// carries the canonical name and price, not whatever the UI happened to
// display.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.products.GetProductByID(r.Context(), req.ProductID)
	if err != nil {
		handleError(w, err)
		return
	}

	h.carts.AddItem(r.Context(), sessionID, domain.LineItem{
		ItemKey:   domain.MakeItemKey(product.ID, req.Color, req.Size),
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Color:     req.Color,
		Size:      req.Size,
		ImageURL:  product.ImageURL,
	}, req.Quantity)

	c := h.carts.Get(r.Context(), sessionID)
	respondJSON(w, http.StatusCreated, h.cartResponse(c))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	itemKey := chi.URLParam(r, "item_key")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 0 and 99")
		return
	}

	// quantity 0 removes the line; unknown keys are a deliberate no-op
	h.carts.UpdateQuantity(r.Context(), sessionID, itemKey, req.Quantity)

	c := h.carts.Get(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, h.cartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	itemKey := chi.URLParam(r, "item_key")

	h.carts.RemoveItem(r.Context(), sessionID, itemKey)

	c := h.carts.Get(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, h.cartResponse(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	h.carts.Clear(r.Context(), sessionID)

	c := h.carts.Get(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, h.cartResponse(c))
}
