package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/giasinguyen/TrendShirts/internal/catalog"
	"github.com/giasinguyen/TrendShirts/internal/client"
	"github.com/giasinguyen/TrendShirts/internal/domain"
)

type ProductHandler struct {
	products client.ProductAPI
	// admin is set only when the storefront runs its own catalog; the
	// remote backend owns CRUD otherwise.
	admin *catalog.Repository
}

func NewProductHandler(products client.ProductAPI, admin *catalog.Repository) *ProductHandler {
	return &ProductHandler{products: products, admin: admin}
}

func (h *ProductHandler) HasAdmin() bool {
	return h.admin != nil
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := client.FilterOptions{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	}
	opts.Page, _ = strconv.Atoi(q.Get("page"))
	opts.Limit, _ = strconv.Atoi(q.Get("limit"))
	if v := q.Get("minPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			opts.MinPrice = &d
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			opts.MaxPrice = &d
		}
	}

	page, err := h.products.GetProducts(r.Context(), opts)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, err := h.products.GetProductByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

type ProductRequestDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	CategoryID  int64           `json:"category_id"`
}

func (dto ProductRequestDTO) validate() string {
	switch {
	case dto.Name == "":
		return "name is required"
	case dto.Price.IsNegative():
		return "price must not be negative"
	case dto.CategoryID <= 0:
		return "category_id must be positive"
	}
	return ""
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "invalid_product", msg)
		return
	}

	created, err := h.admin.CreateProduct(r.Context(), &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "invalid_product", msg)
		return
	}

	updated, err := h.admin.UpdateProduct(r.Context(), &domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	if err := h.admin.DeleteProduct(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.admin.GetCategories(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *ProductHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req domain.Category
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_category", "name is required")
		return
	}

	created, err := h.admin.CreateCategory(r.Context(), &domain.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "category_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_category_id", "category_id must be a positive integer")
		return
	}

	if err := h.admin.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrCategoryInUse) {
			respondError(w, http.StatusConflict, "category_in_use", err.Error())
			return
		}
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
