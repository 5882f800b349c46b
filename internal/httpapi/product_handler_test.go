package httpapi

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giasinguyen/TrendShirts/internal/client"
	"github.com/giasinguyen/TrendShirts/internal/domain"
)

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/products?category=shirts", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[client.ProductPage](t, rec)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Classic Tee", page.Items[0].Name)
}

func TestGetProduct_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/products/abc", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	catsRec := env.request(t, http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, catsRec.Code)
	cats := decode[[]domain.Category](t, catsRec)
	require.NotEmpty(t, cats)

	rec := env.request(t, http.MethodPost, "/api/v1/products", "", ProductRequestDTO{
		Name:       "Vintage Hoodie",
		Price:      decimal.RequireFromString("49.50"),
		CategoryID: cats[0].ID,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[domain.Product](t, rec)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "49.50", created.Price.String())
}

func TestCreateProduct_Invalid(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/products", "", ProductRequestDTO{
		Price:      decimal.RequireFromString("10"),
		CategoryID: 1,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_product", decode[ErrorResponse](t, rec).Code)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)

	id := strconv.FormatInt(env.productID, 10)
	rec := env.request(t, http.MethodDelete, "/api/v1/products/"+id, "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/v1/products/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCategory_InUse(t *testing.T) {
	env := newTestEnv(t)

	catsRec := env.request(t, http.MethodGet, "/api/v1/categories", "", nil)
	cats := decode[[]domain.Category](t, catsRec)
	require.NotEmpty(t, cats)

	rec := env.request(t, http.MethodDelete, "/api/v1/categories/"+strconv.FormatInt(cats[0].ID, 10), "", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "category_in_use", decode[ErrorResponse](t, rec).Code)
}
