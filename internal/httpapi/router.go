// Package httpapi is the HTTP surface over the storefront core: cart,
// checkout, orders and products, with the middleware stack and the error
// conventions the UI expects.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
	Products *ProductHandler

	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.Delete("/", cfg.Cart.ClearCart)
			r.Post("/items", cfg.Cart.AddItem)
			r.Put("/items/{item_key}", cfg.Cart.UpdateQuantity)
			r.Delete("/items/{item_key}", cfg.Cart.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", cfg.Checkout.Quote)
			r.Get("/shipping-info", cfg.Checkout.SavedShippingInfo)
			r.Post("/", cfg.Checkout.PlaceOrder)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", cfg.Orders.ListOrders)
			r.Get("/statistics", cfg.Orders.Statistics)
			r.Get("/{order_id}", cfg.Orders.GetOrder)
			r.Patch("/{order_id}/status", cfg.Orders.UpdateStatus)
			r.Post("/{order_id}/cancel", cfg.Orders.CancelOrder)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.Products.ListProducts)
			r.Get("/{product_id}", cfg.Products.GetProduct)

			// admin CRUD only exists when the storefront owns its catalog
			if cfg.Products.HasAdmin() {
				r.Post("/", cfg.Products.CreateProduct)
				r.Put("/{product_id}", cfg.Products.UpdateProduct)
				r.Delete("/{product_id}", cfg.Products.DeleteProduct)
			}
		})

		if cfg.Products.HasAdmin() {
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", cfg.Products.ListCategories)
				r.Post("/", cfg.Products.CreateCategory)
				r.Delete("/{category_id}", cfg.Products.DeleteCategory)
			})
		}
	})

	return r
}
