package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/giasinguyen/TrendShirts/internal/domain"
)

// httpClient is the shared plumbing for the remote API clients: JSON over
// REST behind a circuit breaker, so a flapping backend fails fast instead of
// tying up request handlers.
type httpClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func newHTTPClient(baseURL, name string, timeout time.Duration) *httpClient {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			// a missing resource or a rejected transition is a valid
			// answer, not a backend failure
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errNotFound) || errors.Is(err, errConflict)
			},
		}),
	}
}

func (c *httpClient) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("marshal request failed: %w", err)
			}
			reader = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("build request failed: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response failed: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, errNotFound
		case resp.StatusCode == http.StatusConflict:
			return nil, errConflict
		case resp.StatusCode >= 400:
			return nil, fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, data)
		}
		return data, nil
	})
}

// errNotFound and errConflict are translated by each client into its own
// typed errors; the breaker must not trip on either.
var (
	errNotFound = fmt.Errorf("resource not found")
	errConflict = fmt.Errorf("request conflicts with resource state")
)

// HTTPProductAPI talks to the remote product catalog.
type HTTPProductAPI struct {
	*httpClient
}

func NewHTTPProductAPI(baseURL string, timeout time.Duration) *HTTPProductAPI {
	return &HTTPProductAPI{newHTTPClient(baseURL, "product-api", timeout)}
}

func (c *HTTPProductAPI) GetProducts(ctx context.Context, opts FilterOptions) (*ProductPage, error) {
	params := url.Values{}
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Category != "" {
		params.Set("category", opts.Category)
	}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}
	if opts.MinPrice != nil {
		params.Set("minPrice", opts.MinPrice.String())
	}
	if opts.MaxPrice != nil {
		params.Set("maxPrice", opts.MaxPrice.String())
	}

	path := "/api/products"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var page ProductPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode product page failed: %w", err)
	}
	return &page, nil
}

func (c *HTTPProductAPI) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	if errors.Is(err, errNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("decode product failed: %w", err)
	}
	return &product, nil
}

// HTTPOrderAPI talks to the remote order backend.
type HTTPOrderAPI struct {
	*httpClient
}

func NewHTTPOrderAPI(baseURL string, timeout time.Duration) *HTTPOrderAPI {
	return &HTTPOrderAPI{newHTTPClient(baseURL, "order-api", timeout)}
}

func (c *HTTPOrderAPI) CreateOrder(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/orders", draft)
	if err != nil {
		return nil, err
	}
	return decodeOrder(data)
}

func (c *HTTPOrderAPI) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil)
	if errors.Is(err, errNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeOrder(data)
}

func (c *HTTPOrderAPI) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	body := map[string]string{"status": status.String()}
	data, err := c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id)+"/status", body)
	if errors.Is(err, errNotFound) {
		return nil, ErrOrderNotFound
	}
	// the backend rejected the transition; report it the same way the
	// in-process implementation does. The backend's current status is not
	// in the response, so From stays unset.
	if errors.Is(err, errConflict) {
		return nil, &domain.InvalidTransitionError{To: status}
	}
	if err != nil {
		return nil, err
	}
	return decodeOrder(data)
}

func (c *HTTPOrderAPI) ListOrders(ctx context.Context, filter OrderFilter) (*OrderPage, error) {
	params := url.Values{}
	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Status != "" {
		params.Set("status", filter.Status.String())
	}
	if filter.SortBy != "" {
		params.Set("sortBy", filter.SortBy)
	}
	if filter.SortOrder != "" {
		params.Set("sortOrder", filter.SortOrder)
	}

	path := "/api/orders/admin"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var page OrderPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode order page failed: %w", err)
	}
	return &page, nil
}

func (c *HTTPOrderAPI) Statistics(ctx context.Context) (*OrderStatistics, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/orders/statistics", nil)
	if err != nil {
		return nil, err
	}

	var stats OrderStatistics
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("decode statistics failed: %w", err)
	}
	return &stats, nil
}

func decodeOrder(data []byte) (*domain.Order, error) {
	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("decode order failed: %w", err)
	}
	return &order, nil
}
