package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/giasinguyen/TrendShirts/internal/cart"
	"github.com/giasinguyen/TrendShirts/internal/catalog"
	"github.com/giasinguyen/TrendShirts/internal/checkout"
	"github.com/giasinguyen/TrendShirts/internal/client"
	"github.com/giasinguyen/TrendShirts/internal/httpapi"
	"github.com/giasinguyen/TrendShirts/internal/orders"
	"github.com/giasinguyen/TrendShirts/internal/pricing"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	RedisPassword   string
	UseFixtures     bool
	CatalogDBPath   string
	ProductAPIURL   string
	OrderAPIURL     string
	TaxRate         string
	FlatShippingFee string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		UseFixtures:     getEnv("USE_LOCAL_FIXTURES", "true") == "true",
		CatalogDBPath:   getEnv("CATALOG_DB_PATH", "catalog.db"),
		ProductAPIURL:   getEnv("PRODUCT_API_URL", "http://localhost:9090"),
		OrderAPIURL:     getEnv("ORDER_API_URL", "http://localhost:9091"),
		TaxRate:         getEnv("TAX_RATE", "0.08"),
		FlatShippingFee: getEnv("FLAT_SHIPPING_FEE", "5.99"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	pricingCfg, err := pricingConfig(cfg)
	if err != nil {
		log.Fatalf("Invalid pricing configuration: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Connected to Redis at %s", cfg.RedisAddr)

	persist := cart.NewRedisPersistence(redisClient)
	carts := cart.NewStore(persist)

	// the API collaborators: either the local fixtures or the remote
	// backends, decided once here
	var productAPI client.ProductAPI
	var orderAPI client.OrderAPI
	var adminCatalog *catalog.Repository

	if cfg.UseFixtures {
		repo, err := catalog.NewRepository(cfg.CatalogDBPath)
		if err != nil {
			log.Fatalf("Failed to open catalog: %v", err)
		}
		defer repo.Close()
		log.Printf("Using local catalog at %s", cfg.CatalogDBPath)

		productAPI = repo
		adminCatalog = repo
		orderAPI = client.NewFixtureOrderAPI()
	} else {
		productAPI = client.NewHTTPProductAPI(cfg.ProductAPIURL, cfg.RequestTimeout)
		orderAPI = client.NewHTTPOrderAPI(cfg.OrderAPIURL, cfg.RequestTimeout)
		log.Printf("Using remote APIs: products at %s, orders at %s", cfg.ProductAPIURL, cfg.OrderAPIURL)
	}

	checkoutSvc := checkout.NewService(carts, orderAPI, persist, pricingCfg)
	ordersSvc := orders.NewService(orderAPI)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Cart:           httpapi.NewCartHandler(carts, productAPI, pricingCfg),
		Checkout:       httpapi.NewCheckoutHandler(checkoutSvc),
		Orders:         httpapi.NewOrdersHandler(ordersSvc),
		Products:       httpapi.NewProductHandler(productAPI, adminCatalog),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}

func pricingConfig(cfg *Config) (pricing.Config, error) {
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return pricing.Config{}, err
	}
	shippingFee, err := decimal.NewFromString(cfg.FlatShippingFee)
	if err != nil {
		return pricing.Config{}, err
	}
	return pricing.Config{FlatShippingFee: shippingFee, TaxRate: taxRate}, nil
}
