// Package pricing computes order totals. Everything here is pure arithmetic
// over decimals: no I/O, no state, no errors.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/giasinguyen/TrendShirts/internal/domain"
)

// Config carries the injectable pricing parameters. The defaults match the
// storefront's launch values but both are expected to come from configuration.
type Config struct {
	FlatShippingFee decimal.Decimal
	TaxRate         decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		FlatShippingFee: decimal.RequireFromString("5.99"),
		TaxRate:         decimal.RequireFromString("0.08"),
	}
}

// Round2 rounds to two decimal places, half up. Each monetary component is
// rounded independently before summation so the displayed total always equals
// the sum of the displayed parts.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Shipping is the flat fee whenever the cart is non-empty, zero otherwise.
func Shipping(subtotal decimal.Decimal, cfg Config) decimal.Decimal {
	if subtotal.IsPositive() {
		return cfg.FlatShippingFee
	}
	return decimal.Zero
}

// Tax applies the configured rate to the unrounded subtotal, then rounds.
func Tax(subtotal decimal.Decimal, cfg Config) decimal.Decimal {
	return Round2(subtotal.Mul(cfg.TaxRate))
}

// Total sums the three components after rounding each of them independently.
func Total(subtotal, shipping, tax decimal.Decimal) decimal.Decimal {
	return Round2(subtotal).Add(Round2(shipping)).Add(Round2(tax))
}

// Quote is the full pricing breakdown for a cart.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// QuoteCart prices a cart. An empty cart yields an all-zero quote; that is a
// valid result, not an error.
func QuoteCart(cart *domain.Cart, cfg Config) Quote {
	subtotal := cart.Subtotal()
	shipping := Shipping(subtotal, cfg)
	tax := Tax(subtotal, cfg)
	return Quote{
		Subtotal: Round2(subtotal),
		Shipping: Round2(shipping),
		Tax:      tax,
		Total:    Total(subtotal, shipping, tax),
	}
}
