package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShippingAddress struct {
	FullName string `json:"full_name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

// ShippingInfo is the raw checkout form input. It becomes a ShippingAddress
// once validated.
type ShippingInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Country  string `json:"country"`
	SaveInfo bool   `json:"save_info,omitempty"`
}

// PaymentInfo is the raw payment form input. The card number and CVV are
// discarded after the order draft is built; only the last four digits of the
// card survive.
type PaymentInfo struct {
	CardHolder string `json:"card_holder"`
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"` // MM/YY
	CVV        string `json:"cvv"`
}

// OrderDraft is a fully priced, immutable order payload ready for submission
// to the order API. Total is always the sum of the three independently
// rounded parts.
type OrderDraft struct {
	Items              []LineItem      `json:"items"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	ShippingCost       decimal.Decimal `json:"shipping_cost"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	Total              decimal.Decimal `json:"total"`
	ShippingAddress    ShippingAddress `json:"shipping_address"`
	CustomerEmail      string          `json:"customer_email"`
	PaymentMethodLabel string          `json:"payment_method"`
	LastFourDigits     string          `json:"last_four_digits"`
}

// Order is the persisted form, as read back from the order API.
type Order struct {
	ID                 string          `json:"id"`
	OrderNumber        string          `json:"order_number"`
	Status             OrderStatus     `json:"status"`
	Items              []LineItem      `json:"items"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	ShippingCost       decimal.Decimal `json:"shipping_cost"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	Total              decimal.Decimal `json:"total"`
	ShippingAddress    ShippingAddress `json:"shipping_address"`
	CustomerEmail      string          `json:"customer_email"`
	PaymentMethodLabel string          `json:"payment_method"`
	LastFourDigits     string          `json:"last_four_digits"`
	PaymentStatus      string          `json:"payment_status"`
	OrderDate          time.Time       `json:"order_date"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
