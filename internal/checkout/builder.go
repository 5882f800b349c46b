// Package checkout validates checkout input and turns a cart snapshot into a
// frozen, fully priced order draft, then drives the submission flow against
// the order API.
package checkout

import (
	"errors"
	"time"

	"github.com/giasinguyen/TrendShirts/internal/domain"
	"github.com/giasinguyen/TrendShirts/internal/pricing"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// BuildDraft validates shipping and payment input and produces an immutable
// order draft. Totals are computed here, at build time, never reused from
// whatever the UI displayed. Of the card data only the last four digits are
// retained; the full number and CVV never leave this function.
func BuildDraft(snapshot *domain.Cart, shipping domain.ShippingInfo, payment domain.PaymentInfo, cfg pricing.Config) (*domain.OrderDraft, error) {
	if snapshot == nil || snapshot.IsEmpty() {
		return nil, ErrEmptyCart
	}
	// both forms validate together so one response carries every bad field
	fields := make(map[string]string)
	var verr *ValidationError
	if err := ValidateShipping(shipping); errors.As(err, &verr) {
		for k, v := range verr.Fields {
			fields[k] = v
		}
	}
	if err := ValidatePayment(payment, time.Now()); errors.As(err, &verr) {
		for k, v := range verr.Fields {
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	quote := pricing.QuoteCart(snapshot, cfg)

	items := make([]domain.LineItem, len(snapshot.Items))
	copy(items, snapshot.Items)

	digits := digitsOnly(payment.CardNumber)

	return &domain.OrderDraft{
		Items:        items,
		Subtotal:     quote.Subtotal,
		ShippingCost: quote.Shipping,
		TaxAmount:    quote.Tax,
		Total:        quote.Total,
		ShippingAddress: domain.ShippingAddress{
			FullName: shipping.FullName,
			Street:   shipping.Address,
			City:     shipping.City,
			State:    shipping.State,
			ZipCode:  shipping.ZipCode,
			Country:  shipping.Country,
			Phone:    shipping.Phone,
		},
		CustomerEmail:      shipping.Email,
		PaymentMethodLabel: "Credit Card",
		LastFourDigits:     digits[len(digits)-4:],
	}, nil
}
