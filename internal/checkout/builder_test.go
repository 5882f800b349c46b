package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giasinguyen/TrendShirts/internal/domain"
	"github.com/giasinguyen/TrendShirts/internal/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func twoTees() *domain.Cart {
	return &domain.Cart{
		SessionID: "s1",
		Items: []domain.LineItem{
			{
				ItemKey:   domain.MakeItemKey(1, "black", "M"),
				ProductID: 1,
				Name:      "Classic Tee",
				UnitPrice: dec("29.99"),
				Quantity:  2,
			},
		},
	}
}

func TestBuildDraft_PricesAtBuildTime(t *testing.T) {
	draft, err := BuildDraft(twoTees(), validShipping(), validPayment(), pricing.DefaultConfig())
	require.NoError(t, err)

	assert.True(t, dec("59.98").Equal(draft.Subtotal))
	assert.True(t, dec("5.99").Equal(draft.ShippingCost))
	assert.True(t, dec("4.80").Equal(draft.TaxAmount))
	assert.True(t, dec("70.77").Equal(draft.Total))
	assert.True(t, draft.Subtotal.Add(draft.ShippingCost).Add(draft.TaxAmount).Equal(draft.Total))
}

func TestBuildDraft_EmptyCart(t *testing.T) {
	draft, err := BuildDraft(&domain.Cart{SessionID: "s1"}, validShipping(), validPayment(), pricing.DefaultConfig())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, draft)
}

func TestBuildDraft_InvalidShippingRejected(t *testing.T) {
	shipping := validShipping()
	shipping.Email = ""

	draft, err := BuildDraft(twoTees(), shipping, validPayment(), pricing.DefaultConfig())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Nil(t, draft)
}

func TestBuildDraft_ReportsShippingAndPaymentViolationsTogether(t *testing.T) {
	shipping := validShipping()
	shipping.Email = "not-an-email"
	payment := validPayment()
	payment.CardNumber = "4111"

	_, err := BuildDraft(twoTees(), shipping, payment, pricing.DefaultConfig())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "cardNumber")
}

func TestBuildDraft_RetainsOnlyLastFourDigits(t *testing.T) {
	draft, err := BuildDraft(twoTees(), validShipping(), validPayment(), pricing.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "1111", draft.LastFourDigits)
	assert.Equal(t, "Credit Card", draft.PaymentMethodLabel)
}

func TestBuildDraft_FrozenAgainstLaterCartMutation(t *testing.T) {
	cart := twoTees()
	draft, err := BuildDraft(cart, validShipping(), validPayment(), pricing.DefaultConfig())
	require.NoError(t, err)

	// cart keeps mutating after the snapshot is priced
	cart.Items[0].Quantity = 99
	cart.Items = append(cart.Items, domain.LineItem{ItemKey: "2::", ProductID: 2, Quantity: 1})

	require.Len(t, draft.Items, 1)
	assert.Equal(t, 2, draft.Items[0].Quantity)
	assert.True(t, dec("70.77").Equal(draft.Total))
}

func TestBuildDraft_CopiesShippingAddress(t *testing.T) {
	draft, err := BuildDraft(twoTees(), validShipping(), validPayment(), pricing.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", draft.ShippingAddress.FullName)
	assert.Equal(t, "1 Main St", draft.ShippingAddress.Street)
	assert.Equal(t, "jane@example.com", draft.CustomerEmail)
}
