package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one product variant plus quantity inside a cart. Two cart
// entries with the same product but a different color or size are distinct
// line items.
type LineItem struct {
	ItemKey   string          `json:"item_key"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
}

// MakeItemKey builds the composite identity of a product variant.
func MakeItemKey(productID int64, color, size string) string {
	return fmt.Sprintf("%d:%s:%s", productID, color, size)
}

// LineTotal is unit price times quantity, unrounded.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ItemCount is the sum of all line item quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the sum of unit price times quantity over all line items,
// unrounded. Rounding happens in the pricing calculator.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Snapshot returns a deep copy of the cart. The store keeps mutating the
// live cart after checkout starts; the copy is what gets priced and frozen
// into an order draft.
func (c *Cart) Snapshot() *Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return &Cart{
		SessionID: c.SessionID,
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
