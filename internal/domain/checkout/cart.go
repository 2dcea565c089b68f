package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tindahan/backend/internal/domain/catalog"
)

// CartLine is one (product, quantity) pair in a cart. The product is a
// snapshot of the catalog entry at the time it was added.
type CartLine struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// UnitPrice parses the product's display price
func (l CartLine) UnitPrice() decimal.Decimal {
	return ParseAmount(l.Product.Price)
}

// Subtotal is unit price times quantity
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the line items of one browsing session. Invariants: at most
// one line per product ID, and no line ever has quantity zero. Mutations
// are pure in-memory state transitions; the cart is not safe for
// concurrent use and must be owned by a single session.
type Cart struct {
	Items []CartLine `json:"items"`
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// Clone returns an independent copy of the cart. Lines carry their
// product snapshots by value, so copying the slice copies everything.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := &Cart{}
	if len(c.Items) > 0 {
		clone.Items = make([]CartLine, len(c.Items))
		copy(clone.Items, c.Items)
	}
	return clone
}

// AddLine merges qty into an existing line for the same product or appends
// a new one. Quantities below one are treated as one. No upper bound is
// enforced at this layer.
func (c *Cart) AddLine(product catalog.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == product.ID {
			c.Items[i].Quantity += qty
			return
		}
	}
	c.Items = append(c.Items, CartLine{Product: product, Quantity: qty})
}

// SetQuantity sets the line's quantity to max(0, qty); a resulting
// quantity of zero removes the line in the same operation. No-op when the
// product is not in the cart.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) {
	if qty < 0 {
		qty = 0
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			if qty == 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = qty
			}
			return
		}
	}
}

// RemoveLine removes the line unconditionally; no-op if absent
func (c *Cart) RemoveLine(productID uuid.UUID) {
	c.SetQuantity(productID, 0)
}

// Total sums unit price times quantity over all lines
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Items {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount sums the quantities of all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Items {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = nil
}

// Lines returns a copy of the line items in insertion order
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.Items))
	copy(out, c.Items)
	return out
}
