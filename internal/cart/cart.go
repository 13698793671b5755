package cart

import (
	"errors"
	"math"

	"github.com/futurewear/storefront/internal/catalog"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// LineItem is one (product, size) pairing in the cart. Pricing fields are
// snapshotted from the product at add time so totals survive a reload
// without touching the catalog.
type LineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	UnitPrice int    `json:"unit_price"`
	Discount  int    `json:"discount"`
	Quantity  int    `json:"quantity"`
}

// LinePrice is the continuous (unrounded) value of the line.
func (li LineItem) LinePrice() float64 {
	unit := float64(li.UnitPrice) * (1 - float64(li.Discount)/100)
	return unit * float64(li.Quantity)
}

// Cart holds the session's line items in insertion order. At most one line
// item exists per (product, size) key. All mutations go through the methods
// below; callers within one session are expected to be sequential.
type Cart struct {
	Items []LineItem `json:"items"`
}

// AddItem merges into an existing (product, size) line or appends a new one.
// Size membership in p.Sizes is a caller precondition; it is checked at the
// HTTP boundary, not here.
func (c *Cart) AddItem(p catalog.Product, size string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID && c.Items[i].Size == size {
			c.Items[i].Quantity += qty
			return nil
		}
	}
	c.Items = append(c.Items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Size:      size,
		UnitPrice: p.Price,
		Discount:  p.Discount,
		Quantity:  qty,
	})
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// below removes the line. Never creates a new one; unknown keys are a no-op.
func (c *Cart) UpdateQuantity(productID, size string, qty int) {
	if qty <= 0 {
		c.RemoveItem(productID, size)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			c.Items[i].Quantity = qty
			return
		}
	}
}

func (c *Cart) RemoveItem(productID, size string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() { c.Items = nil }

func (c *Cart) Len() int { return len(c.Items) }

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	n := 0
	for _, li := range c.Items {
		n += li.Quantity
	}
	return n
}

// Subtotal sums the continuous per-line values and rounds once, half-up.
// Rounding a single time keeps per-line rounding error from accumulating:
// 2 x (4999 at 30% off) = 6998.6 -> 6999.
func (c *Cart) Subtotal() int {
	var sum float64
	for _, li := range c.Items {
		sum += li.LinePrice()
	}
	return int(math.Floor(sum + 0.5))
}

// Snapshot returns a copy of the line items, detached from the cart.
func (c *Cart) Snapshot() []LineItem {
	out := make([]LineItem, len(c.Items))
	copy(out, c.Items)
	return out
}
