package catalog

import "time"

// Product is read-only catalog data. The cart never mutates it; line items
// snapshot the pricing fields they need at add time.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         int       `json:"price"`
	OriginalPrice *int      `json:"original_price,omitempty"` // absent = no strike-through price
	Category      string    `json:"category"`
	Sizes         []string  `json:"sizes"`
	InStock       bool      `json:"in_stock"`
	Featured      bool      `json:"featured"`
	Discount      int       `json:"discount"` // percent, 0-100, 0 = none
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// EffectivePrice is the unit price after the percentage discount, as a
// continuous value. Rounding happens once per total, not per line.
func (p Product) EffectivePrice() float64 {
	return float64(p.Price) * (1 - float64(p.Discount)/100)
}

func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
