package orders

import (
	"time"

	"github.com/futurewear/storefront/internal/cart"
)

// CustomerInfo is the delivery information collected at checkout. All fields
// are required; minimum lengths are enforced by checkout validation.
type CustomerInfo struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Area     string `json:"area"`
}

// Order is an immutable snapshot taken at checkout. The items slice is a
// copy of the cart at submission time and is never shared with it.
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id,omitempty"` // empty for guest checkout
	Items          []cart.LineItem `json:"items"`
	Subtotal       int             `json:"subtotal"`
	DeliveryCharge int             `json:"delivery_charge"`
	Total          int             `json:"total"`
	CouponCode     string          `json:"coupon_code,omitempty"` // recorded only, no pricing effect
	Status         Status          `json:"status"`
	Customer       CustomerInfo    `json:"customer_info"`
	CreatedAt      time.Time       `json:"created_at"`
}
