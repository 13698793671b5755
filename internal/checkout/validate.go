package checkout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/futurewear/storefront/internal/orders"
)

var ErrEmptyCart = errors.New("cart is empty")

// ValidationError reports every failing customer-info field so the form
// layer can render messages inline.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("invalid customer info: %s", strings.Join(keys, ", "))
}

// Validate re-checks the minimums the checkout form enforces. The assembler
// does not trust the form layer.
func Validate(info orders.CustomerInfo) *ValidationError {
	fields := map[string]string{}
	if len(strings.TrimSpace(info.FullName)) < 2 {
		fields["full_name"] = "name must be at least 2 characters"
	}
	if digitCount(info.Phone) < 11 {
		fields["phone"] = "phone number must be at least 11 digits"
	}
	if len(strings.TrimSpace(info.Address)) < 10 {
		fields["address"] = "please enter a complete address"
	}
	if len(strings.TrimSpace(info.City)) < 2 {
		fields["city"] = "city is required"
	}
	if len(strings.TrimSpace(info.Area)) < 2 {
		fields["area"] = "area is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
