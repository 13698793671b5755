package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("product not found")

// Sort orders accepted by List. SortFeatured is the default.
const (
	SortFeatured  = "featured"
	SortName      = "name"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// Catalog is the read-only product feed the storefront consumes.
type Catalog interface {
	List(ctx context.Context, category, sortBy string) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
}

// Memory serves products from a fixed slice. Used in tests and local runs
// without Postgres.
type Memory struct {
	products []Product
}

func NewMemory(products []Product) *Memory {
	return &Memory{products: products}
}

func (m *Memory) List(_ context.Context, category, sortBy string) ([]Product, error) {
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		if category == "" || category == "all" || strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	sortProducts(out, sortBy)
	return out, nil
}

func (m *Memory) Get(_ context.Context, id string) (Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func sortProducts(ps []Product, sortBy string) {
	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price < ps[j].Price })
	case SortPriceHigh:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price > ps[j].Price })
	case SortName:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Name < ps[j].Name })
	default: // featured first, original order otherwise
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Featured && !ps[j].Featured })
	}
}
