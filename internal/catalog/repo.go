package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo serves the catalog from Postgres. Sorting happens in Go so the memory
// and database catalogs order results identically.
type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) List(ctx context.Context, category, sortBy string) ([]Product, error) {
	q := `SELECT id, name, description, price, original_price, category, sizes,
	             in_stock, featured, discount, created_at, updated_at
	      FROM products`
	args := []any{}
	if category != "" && category != "all" {
		q += ` WHERE category = $1`
		args = append(args, category)
	}
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice,
			&p.Category, &p.Sizes, &p.InStock, &p.Featured, &p.Discount,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortProducts(out, sortBy)
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, description, price, original_price, category, sizes,
		       in_stock, featured, discount, created_at, updated_at
		FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice,
			&p.Category, &p.Sizes, &p.InStock, &p.Featured, &p.Discount,
			&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}
