package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/futurewear/storefront/internal/cart"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

type Repo struct{ DB *pgxpool.Pool }

// Insert writes the order header and one row per line item in a single
// transaction. Nothing is committed if any insert fails.
func (r *Repo) Insert(ctx context.Context, o Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, status, subtotal, delivery_charge, total,
		                   coupon_code, full_name, phone, address, city, area, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		o.ID, nullable(o.UserID), string(o.Status), o.Subtotal, o.DeliveryCharge, o.Total,
		nullable(o.CouponCode), o.Customer.FullName, o.Customer.Phone,
		o.Customer.Address, o.Customer.City, o.Customer.Area, o.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, li := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, name, size, qty, unit_price, discount)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			o.ID, li.ProductID, li.Name, li.Size, li.Quantity, li.UnitPrice, li.Discount,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repo) GetStatus(ctx context.Context, orderID string) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return Status(s), nil
}

// Advance moves the order to the next status. The row is locked for the
// check-then-update so concurrent workers cannot race the transition.
func (r *Repo) Advance(ctx context.Context, orderID string, to Status) (from Status, err error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur string
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&cur)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	from = Status(cur)
	if !CanTransition(from, to) {
		return from, fmt.Errorf("invalid transition %s -> %s for order %s", from, to, orderID)
	}
	if _, err := tx.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, orderID, string(to)); err != nil {
		return from, err
	}
	return from, tx.Commit(ctx)
}

// ListByUser returns the user's order history, newest first, items included.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, status, subtotal, delivery_charge, total, coupon_code,
		       full_name, phone, address, city, area, created_at
		FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var (
			o      Order
			coupon *string
			status string
		)
		if err := rows.Scan(&o.ID, &status, &o.Subtotal, &o.DeliveryCharge, &o.Total,
			&coupon, &o.Customer.FullName, &o.Customer.Phone, &o.Customer.Address,
			&o.Customer.City, &o.Customer.Area, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.UserID = userID
		o.Status = Status(status)
		if coupon != nil {
			o.CouponCode = *coupon
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.listItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *Repo) listItems(ctx context.Context, orderID string) ([]cart.LineItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product_id, name, size, qty, unit_price, discount
		FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cart.LineItem
	for rows.Next() {
		var li cart.LineItem
		if err := rows.Scan(&li.ProductID, &li.Name, &li.Size, &li.Quantity, &li.UnitPrice, &li.Discount); err != nil {
			return nil, err
		}
		out = append(out, li)
	}
	return out, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
