package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type OrderStore struct {
	db *sqlx.DB
}

// BulkInsert appends every normalized order row as a new row. No upsert
// semantics: duplicate order ids are resolved later by DedupLatestByKey.
func (os *OrderStore) BulkInsert(ctx context.Context, orders []Order) (int64, error) {
	if len(orders) == 0 {
		return 0, nil
	}

	query := `INSERT INTO orders (
		order_id,
		company_code,
		company_name,
		order_date,
		admin_fee,
		credit_value,
		status
	) VALUES (
		:order_id,
		:company_code,
		:company_name,
		:order_date,
		:admin_fee,
		:credit_value,
		:status
	)`

	result, err := os.db.NamedExecContext(ctx, query, orders)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert orders: %w", err)
	}
	inserted, _ := result.RowsAffected()
	return inserted, nil
}

// DeleteByDateRange clears every order whose order_date falls inside
// [start, end] inclusive, making a reload of that window idempotent.
// order_date is stored as dd/mm/yyyy text, so the comparison goes through
// to_date.
func (os *OrderStore) DeleteByDateRange(ctx context.Context, start, end time.Time) (int64, error) {
	tx, err := os.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin windowed delete: %w", err)
	}
	defer tx.Rollback()

	query := `
		DELETE FROM orders
		WHERE to_date(order_date, 'DD/MM/YYYY') BETWEEN $1 AND $2
	`
	result, err := tx.ExecContext(ctx, query, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orders in date range: %w", err)
	}
	deleted, _ := result.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit windowed delete: %w", err)
	}
	return deleted, nil
}

// DedupLatestByKey rebuilds the orders table keeping, for each order_id,
// only the row with the maximum row_id (the most recently loaded one). The
// whole rebuild runs in one transaction; on failure the prior state is
// intact. An empty table skips the rebuild and returns false so the caller
// can log the no-op.
func (os *OrderStore) DedupLatestByKey(ctx context.Context) (bool, error) {
	tx, err := os.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin orders dedup: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM orders`); err != nil {
		return false, fmt.Errorf("failed to count orders before dedup: %w", err)
	}
	if count == 0 {
		return false, nil
	}

	statements := []string{
		`CREATE TEMP TABLE orders_dedup ON COMMIT DROP AS
			SELECT t.*
			FROM orders AS t
			JOIN (
				SELECT order_id, MAX(row_id) AS max_row_id
				FROM orders
				GROUP BY order_id
			) AS latest ON t.row_id = latest.max_row_id`,
		`TRUNCATE TABLE orders`,
		`INSERT INTO orders SELECT * FROM orders_dedup`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, fmt.Errorf("failed to rebuild orders keeping latest per order_id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit orders dedup: %w", err)
	}
	return true, nil
}

// DeletePaidPending removes every order still in status 'Novo' whose
// order_id already appears in the payments table. The payment record, not
// the order status flag, is authoritative: an already-settled order must not
// stay visible as pending.
func (os *OrderStore) DeletePaidPending(ctx context.Context) (int64, error) {
	tx, err := os.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin paid-pending cleanup: %w", err)
	}
	defer tx.Rollback()

	query := `
		DELETE FROM orders
		WHERE status = $1
		AND order_id IN (
			SELECT DISTINCT order_number FROM payments
		)
	`
	result, err := tx.ExecContext(ctx, query, StatusNew)
	if err != nil {
		return 0, fmt.Errorf("failed to delete paid pending orders: %w", err)
	}
	deleted, _ := result.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit paid-pending cleanup: %w", err)
	}
	return deleted, nil
}

// List returns the full reconciled orders table. The metrics engine applies
// date windows in memory, mirroring the dashboard's full-scan query model.
func (os *OrderStore) List(ctx context.Context) ([]Order, error) {
	query := `
		SELECT row_id, order_id, company_code, company_name, order_date, admin_fee, credit_value, status
		FROM orders
		ORDER BY row_id
	`
	orders := []Order{}
	if err := os.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
