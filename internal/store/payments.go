package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type PaymentStore struct {
	db *sqlx.DB
}

// BulkInsert appends every normalized payment row as a new row; exact
// duplicates are collapsed afterwards by DedupExactRows.
func (ps *PaymentStore) BulkInsert(ctx context.Context, payments []Payment) (int64, error) {
	if len(payments) == 0 {
		return 0, nil
	}

	query := `INSERT INTO payments (
		bank,
		company_name,
		issue_date,
		payment_date,
		processed_date,
		release_date,
		our_number,
		order_number,
		order_value,
		value
	) VALUES (
		:bank,
		:company_name,
		:issue_date,
		:payment_date,
		:processed_date,
		:release_date,
		:our_number,
		:order_number,
		:order_value,
		:value
	)`

	result, err := ps.db.NamedExecContext(ctx, query, payments)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert payments: %w", err)
	}
	inserted, _ := result.RowsAffected()
	return inserted, nil
}

// DedupExactRows rebuilds the payments table keeping only rows distinct
// across every column. A legitimate repeat payment identical in all fields
// is indistinguishable from a re-extracted duplicate and is collapsed too;
// known data-quality limitation of the source report. The rebuild is one
// all-or-nothing transaction.
func (ps *PaymentStore) DedupExactRows(ctx context.Context) error {
	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin payments dedup: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`CREATE TEMP TABLE payments_dedup ON COMMIT DROP AS
			SELECT DISTINCT * FROM payments`,
		`TRUNCATE TABLE payments`,
		`INSERT INTO payments SELECT * FROM payments_dedup`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to rebuild payments with distinct rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payments dedup: %w", err)
	}
	return nil
}

// List returns the full payments table.
func (ps *PaymentStore) List(ctx context.Context) ([]Payment, error) {
	query := `
		SELECT bank, company_name, issue_date, payment_date, processed_date, release_date,
			our_number, order_number, order_value, value
		FROM payments
	`
	payments := []Payment{}
	if err := ps.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
