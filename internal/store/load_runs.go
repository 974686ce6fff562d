package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type LoadRunStore struct {
	db *sqlx.DB
}

func (ls *LoadRunStore) Insert(ctx context.Context, run *LoadRun) error {
	query := `INSERT INTO load_runs (
		run_id,
		window_start,
		window_end,
		trigger_type,
		orders_rows,
		payments_rows,
		status
	) VALUES (
		:run_id,
		:window_start,
		:window_end,
		:trigger_type,
		:orders_rows,
		:payments_rows,
		:status
	) RETURNING id, processed_at`

	rows, err := ls.db.NamedQueryContext(ctx, query, run)
	if err != nil {
		return fmt.Errorf("failed to insert load run: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&run.ID, &run.ProcessedAt); err != nil {
			return fmt.Errorf("failed to scan load run id: %w", err)
		}
	}
	return nil
}

func (ls *LoadRunStore) GetLatest(ctx context.Context, limit int) ([]LoadRun, error) {
	query := `
		SELECT id, run_id, window_start, window_end, trigger_type, orders_rows, payments_rows, status, processed_at
		FROM load_runs
		ORDER BY processed_at DESC
		LIMIT $1
	`
	runs := []LoadRun{}
	if err := ls.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get latest load runs: %w", err)
	}
	return runs, nil
}
