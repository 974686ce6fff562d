package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	Orders interface {
		BulkInsert(ctx context.Context, orders []Order) (int64, error)
		DeleteByDateRange(ctx context.Context, start, end time.Time) (int64, error)
		DedupLatestByKey(ctx context.Context) (bool, error)
		DeletePaidPending(ctx context.Context) (int64, error)
		List(ctx context.Context) ([]Order, error)
	}

	Payments interface {
		BulkInsert(ctx context.Context, payments []Payment) (int64, error)
		DedupExactRows(ctx context.Context) error
		List(ctx context.Context) ([]Payment, error)
	}

	LoadRuns interface {
		Insert(ctx context.Context, run *LoadRun) error
		GetLatest(ctx context.Context, limit int) ([]LoadRun, error)
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Orders:   &OrderStore{db: db},
		Payments: &PaymentStore{db: db},
		LoadRuns: &LoadRunStore{db: db},
	}
}
