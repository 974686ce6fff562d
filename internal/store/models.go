package store

import (
	"time"

	"github.com/google/uuid"
)

// Order represents the 'orders' table: one purchase/credit request as
// extracted from the provider's "Pedidos" report. Dates and currency values
// are kept textually exactly as exported (dd/mm/yyyy, "R$ 1.234,56");
// parsing happens at metrics time so a malformed value never becomes a
// silent zero in the database.
type Order struct {
	RowID       int64  `db:"row_id"`
	OrderID     string `db:"order_id"`
	CompanyCode string `db:"company_code"`
	CompanyName string `db:"company_name"`
	OrderDate   string `db:"order_date"`
	AdminFee    string `db:"admin_fee"`
	CreditValue string `db:"credit_value"`
	Status      string `db:"status"`
}

// Order statuses as exported by the portal. Anything else passes through
// verbatim.
const (
	StatusNew             = "Novo"
	StatusPaid            = "Pago"
	StatusPaidAndReleased = "Pago e Liberado"
)

// Payment represents the 'payments' table: one settled boleto from the
// provider's paid-invoices report. The table carries no surrogate key and no
// uniqueness constraint; duplicates are collapsed by a DISTINCT rebuild.
type Payment struct {
	Bank          string `db:"bank"`
	CompanyName   string `db:"company_name"`
	IssueDate     string `db:"issue_date"`
	PaymentDate   string `db:"payment_date"`
	ProcessedDate string `db:"processed_date"`
	ReleaseDate   string `db:"release_date"`
	OurNumber     string `db:"our_number"`
	OrderNumber   string `db:"order_number"`
	OrderValue    string `db:"order_value"`
	Value         string `db:"value"`
}

// LoadRun represents the 'load_runs' table, one row per reconciliation
// batch.
type LoadRun struct {
	ID           int64     `db:"id"`
	RunID        uuid.UUID `db:"run_id"`
	WindowStart  time.Time `db:"window_start"`
	WindowEnd    time.Time `db:"window_end"`
	TriggerType  string    `db:"trigger_type"`
	OrdersRows   int64     `db:"orders_rows"`
	PaymentsRows int64     `db:"payments_rows"`
	Status       string    `db:"status"`
	ProcessedAt  time.Time `db:"processed_at"`
}

var (
	TriggerTypeManual    = "manual"
	TriggerTypeScheduled = "scheduled"
)

var (
	RunStatusSuccess = "success"
	RunStatusFailure = "failure"
	RunStatusPartial = "partial"
)
