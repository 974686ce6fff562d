package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vtfinance/billing_dashboard/internal/billing/metrics"
)

const overdueSheet = "Vencidos"

var overdueHeader = []interface{}{
	"Empresa", "Nº Pedido", "Data do Pedido", "Taxa Adm.",
	"Valor Crédito", "Status", "Dias em Aberto", "Faixa",
}

// WriteOverdueReport renders the overdue order rows as a single-sheet
// spreadsheet and streams it to w.
func WriteOverdueReport(w io.Writer, rows []metrics.OverdueOrder) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), overdueSheet)

	if err := f.SetSheetRow(overdueSheet, "A1", &overdueHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		values := []interface{}{
			row.CompanyName, row.OrderID, row.OrderDate, row.AdminFee,
			row.CreditValue, row.Status, row.DaysSinceOrder, row.Bucket,
		}
		if err := f.SetSheetRow(overdueSheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("streaming workbook: %w", err)
	}
	return nil
}
