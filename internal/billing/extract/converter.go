package extract

import (
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

func getStr(df *dataframe.DataFrame, col string, rowIdx int) string {
	if df == nil {
		return ""
	}
	if containsString(df.Names(), col) {
		v := df.Col(col).Elem(rowIdx).String()
		if v == "NaN" {
			return ""
		}
		return strings.TrimSpace(v)
	}
	return ""
}

func dfRowToOrder(df dataframe.DataFrame, rowIdx int) store.Order {
	return store.Order{
		CompanyName: getStr(&df, "Empresa", rowIdx),
		CompanyCode: getStr(&df, "Código da Empresa", rowIdx),
		OrderID:     getStr(&df, "Nº Pedido", rowIdx),
		OrderDate:   getStr(&df, "Data do Pedido", rowIdx),
		AdminFee:    getStr(&df, "Taxa Adm.", rowIdx),
		CreditValue: getStr(&df, "Valor Crédito", rowIdx),
		Status:      getStr(&df, "Status", rowIdx),
	}
}

func dfRowToPayment(df dataframe.DataFrame, rowIdx int) store.Payment {
	return store.Payment{
		Bank:          getStr(&df, "Banco", rowIdx),
		CompanyName:   getStr(&df, "Empresa", rowIdx),
		IssueDate:     getStr(&df, "Emissão", rowIdx),
		PaymentDate:   getStr(&df, "Pagamento", rowIdx),
		ProcessedDate: getStr(&df, "Processado", rowIdx),
		ReleaseDate:   getStr(&df, "Liberação", rowIdx),
		OurNumber:     getStr(&df, "Nosso Número", rowIdx),
		OrderNumber:   getStr(&df, "Número Pedido", rowIdx),
		OrderValue:    getStr(&df, "Valor Pedido", rowIdx),
		Value:         getStr(&df, "Valor", rowIdx),
	}
}

// OrdersFromFrames flattens normalized order relations into store rows; the
// caller appends them all in one load.
func OrdersFromFrames(frames []dataframe.DataFrame) []store.Order {
	var orders []store.Order
	for _, df := range frames {
		for i := 0; i < df.Nrow(); i++ {
			orders = append(orders, dfRowToOrder(df, i))
		}
	}
	return orders
}

// PaymentsFromFrames flattens normalized payment relations into store rows.
func PaymentsFromFrames(frames []dataframe.DataFrame) []store.Payment {
	var payments []store.Payment
	for _, df := range frames {
		for i := 0; i < df.Nrow(); i++ {
			payments = append(payments, dfRowToPayment(df, i))
		}
	}
	return payments
}
