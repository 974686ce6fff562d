package extract

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	return path
}

// rawOrderRow builds one 26-column raw export line the way the portal lays
// it out: seven boilerplate columns, then the company block, then the order
// fields, then three footer columns.
func rawOrderRow(company, code, orderID, date, fee, credit, status string) []string {
	row := make([]string, 0, 26)
	for i := 0; i < 7; i++ {
		row = append(row, "hdr")
	}
	row = append(row, "Empresa:"+company)
	row = append(row, "x") // position 1 of the company block
	row = append(row, code)
	for i := 0; i < 8; i++ { // positions 3..10 of the company block
		row = append(row, "x")
	}
	row = append(row, orderID, date, fee, credit, status)
	row = append(row, "f1", "f2", "f3")
	return row
}

// rawPaymentRow builds one 30-column raw payment line: the bank at position
// 9, the company at 11, the ten-field tail from position 20.
func rawPaymentRow(bank, company string, tail [8]string) []string {
	row := make([]string, 30)
	for i := range row {
		row[i] = "x"
	}
	row[9] = bank
	row[11] = company
	copy(row[20:28], tail[:])
	row[28] = "t1"
	row[29] = "t2"
	return row
}

func TestNormalizeOrdersFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "pedidos.csv", [][]string{
		rawOrderRow("Acme Transportes", "4101", "12345", "05/03/2025", "R$ 10,00", "R$ 1.000,00", "Novo"),
		rawOrderRow("Beta Logistica", "4102", "12346", "06/03/2025", "R$ 12,00", "R$ 2.000,00", "Pago"),
	})

	df, encoding, err := NormalizeFile(path, OrdersLayout)
	require.NoError(t, err)
	require.Equal(t, "utf-8", encoding)
	require.Equal(t, OrdersLayout.FinalColumns, df.Names())
	require.Equal(t, 2, df.Nrow())

	require.Equal(t, "Acme Transportes", df.Col("Empresa").Elem(0).String())
	require.Equal(t, "4101", df.Col("Código da Empresa").Elem(0).String())
	require.Equal(t, "12345", df.Col("Nº Pedido").Elem(0).String())
	require.Equal(t, "05/03/2025", df.Col("Data do Pedido").Elem(0).String())
	require.Equal(t, "R$ 1.000,00", df.Col("Valor Crédito").Elem(0).String())
	require.Equal(t, "Pago", df.Col("Status").Elem(1).String())
}

func TestNormalizeOrdersExcludesInternalCodes(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "pedidos.csv", [][]string{
		rawOrderRow("Acme Transportes", "4101", "12345", "05/03/2025", "R$ 10,00", "R$ 1.000,00", "Novo"),
		rawOrderRow("Conta Teste", "99999", "12399", "05/03/2025", "R$ 0,00", "R$ 0,01", "Novo"),
		rawOrderRow("Conta Interna", "3", "12400", "05/03/2025", "R$ 0,00", "R$ 0,01", "Novo"),
	})

	df, _, err := NormalizeFile(path, OrdersLayout)
	require.NoError(t, err)
	require.Equal(t, 1, df.Nrow())
	require.Equal(t, "4101", df.Col("Código da Empresa").Elem(0).String())
}

func TestNormalizePaymentsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "boletos.csv", [][]string{
		rawPaymentRow("001", "Acme Transportes", [8]string{
			"01/03/2025", "05/03/2025", "05/03/2025", "06/03/2025",
			"000123", "12345", "R$ 1.000,00", "R$ 1.000,00",
		}),
	})

	df, _, err := NormalizeFile(path, PaymentsLayout)
	require.NoError(t, err)
	require.Equal(t, PaymentsLayout.FinalColumns, df.Names())
	require.Equal(t, 1, df.Nrow())

	require.Equal(t, "001", df.Col("Banco").Elem(0).String())
	require.Equal(t, "Acme Transportes", df.Col("Empresa").Elem(0).String())
	require.Equal(t, "01/03/2025", df.Col("Emissão").Elem(0).String())
	require.Equal(t, "05/03/2025", df.Col("Pagamento").Elem(0).String())
	require.Equal(t, "12345", df.Col("Número Pedido").Elem(0).String())
	require.Equal(t, "R$ 1.000,00", df.Col("Valor").Elem(0).String())
}

func TestNormalizePaymentsRepairsRaggedTail(t *testing.T) {
	full := rawPaymentRow("001", "Acme Transportes", [8]string{
		"01/03/2025", "05/03/2025", "05/03/2025", "06/03/2025",
		"000123", "12345", "R$ 1.000,00", "R$ 1.000,00",
	})
	// The export's known defect: the last line omits the empty field at
	// position 10, shifting everything after it one slot left.
	short := append(append([]string{}, full[:10]...), full[11:]...)

	dir := t.TempDir()
	path := writeCSV(t, dir, "boletos.csv", [][]string{full, short})

	df, _, err := NormalizeFile(path, PaymentsLayout)
	require.NoError(t, err)
	require.Equal(t, 2, df.Nrow())
	require.Equal(t, "Acme Transportes", df.Col("Empresa").Elem(1).String())
	require.Equal(t, "12345", df.Col("Número Pedido").Elem(1).String())
	require.Equal(t, "R$ 1.000,00", df.Col("Valor").Elem(1).String())
}

func TestNormalizeSchemaMismatch(t *testing.T) {
	// 25 columns: wide enough to pass the minimum, one short of mapping
	// to the final schema.
	row := rawOrderRow("Acme", "4101", "12345", "05/03/2025", "R$ 10,00", "R$ 1.000,00", "Novo")
	row = row[:25]

	dir := t.TempDir()
	path := writeCSV(t, dir, "pedidos.csv", [][]string{row})

	_, _, err := NormalizeFile(path, OrdersLayout)
	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, len(OrdersLayout.FinalColumns), mismatch.Expected)
	require.NotEqual(t, mismatch.Expected, mismatch.Actual)
}

func TestNormalizeRejectsNarrowFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "pedidos.csv", [][]string{{"a", "b", "c"}})

	_, _, err := NormalizeFile(path, OrdersLayout)
	require.Error(t, err)
	var mismatch *SchemaMismatchError
	require.False(t, errors.As(err, &mismatch))
}

func TestReadRawCSVEncodingFallback(t *testing.T) {
	dir := t.TempDir()

	// 0xE9 is not valid UTF-8 on its own; the latin-1 fallback reads it
	// as an accented e.
	path := filepath.Join(dir, "latin1.csv")
	require.NoError(t, os.WriteFile(path, []byte("Ind\xe9str,1\n"), 0o644))

	records, encoding, err := ReadRawCSV(path)
	require.NoError(t, err)
	require.Equal(t, "iso-8859-1", encoding)
	require.Equal(t, "Indéstr", records[0][0])

	path = filepath.Join(dir, "utf8.csv")
	require.NoError(t, os.WriteFile(path, []byte("Indústria,1\n"), 0o644))

	records, encoding, err = ReadRawCSV(path)
	require.NoError(t, err)
	require.Equal(t, "utf-8", encoding)
	require.Equal(t, "Indústria", records[0][0])
}
