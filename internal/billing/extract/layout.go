package extract

import (
	"fmt"
	"strings"
)

// SchemaMismatchError reports that a raw export, after all positional
// transforms, did not produce the expected number of columns. The export
// layout is contractually fragile; a count mismatch means the portal changed
// the report format and silently mis-mapped columns would corrupt the
// financial tables, so the offending file is skipped instead.
type SchemaMismatchError struct {
	Layout   string
	Expected int
	Actual   int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch in %s layout: expected %d columns, got %d", e.Layout, e.Expected, e.Actual)
}

// Step is one positional transform applied to the raw padded records of an
// export file.
type Step interface {
	apply(records [][]string) [][]string
}

// Layout is the declarative column-mapping specification for one report
// type: the ordered surgery steps plus the final named schema the result is
// validated against.
type Layout struct {
	Name         string
	MinColumns   int  // raw frame must be at least this wide, else the file is skipped
	RepairTail   bool // repair a ragged final row before any step
	RepairPivot  int  // column where the repair inserts the missing field
	Steps        []Step
	FinalColumns []string

	// ExcludeColumn/ExcludeValues drop rows carrying internal/test account
	// codes after the final schema is assigned.
	ExcludeColumn string
	ExcludeValues []string
}

// DropLeading removes the first N columns (export boilerplate).
type DropLeading int

func (n DropLeading) apply(records [][]string) [][]string {
	for i, row := range records {
		if len(row) > int(n) {
			records[i] = row[n:]
		} else {
			records[i] = nil
		}
	}
	return records
}

// DropTrailing removes the last N columns (export footer boilerplate).
type DropTrailing int

func (n DropTrailing) apply(records [][]string) [][]string {
	for i, row := range records {
		if len(row) > int(n) {
			records[i] = row[:len(row)-int(n)]
		}
	}
	return records
}

// StripPrefix removes a literal label prefix and surrounding whitespace from
// every value of one column ("Empresa:Acme" -> "Acme").
type StripPrefix struct {
	Column int
	Prefix string
}

func (s StripPrefix) apply(records [][]string) [][]string {
	for i, row := range records {
		if s.Column < len(row) {
			records[i][s.Column] = strings.TrimSpace(strings.ReplaceAll(row[s.Column], s.Prefix, ""))
		}
	}
	return records
}

// DropRangeExcept removes the columns at positions [From, To] except the one
// at Keep. The export repeats several empty or boilerplate columns in that
// span.
type DropRangeExcept struct {
	From, To, Keep int
}

func (d DropRangeExcept) apply(records [][]string) [][]string {
	for i, row := range records {
		kept := make([]string, 0, len(row))
		for j, v := range row {
			if j >= d.From && j <= d.To && j != d.Keep {
				continue
			}
			kept = append(kept, v)
		}
		records[i] = kept
	}
	return records
}

// DropEmptyColumns removes every column whose value is empty in all rows.
type DropEmptyColumns struct{}

func (DropEmptyColumns) apply(records [][]string) [][]string {
	if len(records) == 0 {
		return records
	}
	width := len(records[0])
	nonEmpty := make([]bool, width)
	for _, row := range records {
		for j, v := range row {
			if j < width && strings.TrimSpace(v) != "" {
				nonEmpty[j] = true
			}
		}
	}
	for i, row := range records {
		kept := make([]string, 0, width)
		for j, v := range row {
			if j < width && nonEmpty[j] {
				kept = append(kept, v)
			}
		}
		records[i] = kept
	}
	return records
}

// KeepPositionsAndTail keeps only the columns at Positions from the first
// TailFrom columns, concatenated with every column from TailFrom onward.
type KeepPositionsAndTail struct {
	Positions []int
	TailFrom  int
}

func (k KeepPositionsAndTail) apply(records [][]string) [][]string {
	for i, row := range records {
		kept := make([]string, 0, len(k.Positions)+len(row)-k.TailFrom)
		for _, p := range k.Positions {
			if p < len(row) {
				kept = append(kept, row[p])
			}
		}
		if k.TailFrom < len(row) {
			kept = append(kept, row[k.TailFrom:]...)
		}
		records[i] = kept
	}
	return records
}

// Internal/test account codes that must never reach the financial tables.
var excludedCompanyCodes = []string{
	"77776", "99999", "3", "27717", "99998", "77777", "77778",
	"28671", "142", "5823", "24023",
}

// OrdersLayout maps the raw "Pedidos Provider - V2" export to the final
// orders relation.
var OrdersLayout = Layout{
	Name:       "pedidos",
	MinColumns: 8,
	Steps: []Step{
		DropLeading(7),
		StripPrefix{Column: 0, Prefix: "Empresa:"},
		DropRangeExcept{From: 1, To: 10, Keep: 2},
		DropEmptyColumns{},
		DropTrailing(3),
	},
	FinalColumns: []string{
		"Empresa", "Código da Empresa", "Nº Pedido", "Data do Pedido",
		"Taxa Adm.", "Valor Crédito", "Status",
	},
	ExcludeColumn: "Código da Empresa",
	ExcludeValues: excludedCompanyCodes,
}

// PaymentsLayout maps the raw "Boletos Pago" export to the final payments
// relation. The source report sometimes omits a trailing empty field on the
// last line; the repair shifts that row's columns from position 10 onward
// one slot right before anything else runs.
var PaymentsLayout = Layout{
	Name:        "boletos",
	MinColumns:  20,
	RepairTail:  true,
	RepairPivot: 10,
	Steps: []Step{
		KeepPositionsAndTail{Positions: []int{9, 11}, TailFrom: 20},
		DropTrailing(2),
	},
	FinalColumns: []string{
		"Banco", "Empresa", "Emissão", "Pagamento", "Processado",
		"Liberação", "Nosso Número", "Número Pedido", "Valor Pedido", "Valor",
	},
}
