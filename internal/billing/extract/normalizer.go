package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/vtfinance/billing_dashboard/internal/logger"
)

// NormalizeFile turns one raw export file into a clean relation with the
// layout's fixed named columns. A post-transform column-count mismatch is a
// *SchemaMismatchError: the caller skips the file rather than loading
// mis-mapped data.
func NormalizeFile(path string, layout Layout) (dataframe.DataFrame, string, error) {
	records, encoding, err := ReadRawCSV(path)
	if err != nil {
		return dataframe.DataFrame{}, "", err
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, encoding, fmt.Errorf("file %s is empty", path)
	}

	width := 0
	for _, row := range records {
		if len(row) > width {
			width = len(row)
		}
	}
	if width < layout.MinColumns {
		return dataframe.DataFrame{}, encoding, fmt.Errorf("file %s has %d columns, %s layout needs at least %d", path, width, layout.Name, layout.MinColumns)
	}

	// Ragged rows are padded to the frame width; a short final row is the
	// known export defect the payments layout repairs.
	raggedTail := len(records[len(records)-1]) < width
	for i, row := range records {
		for len(row) < width {
			row = append(row, "")
		}
		records[i] = row
	}
	if layout.RepairTail && raggedTail {
		repairRaggedRow(records[len(records)-1], layout.RepairPivot)
	}

	for _, step := range layout.Steps {
		records = step.apply(records)
	}

	if len(records) == 0 || len(records[0]) != len(layout.FinalColumns) {
		actual := 0
		if len(records) > 0 {
			actual = len(records[0])
		}
		return dataframe.DataFrame{}, encoding, &SchemaMismatchError{
			Layout:   layout.Name,
			Expected: len(layout.FinalColumns),
			Actual:   actual,
		}
	}

	records = excludeRows(records, layout)

	framed := make([][]string, 0, len(records)+1)
	framed = append(framed, layout.FinalColumns)
	framed = append(framed, records...)

	df := dataframe.LoadRecords(framed,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	return df, encoding, df.Error()
}

// repairRaggedRow realigns a padded short row: values from pivot onward
// shift one slot right, leaving an empty field at the pivot.
func repairRaggedRow(row []string, pivot int) {
	if pivot >= len(row) {
		return
	}
	copy(row[pivot+1:], row[pivot:len(row)-1])
	row[pivot] = ""
}

func excludeRows(records [][]string, layout Layout) [][]string {
	if layout.ExcludeColumn == "" || len(layout.ExcludeValues) == 0 {
		return records
	}
	colIdx := -1
	for i, name := range layout.FinalColumns {
		if name == layout.ExcludeColumn {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return records
	}

	excluded := make(map[string]struct{}, len(layout.ExcludeValues))
	for _, v := range layout.ExcludeValues {
		excluded[v] = struct{}{}
	}

	kept := records[:0]
	for _, row := range records {
		if _, drop := excluded[strings.TrimSpace(row[colIdx])]; drop {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

// NormalizeDir normalizes every CSV file of one extract directory
// independently, one relation per file. A missing or empty directory and
// undecodable or layout-mismatched files are logged and skipped: the load
// degrades to whatever was readable, it never aborts the batch.
func NormalizeDir(dir string, layout Layout, appLogger *logger.Logger) []dataframe.DataFrame {
	const component = "Normalizer"

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		appLogger.Warn(component, "Extract directory not found: dir=%s layout=%s", dir, layout.Name)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil || len(files) == 0 {
		appLogger.Warn(component, "No CSV files found in extract directory: dir=%s layout=%s", dir, layout.Name)
		return nil
	}
	sort.Strings(files)

	var frames []dataframe.DataFrame
	for _, file := range files {
		df, encoding, err := NormalizeFile(file, layout)
		if err != nil {
			var mismatch *SchemaMismatchError
			if errors.As(err, &mismatch) {
				appLogger.Error(component, "Skipping file with unexpected layout: file=%s expected=%d actual=%d", file, mismatch.Expected, mismatch.Actual)
			} else {
				appLogger.Warn(component, "Skipping unreadable file: file=%s error=%v", file, err)
			}
			continue
		}
		appLogger.Info(component, "File normalized: file=%s layout=%s encoding=%s rows=%d", file, layout.Name, encoding, df.Nrow())
		frames = append(frames, df)
	}
	return frames
}
