package rowset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes rows as CSV with the canonical header. Cells are
// cleaned of control characters so the file opens in spreadsheet
// applications without repair warnings.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		vals := r.Values()
		for i, v := range vals {
			vals[i] = CleanCell(v)
		}
		if err := cw.Write(vals); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a table previously written by WriteCSV. The header row
// is required and skipped.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, FromValues(rec))
	}
	return rows, nil
}
