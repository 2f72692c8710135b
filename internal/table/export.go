package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Valuer renders one column of a record for export.
type Valuer interface {
	Value(column string) string
}

// WriteCSV writes a header row and one line per record with exactly the given
// columns, in order. No index column is written.
func WriteCSV[T Valuer](w io.Writer, columns []string, records []T) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	line := make([]string, len(columns))
	for i, rec := range records {
		for j, col := range columns {
			line[j] = rec.Value(col)
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
