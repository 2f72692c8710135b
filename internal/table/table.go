// Package table loads the executive activity CSV into an immutable, typed
// table and memoizes loaded tables per source.
package table

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
)

// ErrSourceNotFound is returned when the source path does not exist.
var ErrSourceNotFound = errors.New("source not found")

// SourceError reports a failure to open or read a source.
type SourceError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Table is an immutable snapshot of the activity source. Rows keep source
// order; every row carries every declared column.
type Table struct {
	// ID identifies this snapshot; a reload produces a new ID
	ID uuid.UUID

	// Source is the absolute path, or the name given to LoadReader
	Source string

	LoadedAt time.Time

	Rows []*models.ActivityRow

	// Columns are the declared columns found in the source header
	Columns []string

	// Defaulted are the declared columns that were missing and default-filled
	Defaulted []string

	// Segments is the number of segments the source was read in
	Segments int
}

// Len returns the number of rows. A nil table has no rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
