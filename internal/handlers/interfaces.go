// Package handlers provides HTTP request handlers for the dashboard API.
package handlers

import (
	"io"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
)

// DashboardServiceInterface defines the methods required from the dashboard service.
// The handlers only project its results into HTTP responses.
type DashboardServiceInterface interface {
	// AuthorizeReveal decides whether raw text may be shown.
	//
	// Parameters:
	//   - raw: Whether raw display was requested
	//   - isOperator: Whether the request carries a valid operator token
	//
	// Returns:
	//   - An error if the request must not see raw text
	AuthorizeReveal(raw, isOperator bool) error

	// Summary returns the headline metrics of the loaded table.
	Summary() (models.TableSummary, error)

	// Options returns the values offered by the multi-select controls.
	Options() (models.TableOptions, error)

	// Rows returns one page of the filtered table.
	Rows(f models.TableFilter) (*models.TableView, error)

	// Export writes the filtered table as CSV and returns the number of rows.
	Export(w io.Writer, f models.TableFilter) (int, error)

	// Reload drops the cached table and reads the source again.
	Reload() (models.TableSummary, error)

	// DemoMessages returns the filtered demo dataset.
	DemoMessages(f models.DemoFilter) *models.DemoView

	// DemoMessage returns one demo record by index.
	DemoMessage(index int, raw bool) (*models.EnrichedRecord, error)

	// ExportDemo writes the full demo dataset as CSV and returns the number of rows.
	ExportDemo(w io.Writer) (int, error)

	// Enrich runs the enrichment pipeline on ad-hoc text.
	Enrich(text string) models.Enrichment
}

// OperatorServiceInterface defines the methods required from the operator service.
type OperatorServiceInterface interface {
	// IssueToken exchanges the operator passphrase for a reveal token.
	IssueToken(passphrase, clientIP string) (*models.TokenResponse, error)
}
