// Package service provides business logic implementations.
package service

import (
	"io"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/config"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/enrich"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/table"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

// TableSource provides the loaded activity table for a source path.
type TableSource interface {
	Get(path string) (*table.Table, error)
	Reload(path string) (*table.Table, error)
}

// DashboardService projects the activity table and the demo dataset into the
// views offered to the operator. It never modifies a loaded table.
type DashboardService struct {
	source   string
	tables   TableSource
	enricher *enrich.Enricher
	operator *config.OperatorSettings
	demo     []*models.EnrichedRecord
}

// NewDashboardService creates a new DashboardService and enriches the demo dataset.
//
// Parameters:
//   - source: Path of the activity CSV
//   - tables: Memoized table loader
//   - enricher: Enrichment pipeline used for the demo dataset and masking
//   - operator: Settings deciding whether raw text may be shown
//
// Returns:
//   - A ready DashboardService
func NewDashboardService(source string, tables TableSource, enricher *enrich.Enricher, operator *config.OperatorSettings) *DashboardService {
	if operator == nil {
		operator = &config.OperatorSettings{}
	}
	s := &DashboardService{
		source:   source,
		tables:   tables,
		enricher: enricher,
		operator: operator,
		demo:     enricher.Records(DemoMessages),
	}

	log.Debug().
		Int("demo_messages", len(s.demo)).
		Str("source", source).
		Msg("Dashboard service initialized")

	return s
}

// Source returns the configured source path.
func (s *DashboardService) Source() string {
	return s.source
}

// AuthorizeReveal decides whether raw text may be shown.
//
// Parameters:
//   - raw: Whether raw display was requested
//   - isOperator: Whether the request carries a valid operator token
//
// Returns:
//   - nil when the request may proceed
//   - A forbidden error when no passphrase is configured
//   - An unauthorized error when the operator token is missing
func (s *DashboardService) AuthorizeReveal(raw, isOperator bool) error {
	if !raw || s.operator.AllowUnauthenticatedRaw {
		return nil
	}
	if !s.operator.RevealEnabled() {
		return utils.NewForbiddenError(constants.MsgRevealDisabled)
	}
	if !isOperator {
		return utils.NewUnauthorizedError(constants.MsgRevealRequiresToken)
	}
	return nil
}

// Summary returns the headline metrics of the loaded table.
func (s *DashboardService) Summary() (models.TableSummary, error) {
	t, err := s.tables.Get(s.source)
	if err != nil {
		return models.TableSummary{}, err
	}
	return table.Summary(t), nil
}

// Options returns the values offered by the exec_id and category selectors.
func (s *DashboardService) Options() (models.TableOptions, error) {
	t, err := s.tables.Get(s.source)
	if err != nil {
		return models.TableOptions{}, err
	}
	return table.Options(t), nil
}

// Rows returns one page of the filtered table. Message columns are masked
// unless f.Raw is set.
func (s *DashboardService) Rows(f models.TableFilter) (*models.TableView, error) {
	t, err := s.tables.Get(s.source)
	if err != nil {
		return nil, err
	}

	selected := table.Select(t, f)
	page, pageSize := normalizePage(f.Page, f.PageSize)

	start := (page - 1) * pageSize
	if start > len(selected) {
		start = len(selected)
	}
	end := start + pageSize
	if end > len(selected) {
		end = len(selected)
	}

	return &models.TableView{
		Columns: constants.TableDisplayColumns,
		Rows:    s.project(selected[start:end], f.Raw),
		Total:   len(selected),
		Masked:  !f.Raw,
	}, nil
}

// Export writes every row matching f as CSV with the display columns and
// returns the number of data rows written.
func (s *DashboardService) Export(w io.Writer, f models.TableFilter) (int, error) {
	t, err := s.tables.Get(s.source)
	if err != nil {
		return 0, err
	}

	rows := s.project(table.Select(t, f), f.Raw)
	if err := table.WriteCSV(w, constants.TableDisplayColumns, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Reload drops the cached table and reads the source again.
func (s *DashboardService) Reload() (models.TableSummary, error) {
	t, err := s.tables.Reload(s.source)
	if err != nil {
		return models.TableSummary{}, err
	}

	log.Info().
		Str("source", t.Source).
		Int("rows", t.Len()).
		Msg("Table reloaded")

	return table.Summary(t), nil
}

// DemoMessages returns the demo records matching f, in dataset order. The raw
// text is cleared unless f.Raw is set.
func (s *DashboardService) DemoMessages(f models.DemoFilter) *models.DemoView {
	view := &models.DemoView{
		Columns:  constants.DemoMaskedColumns,
		Messages: make([]*models.EnrichedRecord, 0, len(s.demo)),
		Masked:   !f.Raw,
	}
	if f.Raw {
		view.Columns = constants.DemoRawColumns
	}

	for _, rec := range s.demo {
		if f.NSFW && !rec.NSFW {
			continue
		}
		if f.PersonalUse && !rec.PersonalUse {
			continue
		}
		if f.CreditCard && !rec.CreditCard {
			continue
		}
		if f.LargeSpending && !rec.LargeSpending {
			continue
		}
		view.Messages = append(view.Messages, demoView(rec, f.Raw))
	}

	return view
}

// DemoMessage returns one demo record by its zero-based index.
func (s *DashboardService) DemoMessage(index int, raw bool) (*models.EnrichedRecord, error) {
	if index < 0 || index >= len(s.demo) {
		return nil, utils.NewNotFoundError("Message", index)
	}
	return demoView(s.demo[index], raw), nil
}

// ExportDemo writes the full demo dataset, raw and masked, as CSV and
// returns the number of data rows written.
func (s *DashboardService) ExportDemo(w io.Writer) (int, error) {
	if err := table.WriteCSV(w, constants.DemoExportColumns, s.demo); err != nil {
		return 0, err
	}
	return len(s.demo), nil
}

// Enrich runs the enrichment pipeline on ad-hoc text.
func (s *DashboardService) Enrich(text string) models.Enrichment {
	return s.enricher.Enrich(text)
}

// project returns rows ready for display. Masked rows are copies; the
// loaded table keeps its raw text.
func (s *DashboardService) project(rows []*models.ActivityRow, raw bool) []*models.ActivityRow {
	if raw {
		return rows
	}

	masked := make([]*models.ActivityRow, len(rows))
	for i, row := range rows {
		c := *row
		c.Message = s.enricher.Mask(row.Message)
		c.EmailMessage = s.enricher.Mask(row.EmailMessage)
		masked[i] = &c
	}
	return masked
}

func demoView(rec *models.EnrichedRecord, raw bool) *models.EnrichedRecord {
	c := *rec
	if !raw {
		c.Message = ""
	}
	return &c
}

func normalizePage(page, pageSize int) (int, int) {
	if page < constants.DefaultPage {
		page = constants.DefaultPage
	}
	if pageSize < constants.MinPageSize {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return page, pageSize
}
