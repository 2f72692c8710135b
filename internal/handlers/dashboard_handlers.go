package handlers

import (
	"io"
	"net/http"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/auth"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/config"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

// DashboardHandler handles the activity table, demo dataset and enrichment routes
type DashboardHandler struct {
	dashboard DashboardServiceInterface
	export    config.ExportSettings
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard DashboardServiceInterface, export config.ExportSettings) *DashboardHandler {
	if dashboard == nil {
		panic("dashboard service cannot be nil")
	}
	if export.FileName == "" {
		export.FileName = constants.DefaultExportFileName
	}
	if export.DemoFileName == "" {
		export.DemoFileName = constants.DefaultDemoExportFileName
	}
	return &DashboardHandler{
		dashboard: dashboard,
		export:    export,
	}
}

// GetSummary returns the headline metrics
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary()
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}

// GetOptions returns the values for the exec_id and category selectors
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.dashboard.Options()
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, options)
}

// GetRows returns one page of the filtered table
func (h *DashboardHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTableFilter(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.dashboard.AuthorizeReveal(filter.Raw, auth.IsOperator(r)); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	view, err := h.dashboard.Rows(filter)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if filter.Raw {
		auditReveal(r, len(view.Rows))
	}

	utils.Paginated(w, http.StatusOK, view, filter.Page, filter.PageSize, view.Total)
}

// ExportRows downloads the filtered table as CSV
func (h *DashboardHandler) ExportRows(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTableFilter(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.dashboard.AuthorizeReveal(filter.Raw, auth.IsOperator(r)); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.CSVFile(w, h.export.FileName, func(out io.Writer) error {
		n, err := h.dashboard.Export(out, filter)
		if err == nil && filter.Raw {
			auditReveal(r, n)
		}
		return err
	})
}

// Reload evicts the cached table and reads the source again
func (h *DashboardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Reload()
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": constants.MsgTableReloaded,
		"summary": summary,
	})
}

// Enrich derives the masked text, flags and sentiment of ad-hoc text
func (h *DashboardHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	var req models.EnrichRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, h.dashboard.Enrich(req.Text))
}

// auditReveal records that raw text left the server
func auditReveal(r *http.Request, rows int) {
	requestID, _ := auth.GetRequestID(r)
	tokenID, _ := auth.GetOperatorTokenID(r)
	utils.LogReveal(requestID, tokenID, r.URL.Path, rows)
}
