package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/auth"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

// ListDemoMessages returns the filtered demo dataset
func (h *DashboardHandler) ListDemoMessages(w http.ResponseWriter, r *http.Request) {
	filter, err := parseDemoFilter(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.dashboard.AuthorizeReveal(filter.Raw, auth.IsOperator(r)); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	view := h.dashboard.DemoMessages(filter)
	if filter.Raw {
		auditReveal(r, len(view.Messages))
	}

	utils.JSON(w, http.StatusOK, view)
}

// GetDemoMessage returns the flag breakdown of one demo message.
// The raw text is included only when raw=true and the request is authorized.
func (h *DashboardHandler) GetDemoMessage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, constants.ParamIndex))
	if err != nil {
		utils.BadRequest(w, "Message index must be a number", nil)
		return
	}

	filter, err := parseDemoFilter(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.dashboard.AuthorizeReveal(filter.Raw, auth.IsOperator(r)); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	record, err := h.dashboard.DemoMessage(index, filter.Raw)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if filter.Raw {
		auditReveal(r, 1)
	}

	utils.JSON(w, http.StatusOK, record)
}

// ExportDemo downloads the full demo dataset, raw and masked. It carries
// raw text, so it is authorized like a raw view.
func (h *DashboardHandler) ExportDemo(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.AuthorizeReveal(true, auth.IsOperator(r)); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.CSVFile(w, h.export.DemoFileName, func(out io.Writer) error {
		n, err := h.dashboard.ExportDemo(out)
		if err == nil {
			auditReveal(r, n)
		}
		return err
	})
}
