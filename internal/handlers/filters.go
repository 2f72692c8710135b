package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

// parseTableFilter reads the table controls from the query string.
// Multi-select values are given as repeated parameters and taken verbatim,
// so option values containing commas stay selectable.
func parseTableFilter(r *http.Request) (models.TableFilter, error) {
	query := r.URL.Query()
	pagination := utils.GetPaginationParams(r)

	f := models.TableFilter{
		ExecIDs:    multiValue(query, constants.QueryParamExecID),
		Categories: multiValue(query, constants.QueryParamCategory),
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	}

	toggles := map[string]*bool{
		constants.QueryParamRiskyEmail:  &f.RiskyEmail,
		constants.QueryParamNSFW:        &f.NSFW,
		constants.QueryParamOverLimit:   &f.OverLimit,
		constants.QueryParamPersonalUse: &f.PersonalUse,
		constants.QueryParamRaw:         &f.Raw,
	}
	if err := parseToggles(query, toggles); err != nil {
		return f, err
	}

	if err := utils.ValidateStruct(f); err != nil {
		return f, err
	}
	return f, nil
}

// parseDemoFilter reads the demo controls from the query string.
func parseDemoFilter(r *http.Request) (models.DemoFilter, error) {
	var f models.DemoFilter
	toggles := map[string]*bool{
		constants.QueryParamNSFW:          &f.NSFW,
		constants.QueryParamPersonal:      &f.PersonalUse,
		constants.QueryParamCreditCard:    &f.CreditCard,
		constants.QueryParamLargeSpending: &f.LargeSpending,
		constants.QueryParamRaw:           &f.Raw,
	}
	err := parseToggles(r.URL.Query(), toggles)
	return f, err
}

// parseToggles sets each toggle present in the query. An empty value
// counts as true so "?nsfw" works like a checkbox.
func parseToggles(query url.Values, toggles map[string]*bool) error {
	details := make(map[string]string)
	for name, target := range toggles {
		if !query.Has(name) {
			continue
		}
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" {
			*target = true
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			details[name] = "must be true or false"
			continue
		}
		*target = v
	}

	if len(details) > 0 {
		return utils.NewValidationErrorWithDetails("Invalid filter", details)
	}
	return nil
}

func multiValue(query url.Values, name string) []string {
	var out []string
	for _, v := range query[name] {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
