package table

import (
	"sort"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
)

// Summary computes the headline metrics. A nil or empty table yields zeros.
func Summary(t *Table) models.TableSummary {
	summary := models.TableSummary{DefaultedColumns: []string{}}
	if t == nil {
		return summary
	}

	summary.SnapshotID = t.ID.String()
	summary.Source = t.Source
	summary.LoadedAt = t.LoadedAt
	summary.Rows = len(t.Rows)
	summary.DefaultedColumns = append(summary.DefaultedColumns, t.Defaulted...)

	execs := make(map[string]struct{})
	for _, row := range t.Rows {
		if row.ExecID != "" {
			execs[row.ExecID] = struct{}{}
		}
		if row.RiskFlagEmail {
			summary.RiskyEmails++
		}
		if row.FlagNSFW {
			summary.NSFWChats++
		}
	}
	summary.Executives = len(execs)

	return summary
}

// Options returns the sorted distinct exec_id and category values.
func Options(t *Table) models.TableOptions {
	opts := models.TableOptions{ExecIDs: []string{}, Categories: []string{}}
	if t == nil {
		return opts
	}

	execs := make(map[string]struct{})
	categories := make(map[string]struct{})
	for _, row := range t.Rows {
		if row.ExecID != "" {
			execs[row.ExecID] = struct{}{}
		}
		if row.Category != "" {
			categories[row.Category] = struct{}{}
		}
	}

	opts.ExecIDs = sortedKeys(execs)
	opts.Categories = sortedKeys(categories)
	return opts
}

// Select returns the rows matching every active selection of f, in table order.
// The table is not modified.
func Select(t *Table, f models.TableFilter) []*models.ActivityRow {
	selected := make([]*models.ActivityRow, 0)
	if t == nil {
		return selected
	}

	execs := toSet(f.ExecIDs)
	categories := toSet(f.Categories)

	for _, row := range t.Rows {
		if len(execs) > 0 {
			if _, ok := execs[row.ExecID]; !ok {
				continue
			}
		}
		if len(categories) > 0 {
			if _, ok := categories[row.Category]; !ok {
				continue
			}
		}
		if f.RiskyEmail && !row.RiskFlagEmail {
			continue
		}
		if f.NSFW && !row.FlagNSFW {
			continue
		}
		if f.OverLimit && !row.OverLimit {
			continue
		}
		if f.PersonalUse && !row.PersonalUse {
			continue
		}
		selected = append(selected, row)
	}

	return selected
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
