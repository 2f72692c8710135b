package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	src := "exec_id,category,risk_flag_email,flag_nsfw,over_limit,personal_use,message\n" +
		"e1,travel,True,False,True,False,Flight to Oslo\n" +
		"e2,meals,False,True,False,True,\"Dinner, then drinks\"\n" +
		"e1,meals,True,True,False,False,Team lunch\n" +
		",gifts,False,False,False,False,Anonymous\n"
	tbl, err := NewLoader(0).LoadReader(strings.NewReader(src), "sample")
	require.NoError(t, err)
	return tbl
}

func TestSummary(t *testing.T) {
	summary := Summary(sampleTable(t))

	assert.Equal(t, 4, summary.Rows)
	assert.Equal(t, 2, summary.Executives)
	assert.Equal(t, 2, summary.RiskyEmails)
	assert.Equal(t, 2, summary.NSFWChats)
	assert.Contains(t, summary.DefaultedColumns, constants.ColAmountUSD)
}

func TestSummary_NilTable(t *testing.T) {
	summary := Summary(nil)
	assert.Zero(t, summary.Rows)
	assert.Zero(t, summary.Executives)
	assert.NotNil(t, summary.DefaultedColumns)

	opts := Options(nil)
	assert.Empty(t, opts.ExecIDs)
	assert.Empty(t, Select(nil, models.TableFilter{}))
}

func TestOptions(t *testing.T) {
	opts := Options(sampleTable(t))
	assert.Equal(t, []string{"e1", "e2"}, opts.ExecIDs)
	assert.Equal(t, []string{"gifts", "meals", "travel"}, opts.Categories)
}

func TestSelect(t *testing.T) {
	tbl := sampleTable(t)

	tests := []struct {
		name   string
		filter models.TableFilter
		want   []string
	}{
		{name: "No selection", filter: models.TableFilter{}, want: []string{"Flight to Oslo", "Dinner, then drinks", "Team lunch", "Anonymous"}},
		{name: "Exec", filter: models.TableFilter{ExecIDs: []string{"e1"}}, want: []string{"Flight to Oslo", "Team lunch"}},
		{name: "Category", filter: models.TableFilter{Categories: []string{"meals", "gifts"}}, want: []string{"Dinner, then drinks", "Team lunch", "Anonymous"}},
		{name: "Risky email", filter: models.TableFilter{RiskyEmail: true}, want: []string{"Flight to Oslo", "Team lunch"}},
		{name: "NSFW and exec", filter: models.TableFilter{NSFW: true, ExecIDs: []string{"e1"}}, want: []string{"Team lunch"}},
		{name: "Over limit", filter: models.TableFilter{OverLimit: true}, want: []string{"Flight to Oslo"}},
		{name: "Personal use", filter: models.TableFilter{PersonalUse: true}, want: []string{"Dinner, then drinks"}},
		{name: "No match", filter: models.TableFilter{ExecIDs: []string{"e9"}}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]string, 0)
			for _, row := range Select(tbl, tt.filter) {
				got = append(got, row.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, 4, tbl.Len(), "selection must not modify the table")
}

func TestWriteCSV(t *testing.T) {
	tbl := sampleTable(t)
	columns := []string{constants.ColExecID, constants.ColMessage, constants.ColFlagNSFW, constants.ColTimestamp}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, columns, tbl.Rows[:2]))

	want := "exec_id,message,flag_nsfw,ts\n" +
		"e1,Flight to Oslo,False,\n" +
		"e2,\"Dinner, then drinks\",True,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []string{constants.ColMessage}, []*models.ActivityRow{}))
	assert.Equal(t, "message\n", buf.String())
}
