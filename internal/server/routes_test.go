package server

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
)

// issueToken logs in with the operator passphrase and returns the bearer header.
func issueToken(t *testing.T, s *Server) map[string]string {
	t.Helper()

	rr := doRequest(t, s, http.MethodPost, constants.AuthTokenPath, `{"passphrase":"`+testPassphrase+`"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var token models.TokenResponse
	require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, &token))
	require.NotEmpty(t, token.Token)
	assert.Equal(t, "Bearer", token.TokenType)

	return map[string]string{constants.HeaderAuthorization: constants.BearerTokenPrefix + token.Token}
}

func TestRoutes_Registered(t *testing.T) {
	s := newTestServer(t, testConfig(t, writeSource(t)))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/health", want: http.StatusOK},
		{name: "version", method: http.MethodGet, path: "/version", want: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK},
		{name: "route docs", method: http.MethodGet, path: "/api/routes", want: http.StatusOK},
		{name: "summary", method: http.MethodGet, path: "/api/table/summary", want: http.StatusOK},
		{name: "options", method: http.MethodGet, path: "/api/table/options", want: http.StatusOK},
		{name: "rows", method: http.MethodGet, path: "/api/table/rows", want: http.StatusOK},
		{name: "export", method: http.MethodGet, path: "/api/table/export", want: http.StatusOK},
		{name: "reload", method: http.MethodPost, path: "/api/table/reload", want: http.StatusOK},
		{name: "demo list", method: http.MethodGet, path: "/api/demo/messages", want: http.StatusOK},
		{name: "demo detail", method: http.MethodGet, path: "/api/demo/messages/0", want: http.StatusOK},
		{name: "enrich", method: http.MethodPost, path: "/api/enrich", body: `{"text":"hello"}`, want: http.StatusOK},
		{name: "unknown path", method: http.MethodGet, path: "/api/nope", want: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/api/table/reload", want: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, s, tt.method, tt.path, tt.body, nil)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
}

func TestRoutes_BaseMiddleware(t *testing.T) {
	s := newTestServer(t, testConfig(t, writeSource(t)))

	rr := doRequest(t, s, http.MethodGet, "/api/table/summary", "", map[string]string{
		constants.HeaderXRequestID: "req-123",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "req-123", rr.Header().Get(constants.HeaderXRequestID))
	assert.Equal(t, constants.ContentTypeOptionsNoSniff, rr.Header().Get(constants.HeaderXContentTypeOptions))
	assert.Equal(t, constants.FrameOptionsDeny, rr.Header().Get(constants.HeaderXFrameOptions))
}

func TestRoutes_Summary(t *testing.T) {
	s := newTestServer(t, testConfig(t, writeSource(t)))

	rr := doRequest(t, s, http.MethodGet, "/api/table/summary", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var summary models.TableSummary
	require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, &summary))
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 2, summary.Executives)
	assert.Equal(t, 1, summary.RiskyEmails)
	assert.Equal(t, 1, summary.NSFWChats)
	assert.Contains(t, summary.DefaultedColumns, "flag_fin")
}

func TestRoutes_RevealFlow(t *testing.T) {
	s := newTestServer(t, testConfig(t, writeSource(t)))

	// Masked by default
	rr := doRequest(t, s, http.MethodGet, "/api/table/rows", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var view models.TableView
	require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, &view))
	require.Len(t, view.Rows, 3)
	assert.True(t, view.Masked)
	assert.Equal(t, "what the ****", view.Rows[0].Message)
	assert.Equal(t, "this **** report", view.Rows[0].EmailMessage)

	// Raw without a token is refused
	rr = doRequest(t, s, http.MethodGet, "/api/table/rows?raw=true", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// A wrong passphrase is rejected
	rr = doRequest(t, s, http.MethodPost, constants.AuthTokenPath, `{"passphrase":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// The right passphrase yields a token that unlocks raw text
	headers := issueToken(t, s)

	rr = doRequest(t, s, http.MethodGet, "/api/table/rows?raw=true", "", headers)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	view = models.TableView{}
	require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, &view))
	assert.False(t, view.Masked)
	assert.Equal(t, "what the fuck", view.Rows[0].Message)

	// The full demo export carries raw text and needs the token too
	rr = doRequest(t, s, http.MethodGet, "/api/demo/export", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(t, s, http.MethodGet, "/api/demo/export", "", headers)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get(constants.HeaderContentDisposition), constants.DefaultDemoExportFileName)
	records, err := csv.NewReader(strings.NewReader(rr.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 9)
}

func TestRoutes_InvalidBearerRejectedOnTableRoutes(t *testing.T) {
	s := newTestServer(t, testConfig(t, writeSource(t)))

	rr := doRequest(t, s, http.MethodGet, "/api/table/summary", "", map[string]string{
		constants.HeaderAuthorization: "Bearer garbage",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRoutes_StaleBearerDoesNotBlockLogin(t *testing.T) {
	s := newTestServer(t, testConfig(t, writeSource(t)))

	rr := doRequest(t, s, http.MethodPost, constants.AuthTokenPath, `{"passphrase":"`+testPassphrase+`"}`, map[string]string{
		constants.HeaderAuthorization: "Bearer expired-or-garbage",
	})

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestRoutes_TokenRateLimited(t *testing.T) {
	cfg := testConfig(t, writeSource(t))
	cfg.Operator.AttemptsPerMinute = 1
	cfg.Operator.AttemptBurst = 2
	s := newTestServer(t, cfg)

	body := `{"passphrase":"wrong"}`
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, s, http.MethodPost, constants.AuthTokenPath, body, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, s, http.MethodPost, constants.AuthTokenPath, body, nil).Code)

	rr := doRequest(t, s, http.MethodPost, constants.AuthTokenPath, body, nil)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get(constants.HeaderRetryAfter))

	// Other routes are not throttled
	assert.Equal(t, http.StatusOK, doRequest(t, s, http.MethodGet, "/api/table/summary", "", nil).Code)
}

func TestRoutes_RevealDisabledWithoutPassphrase(t *testing.T) {
	cfg := testConfig(t, writeSource(t))
	cfg.Operator.PassphraseHash = ""
	cfg.Operator.PassphraseSalt = ""
	s := newTestServer(t, cfg)

	rr := doRequest(t, s, http.MethodGet, "/api/table/rows?raw=true", "", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(t, s, http.MethodPost, constants.AuthTokenPath, `{"passphrase":"anything"}`, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRoutes_TableFilters(t *testing.T) {
	s := newTestServer(t, testConfig(t, writeSource(t)))

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "no filter", query: "", want: 3},
		{name: "exec id", query: "?exec_id=E1", want: 2},
		{name: "exec ids repeated", query: "?exec_id=E1&exec_id=E2", want: 3},
		{name: "comma is part of the value", query: "?exec_id=E1,E2", want: 0},
		{name: "category", query: "?category=meals", want: 1},
		{name: "risky email", query: "?risky_email=true", want: 1},
		{name: "nsfw", query: "?nsfw", want: 1},
		{name: "over limit", query: "?over_limit=1", want: 1},
		{name: "personal use", query: "?personal_use=true", want: 1},
		{name: "combined", query: "?exec_id=E1&category=travel&nsfw=true", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, s, http.MethodGet, "/api/table/rows"+tt.query, "", nil)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			var view models.TableView
			require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, &view))
			assert.Equal(t, tt.want, view.Total)
		})
	}

	rr := doRequest(t, s, http.MethodGet, "/api/table/rows?nsfw=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRoutes_Export(t *testing.T) {
	s := newTestServer(t, testConfig(t, writeSource(t)))

	rr := doRequest(t, s, http.MethodGet, "/api/table/export?exec_id=E2", "", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constants.ContentTypeCSV, rr.Header().Get(constants.HeaderContentType))
	assert.Contains(t, rr.Header().Get(constants.HeaderContentDisposition), constants.DefaultExportFileName)

	records, err := csv.NewReader(strings.NewReader(rr.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, constants.TableDisplayColumns, records[0])
}

func TestRoutes_CategoryWithComma(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.csv")
	source := "exec_id,category,amt_usd\nE1,\"Travel, Meals\",10\nE2,Meals,20\nE3,Travel,30\n"
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))
	s := newTestServer(t, testConfig(t, path))

	rr := doRequest(t, s, http.MethodGet, "/api/table/options", "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var options models.TableOptions
	require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, &options))
	assert.Contains(t, options.Categories, "Travel, Meals")

	rr = doRequest(t, s, http.MethodGet, "/api/table/rows?category="+url.QueryEscape("Travel, Meals"), "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var view models.TableView
	require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, &view))
	assert.Equal(t, 1, view.Total)
}

func TestRoutes_SourceMissing(t *testing.T) {
	s := newTestServer(t, testConfig(t, t.TempDir()+"/missing.csv"))

	for _, path := range []string{"/api/table/summary", "/api/table/rows", "/api/table/options"} {
		rr := doRequest(t, s, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code, path)
	}

	// The demo dataset does not depend on the source
	rr := doRequest(t, s, http.MethodGet, "/api/demo/messages", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRoutes_Demo(t *testing.T) {
	s := newTestServer(t, testConfig(t, writeSource(t)))

	rr := doRequest(t, s, http.MethodGet, "/api/demo/messages?nsfw=true", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var view models.DemoView
	require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, &view))
	assert.True(t, view.Masked)
	require.NotEmpty(t, view.Messages)
	for _, m := range view.Messages {
		assert.True(t, m.NSFW)
		assert.Empty(t, m.Message)
	}

	rr = doRequest(t, s, http.MethodGet, "/api/demo/messages/99", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, s, http.MethodGet, "/api/demo/messages/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRoutes_Enrich(t *testing.T) {
	s := newTestServer(t, testConfig(t, writeSource(t)))

	rr := doRequest(t, s, http.MethodPost, constants.EnrichPath, `{"text":"What the fuck is that?"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var enrichment models.Enrichment
	require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, &enrichment))
	assert.Equal(t, "What the **** is that?", enrichment.MaskedText)
	assert.True(t, enrichment.NSFW)
	assert.False(t, enrichment.PersonalUse)
	assert.False(t, enrichment.CreditCard)
	assert.False(t, enrichment.LargeSpending)
	assert.Equal(t, models.SentimentNeutral, enrichment.Sentiment)

	rr = doRequest(t, s, http.MethodPost, constants.EnrichPath, `{"text":""}`, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var empty models.Enrichment
	require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, &empty))
	assert.Equal(t, "", empty.MaskedText)
	assert.False(t, empty.NSFW)
	assert.False(t, empty.PersonalUse)
	assert.False(t, empty.CreditCard)
	assert.False(t, empty.LargeSpending)
	assert.Equal(t, models.SentimentNeutral, empty.Sentiment)

	rr = doRequest(t, s, http.MethodPost, constants.EnrichPath, `{"text":"`+strings.Repeat("a", constants.MaxEnrichTextLength+1)+`"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRoutes_APIRoutesDocument(t *testing.T) {
	s := newTestServer(t, testConfig(t, writeSource(t)))

	rr := doRequest(t, s, http.MethodGet, "/api/routes", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var doc map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeResponse(t, rr).Data, &doc))
	for _, group := range []string{"authentication", "table", "demo", "enrichment", "system"} {
		assert.Contains(t, doc, group)
	}
	assert.Contains(t, doc["table"], "GET /api/table/rows")
}
