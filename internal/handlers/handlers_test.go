package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/auth"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
)

// MockDashboardService implements handlers.DashboardServiceInterface.
// Unset functions fall back to empty results.
type MockDashboardService struct {
	AuthorizeRevealFunc func(raw, isOperator bool) error
	SummaryFunc         func() (models.TableSummary, error)
	OptionsFunc         func() (models.TableOptions, error)
	RowsFunc            func(f models.TableFilter) (*models.TableView, error)
	ExportFunc          func(w io.Writer, f models.TableFilter) (int, error)
	ReloadFunc          func() (models.TableSummary, error)
	DemoMessagesFunc    func(f models.DemoFilter) *models.DemoView
	DemoMessageFunc     func(index int, raw bool) (*models.EnrichedRecord, error)
	ExportDemoFunc      func(w io.Writer) (int, error)
	EnrichFunc          func(text string) models.Enrichment
}

func (m *MockDashboardService) AuthorizeReveal(raw, isOperator bool) error {
	if m.AuthorizeRevealFunc != nil {
		return m.AuthorizeRevealFunc(raw, isOperator)
	}
	return nil
}

func (m *MockDashboardService) Summary() (models.TableSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc()
	}
	return models.TableSummary{}, nil
}

func (m *MockDashboardService) Options() (models.TableOptions, error) {
	if m.OptionsFunc != nil {
		return m.OptionsFunc()
	}
	return models.TableOptions{}, nil
}

func (m *MockDashboardService) Rows(f models.TableFilter) (*models.TableView, error) {
	if m.RowsFunc != nil {
		return m.RowsFunc(f)
	}
	return &models.TableView{}, nil
}

func (m *MockDashboardService) Export(w io.Writer, f models.TableFilter) (int, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(w, f)
	}
	return 0, nil
}

func (m *MockDashboardService) Reload() (models.TableSummary, error) {
	if m.ReloadFunc != nil {
		return m.ReloadFunc()
	}
	return models.TableSummary{}, nil
}

func (m *MockDashboardService) DemoMessages(f models.DemoFilter) *models.DemoView {
	if m.DemoMessagesFunc != nil {
		return m.DemoMessagesFunc(f)
	}
	return &models.DemoView{}
}

func (m *MockDashboardService) DemoMessage(index int, raw bool) (*models.EnrichedRecord, error) {
	if m.DemoMessageFunc != nil {
		return m.DemoMessageFunc(index, raw)
	}
	return &models.EnrichedRecord{Index: index}, nil
}

func (m *MockDashboardService) ExportDemo(w io.Writer) (int, error) {
	if m.ExportDemoFunc != nil {
		return m.ExportDemoFunc(w)
	}
	return 0, nil
}

func (m *MockDashboardService) Enrich(text string) models.Enrichment {
	if m.EnrichFunc != nil {
		return m.EnrichFunc(text)
	}
	return models.Enrichment{MaskedText: text}
}

// MockOperatorService implements handlers.OperatorServiceInterface
type MockOperatorService struct {
	IssueTokenFunc func(passphrase, clientIP string) (*models.TokenResponse, error)
}

func (m *MockOperatorService) IssueToken(passphrase, clientIP string) (*models.TokenResponse, error) {
	return m.IssueTokenFunc(passphrase, clientIP)
}

// staticValidator accepts exactly one token
type staticValidator struct{ token string }

func (v staticValidator) ValidateToken(token, expectedType string) (*auth.RevealClaims, error) {
	if token != v.token {
		return nil, auth.ErrInvalidSigningMethod
	}
	claims := &auth.RevealClaims{TokenType: expectedType}
	claims.ID = "jti-test"
	return claims, nil
}

// apiResponse mirrors the JSON envelope
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Page       int `json:"page"`
		PageSize   int `json:"page_size"`
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

// serve runs handler behind the optional operator middleware
func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	auth.OptionalOperator(staticValidator{token: "operator-token"})(handler).ServeHTTP(rr, req)
	return rr
}
