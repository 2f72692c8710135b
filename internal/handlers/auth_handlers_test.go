package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/handlers"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

func TestNewAuthHandler_NilService(t *testing.T) {
	assert.Panics(t, func() { handlers.NewAuthHandler(nil) })
}

func TestIssueToken(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedCode   string
	}{
		{name: "Accepted", body: `{"passphrase":"open sesame"}`, expectedStatus: http.StatusOK},
		{name: "Wrong passphrase", body: `{"passphrase":"nope"}`, expectedStatus: http.StatusUnauthorized, expectedCode: constants.CodeInvalidCredentials},
		{name: "Missing passphrase", body: `{}`, expectedStatus: http.StatusBadRequest, expectedCode: constants.CodeValidationError},
		{name: "Empty body", body: ``, expectedStatus: http.StatusBadRequest, expectedCode: constants.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIP string
			h := handlers.NewAuthHandler(&MockOperatorService{
				IssueTokenFunc: func(passphrase, clientIP string) (*models.TokenResponse, error) {
					gotIP = clientIP
					if passphrase != "open sesame" {
						return nil, utils.NewInvalidCredentialsError()
					}
					return &models.TokenResponse{Token: "tok", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Minute)}, nil
				},
			})

			req := httptest.NewRequest(http.MethodPost, constants.AuthTokenPath, strings.NewReader(tt.body))
			req.RemoteAddr = "192.0.2.10:4000"
			rr := httptest.NewRecorder()
			h.IssueToken(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code, rr.Body.String())
			resp := decodeResponse(t, rr)
			if tt.expectedCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.expectedCode, resp.Error.Code)
				assert.NotContains(t, rr.Body.String(), "nope")
				return
			}
			assert.Equal(t, "192.0.2.10", gotIP)
			assert.Contains(t, string(resp.Data), `"token":"tok"`)
		})
	}
}
