package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/middleware"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils/ratelimit"
)

// MockLimiter implements the middleware.ClientLimiter interface
type MockLimiter struct {
	mock.Mock
}

// Allow mocks the Allow method
func (m *MockLimiter) Allow(clientID string) bool {
	args := m.Called(clientID)
	return args.Bool(0)
}

// SecurityMockHandler is a simple HTTP handler for testing security middleware
type SecurityMockHandler struct {
	Called bool
}

// ServeHTTP implements the http.Handler interface
func (h *SecurityMockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Called = true
	w.WriteHeader(http.StatusOK)
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		allowed        bool
		expectCall     bool
		expectedStatus int
		nextCalled     bool
	}{
		{name: "Allowed", path: constants.AuthTokenPath, allowed: true, expectCall: true, expectedStatus: http.StatusOK, nextCalled: true},
		{name: "Throttled", path: constants.AuthTokenPath, allowed: false, expectCall: true, expectedStatus: http.StatusTooManyRequests},
		{name: "Exempt health", path: constants.HealthPath, expectedStatus: http.StatusOK, nextCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := new(MockLimiter)
			if tt.expectCall {
				limiter.On("Allow", "192.0.2.1").Return(tt.allowed)
			}
			next := &SecurityMockHandler{}

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req.RemoteAddr = "192.0.2.1:5555"
			rr := httptest.NewRecorder()

			middleware.RateLimit(limiter, 60)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.nextCalled, next.Called)
			if tt.expectedStatus == http.StatusTooManyRequests {
				assert.Equal(t, "60", rr.Header().Get(constants.HeaderRetryAfter))
				assert.Contains(t, rr.Body.String(), constants.CodeRateLimited)
			}
			limiter.AssertExpectations(t)
		})
	}
}

func TestRateLimit_WithStore(t *testing.T) {
	store := ratelimit.NewStore(ratelimit.PerMinute(1, 2), 10, 0)
	handler := middleware.RateLimit(store, 60)(&SecurityMockHandler{})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, constants.AuthTokenPath, nil)
		req.RemoteAddr = "198.51.100.7:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own bucket
	req := httptest.NewRequest(http.MethodPost, constants.AuthTokenPath, nil)
	req.RemoteAddr = "198.51.100.8:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	middleware.SecurityHeaders()(&SecurityMockHandler{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, constants.ContentTypeOptionsNoSniff, rr.Header().Get(constants.HeaderXContentTypeOptions))
	assert.Equal(t, constants.FrameOptionsDeny, rr.Header().Get(constants.HeaderXFrameOptions))
	assert.Equal(t, constants.XSSProtectionModeBlock, rr.Header().Get(constants.HeaderXXSSProtection))
	assert.Equal(t, constants.ReferrerPolicyStrictOrigin, rr.Header().Get(constants.HeaderReferrerPolicy))
	assert.Equal(t, constants.CSPDefaultSrc, rr.Header().Get(constants.HeaderContentSecurityPolicy))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{name: "Forwarded for", headers: map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}, remoteAddr: "10.0.0.2:80", expected: "203.0.113.1"},
		{name: "Real IP", headers: map[string]string{"X-Real-IP": "203.0.113.2"}, remoteAddr: "10.0.0.2:80", expected: "203.0.113.2"},
		{name: "Remote addr", remoteAddr: "10.0.0.3:80", expected: "10.0.0.3"},
		{name: "Remote addr without port", remoteAddr: "10.0.0.4", expected: "10.0.0.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, middleware.ClientIP(req))
		})
	}
}
