// Package auth provides operator authentication for revealing raw messages.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// Context keys for storing request metadata.
const (
	// RequestIDContextKey is the context key for storing the unique request ID.
	RequestIDContextKey ContextKey = constants.RequestIDContextKey

	// OperatorContextKey is the context key for storing the operator token ID.
	OperatorContextKey ContextKey = constants.OperatorContextKey
)

// ExtractBearerToken returns the token from the Authorization header.
//
// Parameters:
//   - r: The HTTP request
//
// Returns:
//   - The token, or "" if the header is absent
//   - utils.ErrUnauthorized if the header is present but not a bearer token
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", nil
	}

	if !strings.HasPrefix(authHeader, constants.BearerTokenPrefix) {
		return "", utils.ErrUnauthorized
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, constants.BearerTokenPrefix))
	if token == "" {
		return "", utils.ErrUnauthorized
	}
	return token, nil
}

// OptionalOperator identifies operators without requiring authentication.
// Requests without an Authorization header pass through anonymously; a header
// carrying an invalid or expired token is rejected with 401 so clients learn
// their token no longer works.
//
// Parameters:
//   - validator: Validates reveal tokens
//
// Returns:
//   - A middleware function for chi routers
func OptionalOperator(validator JWTValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractBearerToken(r)
			if err == nil && token == "" {
				next.ServeHTTP(w, r)
				return
			}

			var claims *RevealClaims
			if err == nil {
				claims, err = validator.ValidateToken(token, constants.TokenTypeReveal)
			}

			requestID, _ := GetRequestID(r)
			if err != nil {
				log.Info().
					Err(err).
					Str(constants.RequestIDContextKey, requestID).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Operator authentication failed")

				var appErr *utils.AppError
				if errors.As(err, &appErr) {
					utils.ErrorFromAppError(w, appErr)
				} else {
					utils.Unauthorized(w, constants.MsgAuthRequired)
				}
				return
			}

			log.Debug().
				Str(constants.RequestIDContextKey, requestID).
				Str(constants.OperatorContextKey, claims.ID).
				Str("path", r.URL.Path).
				Msg("Operator identified")

			ctx := context.WithValue(r.Context(), OperatorContextKey, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}

// GetRequestID extracts the request ID from the request context.
//
// Parameters:
//   - r: The HTTP request containing the context
//
// Returns:
//   - The request ID if present
//   - A boolean indicating if the request ID was found
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(RequestIDContextKey).(string)
	return requestID, ok
}

// GetOperatorTokenID returns the ID of the operator token that authenticated
// the request.
func GetOperatorTokenID(r *http.Request) (string, bool) {
	tokenID, ok := r.Context().Value(OperatorContextKey).(string)
	return tokenID, ok && tokenID != ""
}

// IsOperator reports whether the request carries a valid operator token.
func IsOperator(r *http.Request) bool {
	_, ok := GetOperatorTokenID(r)
	return ok
}
