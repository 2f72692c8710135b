package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/config"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

// JWT errors
var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrMissingSigningKey    = errors.New("token signing key is not configured")
)

// RevealClaims represents the claims of an operator token
type RevealClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService issues and validates operator tokens
type JWTService struct {
	Config *config.OperatorSettings
}

// NewJWTService creates a new JWTService instance
func NewJWTService(cfg *config.OperatorSettings) *JWTService {
	return &JWTService{
		Config: cfg,
	}
}

// GetConfig returns the operator settings, or defaults without a secret
func (s *JWTService) GetConfig() *config.OperatorSettings {
	if s.Config == nil {
		return &config.OperatorSettings{
			TokenExpiry: constants.DefaultRevealTokenExpiry,
			Issuer:      constants.DefaultJWTIssuer,
		}
	}
	return s.Config
}

// GenerateRevealToken creates a token that allows unmasked message display.
//
// Returns:
//   - The signed token
//   - The token ID, used to correlate reveal audit entries
//   - The expiry time
//   - An error if no signing key is configured or signing fails
func (s *JWTService) GenerateRevealToken() (string, string, time.Time, error) {
	cfg := s.GetConfig()
	if cfg.TokenSecret == "" {
		return "", "", time.Time{}, ErrMissingSigningKey
	}

	jwtID := uuid.New().String()
	now := time.Now()
	expiresAt := now.Add(cfg.TokenExpiry)

	claims := RevealClaims{
		TokenType: constants.TokenTypeReveal,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   constants.OperatorSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jwtID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.TokenSecret))
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, jwtID, expiresAt, nil
}

// ValidateToken validates a token and returns its claims if valid
func (s *JWTService) ValidateToken(tokenString string, expectedType string) (*RevealClaims, error) {
	cfg := s.GetConfig()
	if cfg.TokenSecret == "" {
		return nil, utils.NewInvalidTokenError()
	}

	token, err := jwt.ParseWithClaims(tokenString, &RevealClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(cfg.TokenSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*RevealClaims)
	if !ok || !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}

	if claims.TokenType != expectedType || claims.Issuer != cfg.Issuer {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}
