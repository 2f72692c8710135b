package service

import (
	"fmt"
	"time"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

// PassphraseChecker verifies the operator passphrase.
type PassphraseChecker interface {
	Enabled() bool
	Verify(passphrase string) (bool, error)
}

// TokenIssuer creates operator tokens.
type TokenIssuer interface {
	GenerateRevealToken() (string, string, time.Time, error)
}

// OperatorService exchanges the operator passphrase for a reveal token.
type OperatorService struct {
	verifier PassphraseChecker
	tokens   TokenIssuer
}

// NewOperatorService creates a new OperatorService
func NewOperatorService(verifier PassphraseChecker, tokens TokenIssuer) *OperatorService {
	return &OperatorService{
		verifier: verifier,
		tokens:   tokens,
	}
}

// IssueToken checks the passphrase and returns a reveal token.
//
// Parameters:
//   - passphrase: The passphrase entered by the operator
//   - clientIP: Address of the caller, used for the audit log
//
// Returns:
//   - The token and its expiry
//   - A forbidden error when no passphrase is configured
//   - An invalid credentials error when the passphrase does not match
func (s *OperatorService) IssueToken(passphrase, clientIP string) (*models.TokenResponse, error) {
	if !s.verifier.Enabled() {
		utils.LogAuth("token", clientIP, false, "reveal disabled")
		return nil, utils.NewForbiddenError(constants.MsgRevealDisabled)
	}

	ok, err := s.verifier.Verify(passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to verify passphrase: %w", err)
	}
	if !ok {
		utils.LogAuth("token", clientIP, false, "invalid passphrase")
		return nil, utils.NewInvalidCredentialsError()
	}

	token, tokenID, expiresAt, err := s.tokens.GenerateRevealToken()
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	utils.LogAuth("token", clientIP, true, "token "+tokenID)

	return &models.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}
