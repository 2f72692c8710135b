package handlers

import (
	"net/http"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/middleware"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/models"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

// AuthHandler handles operator authentication routes
type AuthHandler struct {
	operatorService OperatorServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(operatorService OperatorServiceInterface) *AuthHandler {
	if operatorService == nil {
		panic("operatorService cannot be nil")
	}
	return &AuthHandler{
		operatorService: operatorService,
	}
}

// IssueToken exchanges the operator passphrase for a reveal token
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	resp, err := h.operatorService.IssueToken(req.Passphrase, middleware.ClientIP(r))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}
