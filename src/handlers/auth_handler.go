package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/salescope/src/logger"
	"github.com/username/salescope/src/security"
	"github.com/username/salescope/src/utils"
)

type AuthHandler struct {
	authService *security.AuthService
}

func NewAuthHandler(authService *security.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type tokenRequest struct {
	APIKey string `json:"apiKey"`
}

// HandleIssueToken exchanges the configured dashboard API key for a
// short-lived bearer token.
func (h *AuthHandler) HandleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	if !h.authService.VerifyAPIKey(req.APIKey) {
		logger.L.Warn("Token request with invalid API key", "remoteAddr", r.RemoteAddr)
		utils.SendJSONError(w, "invalid API key", http.StatusUnauthorized)
		return
	}

	token, err := h.authService.GenerateToken("dashboard")
	if err != nil {
		logger.L.Error("Failed to sign token", "error", err)
		utils.SendJSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	utils.SendJSON(w, map[string]string{"token": token})
}
