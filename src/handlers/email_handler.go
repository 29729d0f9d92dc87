package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/username/salescope/src/apperrors"
	"github.com/username/salescope/src/logger"
	"github.com/username/salescope/src/services"
	"github.com/username/salescope/src/utils"
)

type EmailHandler struct {
	emailService services.EmailService
}

func NewEmailHandler(service services.EmailService) *EmailHandler {
	return &EmailHandler{emailService: service}
}

type emailReportRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Report    string `json:"report"`
}

// HandleEmailReport forwards a generated report to a recipient via the
// configured email provider.
func (h *EmailHandler) HandleEmailReport(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestIDFromContext(r.Context())

	var req emailReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Recipient) == "" || !strings.Contains(req.Recipient, "@") {
		utils.SendJSONError(w, "a valid recipient email address is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Report) == "" {
		utils.SendJSONError(w, "report body is required", http.StatusBadRequest)
		return
	}
	if req.Subject == "" {
		req.Subject = "Your Sales Analysis Report"
	}

	if err := h.emailService.SendReportEmail(req.Recipient, req.Subject, req.Report); err != nil {
		logger.L.Error("Report email delivery failed", "requestID", requestID, "recipient", req.Recipient, "error", err)
		utils.SendAppError(w, apperrors.UpstreamWrap(err, "email provider rejected the message"))
		return
	}

	utils.SendJSON(w, map[string]string{"status": "sent"})
}
