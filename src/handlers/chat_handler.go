package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/username/salescope/src/logger"
	"github.com/username/salescope/src/models"
	"github.com/username/salescope/src/services"
	"github.com/username/salescope/src/utils"
)

type ChatHandler struct {
	reportService services.ReportService
}

func NewChatHandler(service services.ReportService) *ChatHandler {
	return &ChatHandler{reportService: service}
}

type chatRequest struct {
	Message   string              `json:"message"`
	ChartData models.ChartSummary `json:"chartData"`
}

// HandleChat answers a follow-up question about a previously generated
// summary. The client sends the summary back; nothing is kept server-side.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestIDFromContext(r.Context())

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.SendJSONError(w, "message is required", http.StatusBadRequest)
		return
	}

	answer, err := h.reportService.Chat(r.Context(), req.Message, req.ChartData)
	if err != nil {
		logger.L.Error("Chat request failed", "requestID", requestID, "error", err)
		utils.SendAppError(w, err)
		return
	}

	utils.SendJSON(w, map[string]string{"response": answer})
}
