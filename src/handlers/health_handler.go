package handlers

import (
	"net/http"

	"github.com/username/salescope/src/llm"
	"github.com/username/salescope/src/logger"
	"github.com/username/salescope/src/utils"
)

type HealthHandler struct {
	generator llm.TextGenerator
}

func NewHealthHandler(generator llm.TextGenerator) *HealthHandler {
	return &HealthHandler{generator: generator}
}

// HandleLLMHealth sends a trivial prompt through the live client so
// operators can verify connectivity and credentials without generating a
// full report.
func (h *HealthHandler) HandleLLMHealth(w http.ResponseWriter, r *http.Request) {
	text, err := h.generator.GenerateContent(r.Context(), "Say hello")
	if err != nil {
		logger.L.Warn("LLM health probe failed", "error", err)
		utils.SendAppError(w, err)
		return
	}
	utils.SendJSON(w, map[string]any{"success": true, "message": text})
}
