package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/salescope/src/apperrors"
	"github.com/username/salescope/src/logger"
)

// HashKey returns the hex-encoded SHA256 of s, used for cache keys.
func HashKey(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}

// SendJSONError sends a plain JSON error response with the given status.
func SendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if logger.L != nil {
		logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	}
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// SendAppError sends a structured error response. Non-AppError values are
// reported as an opaque internal error so callers never see internals.
func SendAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("an unexpected error occurred")
		appErr.Cause = err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	if logger.L != nil {
		logger.L.Warn("Sending structured error to client",
			"code", appErr.Code, "message", appErr.Message, "statusCode", appErr.StatusCode, "cause", appErr.Cause)
	}
	json.NewEncoder(w).Encode(map[string]any{"error": appErr})
}

// SendJSON sends data as a JSON response with status 200.
func SendJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil && logger.L != nil {
		logger.L.Error("Error encoding JSON response", "error", err)
	}
}
