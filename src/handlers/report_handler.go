package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/salescope/src/config"
	"github.com/username/salescope/src/logger"
	"github.com/username/salescope/src/security/validation"
	"github.com/username/salescope/src/services"
	"github.com/username/salescope/src/utils"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: service}
}

// HandleGenerateReport runs the full report pipeline. With a multipart
// "file" field the uploaded CSV/XLSX is analyzed; without one the bundled
// sample dataset is used.
func (h *ReportHandler) HandleGenerateReport(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestIDFromContext(r.Context())

	if !isMultipart(r) {
		logger.L.Info("Processing report request from sample dataset", "requestID", requestID)
		bundle, err := h.reportService.GenerateReportFromSample(r.Context())
		if err != nil {
			logger.L.Error("Report generation from sample failed", "requestID", requestID, "error", err)
			utils.SendAppError(w, err)
			return
		}
		utils.SendJSON(w, bundle)
		return
	}

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "requestID", requestID, "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}
	// Multipart temp storage must go away on every exit path. A removal
	// failure is logged but never masks the request's outcome.
	defer func() {
		if r.MultipartForm != nil {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				logger.L.Warn("Failed to remove multipart temp files", "requestID", requestID, "error", err)
			}
		}
	}()

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "requestID", requestID, "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		logger.L.Warn("Uploaded file header reports size too large", "requestID", requestID, "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB (header check)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUploadExtension(fileHeader.Filename); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		logger.L.Warn("Invalid client-declared file type", "requestID", requestID, "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		logger.L.Warn("Server-side file content validation failed", "requestID", requestID, "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.L.Info("Processing report request from upload", "requestID", requestID, "filename", fileHeader.Filename, "detectedType", detectedContentType)

	bundle, err := h.reportService.GenerateReportFromFile(r.Context(), file, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, services.ErrParsingFailed) {
			logger.L.Warn("Report generation failed due to file parsing errors", "requestID", requestID, "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error parsing uploaded file: %v", err), http.StatusBadRequest)
			return
		}
		logger.L.Error("Report generation from upload failed", "requestID", requestID, "filename", fileHeader.Filename, "error", err)
		utils.SendAppError(w, err)
		return
	}

	utils.SendJSON(w, bundle)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
