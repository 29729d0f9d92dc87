package validation

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/username/salescope/src/logger"
)

// AllowedUploadExtensions are the file types the ingestion pipeline handles.
// Legacy binary .xls is deliberately absent: the workbook reader only
// understands OOXML containers, so advertising .xls would accept files that
// can never parse.
var AllowedUploadExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// AllowedClientContentTypes is a map for quick lookup of allowed
// client-declared MIME types for sales data uploads.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true, // browsers often declare this for CSVs
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain":               true, // CSVs are often plain text
	"application/octet-stream": true, // Fallback, but be more cautious
}

// ValidateUploadExtension checks the uploaded filename's extension.
func ValidateUploadExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedUploadExtensions[ext] {
		logger.L.Warn("Disallowed upload file extension", "filename", filename, "ext", ext)
		return fmt.Errorf("file type '%s' is not supported; upload .csv or .xlsx", ext)
	}
	return nil
}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	base := strings.ToLower(strings.Split(contentType, ";")[0])
	if allowed, exists := AllowedClientContentTypes[base]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for sales data upload", contentType)
	}
	return nil
}

// xlsxMagic is the ZIP local-file-header signature; .xlsx workbooks are ZIP
// containers.
var xlsxMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// ValidateFileContentByMagicBytes checks the actual file content signature.
// It returns the detected content type and an error if validation fails.
func ValidateFileContentByMagicBytes(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 512) // Read first 512 bytes for MIME detection
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// IMPORTANT: Reset the file read pointer to the beginning so the actual parser can read the full file.
	_, seekErr := file.Seek(0, io.SeekStart)
	if seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	if bytes.HasPrefix(buffer[:n], xlsxMagic) {
		logger.L.Debug("File content validated as spreadsheet container")
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	}

	detectedContentType := http.DetectContentType(buffer[:n])
	detectedContentType = strings.ToLower(strings.Split(detectedContentType, ";")[0])

	// For CSV we mainly care that the payload is text and not something like
	// an executable; strict parsing later does the rest.
	allowedDetectedTypes := map[string]bool{
		"text/plain":               true,
		"text/csv":                 true,
		"application/csv":          true,
		"application/octet-stream": true, // Be cautious with this; strict parsing is key later
	}

	if !allowedDetectedTypes[detectedContentType] {
		logger.L.Warn("Disallowed detected file content type (magic bytes)", "detectedContentType", detectedContentType)
		return detectedContentType, fmt.Errorf("detected file content type '%s' is not consistent with a sales data file", detectedContentType)
	}

	logger.L.Debug("File content type (magic bytes) validated", "detectedContentType", detectedContentType)
	return detectedContentType, nil
}
