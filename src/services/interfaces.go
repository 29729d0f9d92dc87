package services

import (
	"context"
	"errors"
	"io"

	"github.com/username/salescope/src/models"
)

// ErrParsingFailed wraps file-format errors from the parsers so handlers can
// map them to a 400 instead of a 500.
var ErrParsingFailed = errors.New("error parsing uploaded file")

// ReportService is the core report-generation orchestration logic.
type ReportService interface {
	// GenerateReportFromFile runs the full pipeline on an uploaded file.
	GenerateReportFromFile(ctx context.Context, file io.Reader, filename string) (*models.ReportBundle, error)
	// GenerateReportFromSample runs the full pipeline on the bundled dataset.
	GenerateReportFromSample(ctx context.Context) (*models.ReportBundle, error)
	// Chat answers a follow-up question grounded in a chart summary.
	Chat(ctx context.Context, message string, summary models.ChartSummary) (string, error)
}

// EmailService delivers a generated report to a recipient.
type EmailService interface {
	SendReportEmail(toEmail, subject, reportHTML string) error
}
