package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
	"github.com/campus-pulse/wellbeing-api/pkg/export"
)

// ExportFormat selects the rendered document type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries the rendered bytes together with transport hints.
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders alert and trend data into downloadable documents.
type ExportService struct {
	alerts   alertReadRepository
	analysis AnalysisRepository
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(alerts alertReadRepository, analysis AnalysisRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		alerts:   alerts,
		analysis: analysis,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// Alerts renders the current alert set for the filter.
func (s *ExportService) Alerts(ctx context.Context, filter models.AlertFilter, format ExportFormat) (*ExportResult, error) {
	rows, err := s.alerts.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load alerts for export")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Student ID", "Module ID", "Week", "Reason", "Resolved", "Created At"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, alert := range rows {
		moduleID := "none"
		if alert.ModuleID != nil {
			moduleID = strconv.FormatInt(*alert.ModuleID, 10)
		}
		dataset.AddRow(
			strconv.FormatInt(alert.ID, 10),
			strconv.FormatInt(alert.StudentID, 10),
			moduleID,
			strconv.Itoa(alert.WeekNumber),
			alert.Reason,
			strconv.FormatBool(alert.Resolved),
			alert.CreatedAt.Format(time.RFC3339),
		)
	}
	return s.render(dataset, "High-Stress Alerts", "alerts", format)
}

// StressTrend renders one student's weekly stress curve.
func (s *ExportService) StressTrend(ctx context.Context, studentID int64, filter models.TrendFilter, format ExportFormat) (*ExportResult, error) {
	points, err := s.analysis.StressTrend(ctx, studentID, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load stress trend for export")
	}

	dataset := export.Dataset{
		Headers: []string{"Week", "Stress Level", "Recorded At"},
		Rows:    make([][]string, 0, len(points)),
	}
	for _, point := range points {
		recorded := ""
		if point.CreatedAt != nil {
			recorded = point.CreatedAt.Format(time.RFC3339)
		}
		dataset.AddRow(
			strconv.Itoa(point.WeekNumber),
			strconv.Itoa(point.StressLevel),
			recorded,
		)
	}
	title := fmt.Sprintf("Stress Trend - Student %d", studentID)
	name := fmt.Sprintf("stress-trend-%d", studentID)
	return s.render(dataset, title, name, format)
}

func (s *ExportService) render(dataset export.Dataset, title, baseName string, format ExportFormat) (*ExportResult, error) {
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			FileName:    baseName + ".csv",
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			FileName:    baseName + ".pdf",
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
