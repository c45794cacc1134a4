package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/studyplan-dev/study-planner-api/internal/models"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
	"github.com/studyplan-dev/study-planner-api/pkg/export"
)

// ExportFormat selects the rendering backend for plan exports.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult is a rendered plan document.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService flattens the merged plan into a tabular dataset and renders
// it as CSV or PDF.
type ExportService struct {
	planner mergedPlanSource
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	enabled bool
	logger  *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(planner mergedPlanSource, enabled bool, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		planner: planner,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		enabled: enabled,
		logger:  logger,
	}
}

// Export renders the user's merged plan in the requested format.
func (s *ExportService) Export(ctx context.Context, userID, token string, format ExportFormat) (*ExportResult, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "exports are disabled")
	}

	semesters, err := s.planner.MergedPlan(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	dataset := planDataset(semesters)

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "study-plan.csv"}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset, "Study Plan")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "study-plan.pdf"}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
}

func planDataset(semesters []models.Semester) export.Dataset {
	headers := []string{"Semester", "Category", "Module", "Title", "Credits", "Status", "Grade"}
	rows := make([]map[string]string, 0)
	for i := range semesters {
		semester := &semesters[i]
		for _, category := range models.Categories() {
			for _, entry := range semester.Modules.ForCategory(category) {
				row := map[string]string{
					"Semester": semester.Title,
					"Category": string(category),
					"Module":   entry.Module.Identifier,
					"Title":    entry.Module.Title,
					"Credits":  strconv.Itoa(entry.Module.Credits),
					"Status":   entryStatus(entry),
					"Grade":    entryGrade(entry),
				}
				rows = append(rows, row)
			}
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func entryStatus(entry models.SemesterModule) string {
	if entry.Kind != models.ModulePast || entry.Past == nil {
		return "planned"
	}
	assessment := entry.Past.Assessment
	if !assessment.Published {
		return "pending"
	}
	if assessment.Passed {
		return "passed"
	}
	return "failed"
}

func entryGrade(entry models.SemesterModule) string {
	if entry.Kind != models.ModulePast || entry.Past == nil || entry.Past.Assessment.Grade == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *entry.Past.Assessment.Grade)
}
