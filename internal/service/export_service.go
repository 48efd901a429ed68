package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-analytics-api/internal/dto"
	"github.com/noah-isme/sma-analytics-api/internal/models"
	appErrors "github.com/noah-isme/sma-analytics-api/pkg/errors"
	"github.com/noah-isme/sma-analytics-api/pkg/export"
)

// Supported export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type schoolReporter interface {
	SchoolPerformance(ctx context.Context, scope models.SchoolScope) (*dto.SchoolPerformance, error)
}

type csvRenderer interface {
	Render(report export.Report) ([]byte, error)
}

type pdfRenderer interface {
	Render(report export.Report) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	PDFTitle string
}

// ExportResult is a rendered report ready to be streamed.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the school performance report as a downloadable file.
type ExportService struct {
	reports schoolReporter
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(reports schoolReporter, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PDFTitle == "" {
		cfg.PDFTitle = "School Performance"
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{reports: reports, csv: csv, pdf: pdf, logger: logger, cfg: cfg}
}

// SchoolPerformance computes the school report and renders it in the requested format.
func (s *ExportService) SchoolPerformance(ctx context.Context, scope models.SchoolScope, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFmt, fmt.Sprintf("format %q is not supported", format))
	}

	performance, err := s.reports.SchoolPerformance(ctx, scope)
	if err != nil {
		return nil, err
	}
	report := buildSchoolReport(performance, s.cfg.PDFTitle)

	var (
		payload     []byte
		contentType string
	)
	switch format {
	case ExportFormatPDF:
		payload, err = s.pdf.Render(report)
		contentType = "application/pdf"
	default:
		payload, err = s.csv.Render(report)
		contentType = "text/csv"
	}
	if err != nil {
		s.logger.Error("render school performance export", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Filename:    exportFilename(performance, format),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

func buildSchoolReport(p *dto.SchoolPerformance, title string) export.Report {
	attendance := export.Dataset{Name: "Attendance", Headers: []string{"month", "avgAttendancePct"}}
	for _, m := range p.AttendanceMonthly {
		attendance.Rows = append(attendance.Rows, map[string]string{
			"month":            monthLabel(m.Year, m.Month),
			"avgAttendancePct": formatFloat(m.AvgAttendancePct),
		})
	}

	grades := export.Dataset{Name: "Grades", Headers: []string{"examType", "averageMarks", "count"}}
	for _, g := range p.GradeStats {
		grades.Rows = append(grades.Rows, map[string]string{
			"examType":     g.ExamType,
			"averageMarks": formatFloat(g.AverageMarks),
			"count":        strconv.Itoa(g.Count),
		})
	}

	fees := export.Dataset{Name: "Fee Collections", Headers: []string{"month", "totalCollected"}}
	for _, f := range p.FeeCollections {
		fees.Rows = append(fees.Rows, map[string]string{
			"month":          monthLabel(f.Year, f.Month),
			"totalCollected": strconv.FormatFloat(f.TotalCollected, 'f', 2, 64),
		})
	}

	return export.Report{Title: title, Sections: []export.Dataset{attendance, grades, fees}}
}

func exportFilename(p *dto.SchoolPerformance, format string) string {
	name := "school-performance-" + p.SchoolID
	if p.Year != nil {
		name = fmt.Sprintf("%s-%d", name, *p.Year)
	}
	return name + "." + format
}

func monthLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
