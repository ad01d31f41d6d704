package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/timecraft-app/timecraft-api/internal/models"
	"github.com/timecraft-app/timecraft-api/internal/timegrid"
	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
	"github.com/timecraft-app/timecraft-api/pkg/export"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportResult carries rendered bytes plus response metadata.
type ExportResult struct {
	ContentType string
	Filename    string
	Data        []byte
}

// DefaultPDFTitle is used when no title is configured.
const DefaultPDFTitle = "Class Timetable"

// ExportService renders the weekly timetable as a downloadable file.
type ExportService struct {
	classes  classLister
	csv      csvRenderer
	pdf      pdfRenderer
	pdfTitle string
	logger   *zap.Logger
}

// NewExportService constructs an ExportService. pdfTitle headlines the PDF
// rendition; empty falls back to DefaultPDFTitle.
func NewExportService(classes classLister, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer, pdfTitle string) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if pdfTitle == "" {
		pdfTitle = DefaultPDFTitle
	}
	return &ExportService{classes: classes, csv: csv, pdf: pdf, pdfTitle: pdfTitle, logger: logger}
}

var timetableHeaders = []string{"Day", "Start", "End", "Subject", "Type", "Instructor", "Room"}

// Timetable renders the full grid ordered by day then start slot.
func (s *ExportService) Timetable(ctx context.Context, format string) (*ExportResult, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	classes, err := s.classes.List(ctx, models.ClassFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classes")
	}

	dataset, err := timetableDataset(classes)
	if err != nil {
		return nil, err
	}

	if format == ExportFormatCSV {
		data, err := s.csv.Render(*dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{ContentType: "text/csv", Filename: "timetable.csv", Data: data}, nil
	}

	data, err := s.pdf.Render(*dataset, s.pdfTitle)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return &ExportResult{ContentType: "application/pdf", Filename: "timetable.pdf", Data: data}, nil
}

func timetableDataset(classes []models.ClassEntry) (*export.Dataset, error) {
	type keyedRow struct {
		day   int
		start int
		row   map[string]string
	}
	keyed := make([]keyedRow, 0, len(classes))

	for _, c := range classes {
		day, err := timegrid.ParseClassDay(c.Day)
		if err != nil {
			return nil, err
		}
		start, err := timegrid.SlotIndex(c.StartTime)
		if err != nil {
			return nil, err
		}
		keyed = append(keyed, keyedRow{
			day:   int(day),
			start: start,
			row: map[string]string{
				"Day":        c.Day,
				"Start":      c.StartTime,
				"End":        c.EndTime,
				"Subject":    c.Subject,
				"Type":       c.Kind,
				"Instructor": c.Instructor,
				"Room":       fmt.Sprintf("%s %s", c.RoomPrefix, c.RoomNumber),
			},
		})
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		if keyed[i].day != keyed[j].day {
			return keyed[i].day < keyed[j].day
		}
		return keyed[i].start < keyed[j].start
	})

	rows := make([]map[string]string, 0, len(keyed))
	for _, k := range keyed {
		rows = append(rows, k.row)
	}
	return &export.Dataset{Headers: timetableHeaders, Rows: rows}, nil
}
