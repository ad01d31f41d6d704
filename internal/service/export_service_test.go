package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecraft-app/timecraft-api/internal/models"
	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
	"github.com/timecraft-app/timecraft-api/pkg/export"
)

func exportClasses() []models.ClassEntry {
	return []models.ClassEntry{
		{
			ID: "b", Subject: "MATH201", Instructor: "DR. JONES",
			Kind: models.KindLecture, RoomPrefix: models.RoomPrefixLecture, RoomNumber: "101",
			Day: "Tue", StartTime: "8:00 AM", EndTime: "9:00 AM",
			TimeSlots: []string{"8:00 AM"},
		},
		{
			ID: "a", Subject: "CS101", Instructor: "DR. SMITH",
			Kind: models.KindLecture, RoomPrefix: models.RoomPrefixLecture, RoomNumber: "204",
			Day: "Mon", StartTime: "9:00 AM", EndTime: "11:00 AM",
			TimeSlots: []string{"9:00 AM", "10:00 AM"},
		},
	}
}

func TestExportTimetableCSV(t *testing.T) {
	svc := NewExportService(&fakeClassRepo{classes: exportClasses()}, nil, nil, nil, "")

	result, err := svc.Timetable(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "timetable.csv", result.Filename)

	lines := strings.Split(strings.TrimSpace(string(result.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Day,Start,End,Subject,Type,Instructor,Room", lines[0])
	// Rows come out day-ordered: Monday before Tuesday.
	assert.Contains(t, lines[1], "CS101")
	assert.Contains(t, lines[1], "ITC 204")
	assert.Contains(t, lines[2], "MATH201")
}

func TestExportTimetablePDF(t *testing.T) {
	svc := NewExportService(&fakeClassRepo{classes: exportClasses()}, nil, nil, nil, "")

	result, err := svc.Timetable(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, "timetable.pdf", result.Filename)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

type capturingPDFRenderer struct {
	title string
}

func (r *capturingPDFRenderer) Render(_ export.Dataset, title string) ([]byte, error) {
	r.title = title
	return []byte("%PDF-1.4"), nil
}

func TestExportTimetablePDFTitle(t *testing.T) {
	pdf := &capturingPDFRenderer{}
	svc := NewExportService(&fakeClassRepo{classes: exportClasses()}, nil, nil, pdf, "Semester Grid")

	_, err := svc.Timetable(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "Semester Grid", pdf.title)

	pdf = &capturingPDFRenderer{}
	svc = NewExportService(&fakeClassRepo{classes: exportClasses()}, nil, nil, pdf, "")
	_, err = svc.Timetable(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, DefaultPDFTitle, pdf.title)
}

func TestExportTimetableRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&fakeClassRepo{}, nil, nil, nil, "")

	_, err := svc.Timetable(context.Background(), "xlsx")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
