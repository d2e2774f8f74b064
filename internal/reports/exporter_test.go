package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEventRows() []EventReportRow {
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	return []EventReportRow{
		{ID: 1, Name: "Workshop", Location: "Hall 1", Date: day, StartTime: "09:00", EndTime: "11:00", ParticipantCount: 3, CreatedAt: day},
		{ID: 2, Name: "Townhall", Location: "Hall 2", Date: day, StartTime: "13:00", EndTime: "14:00", ParticipantCount: 120, CreatedAt: day},
	}
}

func TestExportEventsCSV(t *testing.T) {
	exporter := NewReportExporter()

	data, filename, contentType, err := exporter.Export(ReportTypeEvents, FormatCSV, ReportData{Events: sampleEventRows()})
	require.NoError(t, err)
	assert.Contains(t, filename, "events_report_")
	assert.Equal(t, "text/csv", contentType)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows
	assert.Equal(t, []string{"ID", "Name", "Location", "Date", "Start Time", "End Time", "Participants", "Created At"}, records[0])
	assert.Equal(t, "Workshop", records[1][1])
	assert.Equal(t, "2026-09-15", records[1][3])
	assert.Equal(t, "120", records[2][6])
}

func TestExportUtilizationCSV(t *testing.T) {
	exporter := NewReportExporter()
	rows := []LocationUtilizationRow{
		{Location: "Hall 1", EventCount: 4, BookedMinutes: 480},
	}

	data, _, contentType, err := exporter.Export(ReportTypeUtilization, FormatCSV, ReportData{Utilization: rows})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Hall 1", "4", "480"}, records[1])
}

func TestExportRejectsUnknownTypeAndFormat(t *testing.T) {
	exporter := NewReportExporter()

	_, _, _, err := exporter.Export("bookings", FormatCSV, ReportData{})
	assert.Error(t, err)

	_, _, _, err = exporter.Export(ReportTypeEvents, "xml", ReportData{})
	assert.Error(t, err)
}

func TestExportEventsBinaryFormats(t *testing.T) {
	exporter := NewReportExporter()
	data := ReportData{Events: sampleEventRows()}

	xlsx, filename, contentType, err := exporter.Export(ReportTypeEvents, FormatExcel, data)
	require.NoError(t, err)
	assert.NotEmpty(t, xlsx)
	assert.Contains(t, filename, ".xlsx")
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)

	pdf, filename, contentType, err := exporter.Export(ReportTypeEvents, FormatPDF, data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Contains(t, filename, ".pdf")
	assert.Equal(t, "application/pdf", contentType)
}
