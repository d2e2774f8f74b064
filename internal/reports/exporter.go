package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter defines the interface for exporting reports in different formats
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeEvents:
		return e.exportEventsByFormat(format, timestamp, data.Events)
	case ReportTypeUtilization:
		return e.exportUtilizationByFormat(format, timestamp, data.Utilization)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// EVENTS EXPORTS
//// ============================

func (e *reportExporter) exportEventsByFormat(format, timestamp string, rows []EventReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportEventsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("events_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportEventsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("events_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportEventsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("events_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for events: %s", format)
	}
}

func (e *reportExporter) exportEventsCSV(rows []EventReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Location", "Date", "Start Time", "End Time", "Participants", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Name,
			r.Location,
			r.Date.Format("2006-01-02"),
			r.StartTime,
			r.EndTime,
			strconv.Itoa(r.ParticipantCount),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportEventsExcel(rows []EventReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Events"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Name", "Location", "Date", "Start Time", "End Time", "Participants", "Created At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Location)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.StartTime)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.EndTime)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.ParticipantCount)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportEventsPDF(rows []EventReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Events Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{15, 70, 50, 30, 25, 25, 30, 40}
	headers := []string{"ID", "Name", "Location", "Date", "Start", "End", "Participants", "Created At"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		name := r.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}

		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.StartTime, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.EndTime, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, strconv.Itoa(r.ParticipantCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[7], 6, r.CreatedAt.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// LOCATION UTILIZATION EXPORTS
//// ============================

func (e *reportExporter) exportUtilizationByFormat(format, timestamp string, rows []LocationUtilizationRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportUtilizationExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("location_utilization_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportUtilizationCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("location_utilization_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportUtilizationPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("location_utilization_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for location utilization: %s", format)
	}
}

func (e *reportExporter) exportUtilizationCSV(rows []LocationUtilizationRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Location", "Events", "Booked Minutes"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			r.Location,
			strconv.Itoa(r.EventCount),
			strconv.Itoa(r.BookedMinutes),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportUtilizationExcel(rows []LocationUtilizationRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Location Utilization"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"Location", "Events", "Booked Minutes"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Location)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.EventCount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.BookedMinutes)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) exportUtilizationPDF(rows []LocationUtilizationRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Location Utilization Report")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{90, 40, 45}
	headers := []string{"Location", "Events", "Booked Minutes"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, r.Location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, strconv.Itoa(r.EventCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, strconv.Itoa(r.BookedMinutes), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
