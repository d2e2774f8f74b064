package reports

import (
	"time"
)

const (
	ReportTypeEvents      = "events"
	ReportTypeUtilization = "location-utilization"

	// Report format constants
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// EventsReportRequest represents request parameters for the events report
type EventsReportRequest struct {
	Location  string    `json:"location"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Format    string    `json:"format"`
}

// ReportData holds the rows fetched for one report run
type ReportData struct {
	Events      []EventReportRow         `json:"events,omitempty"`
	Utilization []LocationUtilizationRow `json:"utilization,omitempty"`
}

// EventReportRow represents a single row in the events report
type EventReportRow struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Location         string    `json:"location"`
	Date             time.Time `json:"date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	ParticipantCount int       `json:"participant_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// LocationUtilizationRow aggregates booked time per location
type LocationUtilizationRow struct {
	Location      string `json:"location"`
	EventCount    int    `json:"event_count"`
	BookedMinutes int    `json:"booked_minutes"`
}
