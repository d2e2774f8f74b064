package reports

import (
	"context"
	"time"
)

type Service interface {
	EventsReport(ctx context.Context, req EventsReportRequest) (ReportData, error)
	UtilizationReport(ctx context.Context, start, end time.Time) (ReportData, error)
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type service struct {
	repo     Repository
	exporter ReportExporter
}

func NewService(repo Repository, exporter ReportExporter) Service {
	return &service{repo: repo, exporter: exporter}
}

func (s *service) EventsReport(ctx context.Context, req EventsReportRequest) (ReportData, error) {
	rows, err := s.repo.GetEventRows(ctx, req)
	if err != nil {
		return ReportData{}, err
	}
	return ReportData{Events: rows}, nil
}

func (s *service) UtilizationReport(ctx context.Context, start, end time.Time) (ReportData, error) {
	rows, err := s.repo.GetLocationUtilization(ctx, start, end)
	if err != nil {
		return ReportData{}, err
	}
	return ReportData{Utilization: rows}, nil
}

func (s *service) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	return s.exporter.Export(reportType, format, data)
}
