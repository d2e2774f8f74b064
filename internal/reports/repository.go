package reports

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	GetEventRows(ctx context.Context, req EventsReportRequest) ([]EventReportRow, error)
	GetLocationUtilization(ctx context.Context, start, end time.Time) ([]LocationUtilizationRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEventRows(ctx context.Context, req EventsReportRequest) ([]EventReportRow, error) {
	var rows []EventReportRow

	q := r.db.WithContext(ctx).
		Table("events").
		Select(`events.id, events.name, events.location, events.date,
			events.start_time, events.end_time, events.created_at,
			COUNT(participants.id) FILTER (WHERE participants.is_deleted = false) AS participant_count`).
		Joins("LEFT JOIN participants ON participants.event_id = events.id").
		Where("events.is_deleted = ?", false).
		Group("events.id").
		Order("events.date ASC, events.start_minute ASC")

	if req.Location != "" {
		q = q.Where("events.location = ?", req.Location)
	}
	if !req.StartDate.IsZero() {
		q = q.Where("events.date >= ?", req.StartDate)
	}
	if !req.EndDate.IsZero() {
		q = q.Where("events.date <= ?", req.EndDate)
	}

	err := q.Scan(&rows).Error
	return rows, err
}

func (r *repository) GetLocationUtilization(ctx context.Context, start, end time.Time) ([]LocationUtilizationRow, error) {
	var rows []LocationUtilizationRow

	q := r.db.WithContext(ctx).
		Table("events").
		Select(`location, COUNT(*) AS event_count,
			COALESCE(SUM(end_minute - start_minute), 0) AS booked_minutes`).
		Where("is_deleted = ?", false).
		Group("location").
		Order("booked_minutes DESC")

	if !start.IsZero() {
		q = q.Where("date >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("date <= ?", end)
	}

	err := q.Scan(&rows).Error
	return rows, err
}
