package event

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sharath018/event-management-backend/internal/apierror"
)

// Repository is the transactional storage contract the scheduler runs on.
// Every write that touches an event together with its participant roster is
// atomic: both commit or neither does.
type Repository interface {
	FindConflict(ctx context.Context, location string, date time.Time, startMin, endMin int, excludeID uint) (*Event, error)
	Create(ctx context.Context, e *Event, emails []string, policy ParticipantPolicy) error
	Update(ctx context.Context, e *Event, emails []string, policy ParticipantPolicy) error
	GetByID(ctx context.Context, id uint) (*Event, error)
	List(ctx context.Context, q ListQuery) ([]Event, int64, error)
	SoftDelete(ctx context.Context, id uint) error

	AddParticipants(ctx context.Context, eventID uint, emails []string, policy ParticipantPolicy) ([]Participant, error)
	FindParticipant(ctx context.Context, eventID, participantID uint) (*Participant, error)
	SoftDeleteParticipant(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// notDeleted is the single place the soft-delete filter lives. Every read
// path goes through it so deleted rows cannot leak back in as the queries
// evolve.
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// ===========================
// 🔍 Conflict Scan
//
// Scoped by (location, date): identical wall-clock intervals on different
// dates cannot overlap. excludeID keeps an event from conflicting with its
// own current row during updates. Ordering makes the reported conflict
// deterministic, though the contract only requires naming some conflict.
func (r *repository) FindConflict(ctx context.Context, location string, date time.Time, startMin, endMin int, excludeID uint) (*Event, error) {
	query := r.db.WithContext(ctx).
		Scopes(notDeleted).
		Where("location = ? AND date = ?", location, date).
		Where("start_minute < ? AND end_minute > ?", endMin, startMin)

	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var conflict Event
	err := query.Order("start_minute ASC, id ASC").First(&conflict).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apierror.NewInternal(err)
	}
	return &conflict, nil
}

// ===========================
// 🎯 Create Event + Participants (atomic)
func (r *repository) Create(ctx context.Context, e *Event, emails []string, policy ParticipantPolicy) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		added, err := upsertParticipants(tx, e.ID, emails, policy)
		if err != nil {
			return err
		}
		e.Participants = added
		return nil
	})
	return translateWriteError(err)
}

// ===========================
// 🛠 Update Event + Participants (atomic)
func (r *repository) Update(ctx context.Context, e *Event, emails []string, policy ParticipantPolicy) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Event{}).
			Scopes(notDeleted).
			Where("id = ?", e.ID).
			Updates(map[string]interface{}{
				"name":         e.Name,
				"date":         e.Date,
				"start_time":   e.StartTime,
				"end_time":     e.EndTime,
				"start_minute": e.StartMinute,
				"end_minute":   e.EndMinute,
				"location":     e.Location,
				"description":  e.Description,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apierror.NewNotFound("Event not found.")
		}
		added, err := upsertParticipants(tx, e.ID, emails, policy)
		if err != nil {
			return err
		}
		e.Participants = added
		return nil
	})
	return translateWriteError(err)
}

// ===========================
// 🔍 Get Event By ID (live participants only)
func (r *repository) GetByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).
		Scopes(notDeleted).
		Preload("Participants", "is_deleted = ?", false).
		First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NewNotFound("Event not found.")
	}
	if err != nil {
		return nil, apierror.NewInternal(err)
	}
	return &e, nil
}

// ===========================
// 📄 List Events With Search, Filters & Pagination
func (r *repository) List(ctx context.Context, q ListQuery) ([]Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&Event{}).Scopes(notDeleted)

	if q.SearchTerm != "" {
		ilike := "%" + q.SearchTerm + "%"
		clauses := make([]string, 0, len(eventSearchableFields))
		args := make([]interface{}, 0, len(eventSearchableFields))
		for _, field := range eventSearchableFields {
			clauses = append(clauses, field+" ILIKE ?")
			args = append(args, ilike)
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	for key, value := range q.Filters {
		// keys were allow-listed upstream; the column name is trusted here
		query = query.Where(key+" = ?", value)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apierror.NewInternal(err)
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := strings.ToUpper(q.SortOrder)
	if sortOrder != "ASC" {
		sortOrder = "DESC"
	}

	offset := (q.Page - 1) * q.Limit

	var events []Event
	err := query.
		Preload("Participants", "is_deleted = ?", false).
		Order(sortBy + " " + sortOrder).
		Limit(q.Limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, 0, apierror.NewInternal(err)
	}

	return events, total, nil
}

// ===========================
// ❌ Soft Delete Event
//
// Flips is_deleted; the row stays but disappears from conflict scans and
// listings through the notDeleted scope.
func (r *repository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&Event{}).
		Scopes(notDeleted).
		Where("id = ?", id).
		Update("is_deleted", true)
	if res.Error != nil {
		return apierror.NewInternal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apierror.NewNotFound("Event not found.")
	}
	return nil
}

// ===========================
// 🟢 Add Participants (atomic)
func (r *repository) AddParticipants(ctx context.Context, eventID uint, emails []string, policy ParticipantPolicy) ([]Participant, error) {
	var added []Participant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e Event
		if err := tx.Scopes(notDeleted).First(&e, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NewNotFound("Event not found.")
			}
			return err
		}
		var err error
		added, err = upsertParticipants(tx, eventID, emails, policy)
		return err
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	return added, nil
}

// ===========================
// 🔍 Find Participant (must belong to the event, not removed)
func (r *repository) FindParticipant(ctx context.Context, eventID, participantID uint) (*Participant, error) {
	var p Participant
	err := r.db.WithContext(ctx).
		Scopes(notDeleted).
		Where("id = ? AND event_id = ?", participantID, eventID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NewNotFound("Participant not found.")
	}
	if err != nil {
		return nil, apierror.NewInternal(err)
	}
	return &p, nil
}

// ===========================
// ❌ Soft Delete Participant
func (r *repository) SoftDeleteParticipant(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&Participant{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
	if err != nil {
		return apierror.NewInternal(err)
	}
	return nil
}

// upsertParticipants links emails to an event inside the caller's
// transaction. Emails without an existing row get a fresh Participant; an
// email previously removed from this same event is restored; emails held by
// another event are handled per policy. Returns only the rows actually
// created, restored or re-linked. The unique index on email is the backstop
// for two transactions racing on the same address.
func upsertParticipants(tx *gorm.DB, eventID uint, emails []string, policy ParticipantPolicy) ([]Participant, error) {
	added := make([]Participant, 0, len(emails))
	seen := make(map[string]bool, len(emails))

	for _, email := range emails {
		if seen[email] {
			continue
		}
		seen[email] = true

		var existing Participant
		err := tx.Where("email = ?", email).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			p := Participant{Email: email, EventID: eventID}
			if err := tx.Create(&p).Error; err != nil {
				return nil, err
			}
			added = append(added, p)

		case err != nil:
			return nil, err

		case existing.EventID == eventID && !existing.IsDeleted:
			// already on this event's roster

		case existing.EventID == eventID:
			// previously removed from this same event: restore, no policy involved
			existing.IsDeleted = false
			if err := tx.Save(&existing).Error; err != nil {
				return nil, err
			}
			added = append(added, existing)

		default:
			switch policy {
			case PolicyRelink:
				existing.EventID = eventID
				existing.IsDeleted = false
				if err := tx.Save(&existing).Error; err != nil {
					return nil, err
				}
				added = append(added, existing)
			case PolicyError:
				return nil, apierror.NewConflict("Participant " + email + " is already registered to another event.")
			default: // PolicySkip
			}
		}
	}

	return added, nil
}

// translateWriteError maps storage-level constraint trips onto the API error
// model. The events_no_overlap exclusion constraint is the safety net behind
// the application-level conflict check, so its violation reads as the same
// conflict the fast path reports.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return err
	}
	msg := err.Error()
	if strings.Contains(msg, "events_no_overlap") {
		return apierror.NewConflict("Time conflict with another event at the same location.")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(msg, "duplicate key") {
		return apierror.NewConflict("Participant email already registered.")
	}
	return apierror.NewInternal(err)
}
