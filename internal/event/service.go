package event

import (
	"context"
	"fmt"

	"github.com/sharath018/event-management-backend/internal/apierror"
	"github.com/sharath018/event-management-backend/internal/auditlog"
)

// Notifier receives best-effort activity fan-out. Implementations must never
// block a scheduler write; failures are theirs to log.
type Notifier interface {
	EventActivity(ctx context.Context, action string, e *Event)
	ParticipantsInvited(ctx context.Context, e *Event, emails []string)
}

// Service is the scheduler: it decides whether a proposed event may be
// admitted without breaking the no-overlap invariant, and keeps the
// participant roster consistent with the event row.
type Service interface {
	Create(ctx context.Context, req *CreateEventRequest, actorID *uint, ip string) (*Event, error)
	Update(ctx context.Context, id uint, req *UpdateEventRequest, actorID *uint, ip string) (*Event, error)
	Delete(ctx context.Context, id uint, actorID *uint, ip string) error
	GetByID(ctx context.Context, id uint) (*Event, error)
	List(ctx context.Context, q ListQuery) ([]Event, int64, error)
	AddParticipants(ctx context.Context, eventID uint, emails []string, actorID *uint, ip string) ([]Participant, error)
	RemoveParticipant(ctx context.Context, eventID, participantID uint, actorID *uint, ip string) error
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
	notifier Notifier
	policy   ParticipantPolicy
}

func NewService(repo Repository, auditSvc auditlog.Service, notifier Notifier, policy ParticipantPolicy) Service {
	return &service{
		repo:     repo,
		auditSvc: auditSvc,
		notifier: notifier,
		policy:   policy,
	}
}

// ===========================
// 🎯 Create Event
//
// validate → conflict scan (no exclusion) → atomic insert of the event row
// plus participant upserts. The storage exclusion constraint backs the scan,
// so a racing create surfaces as the same ConflictError.
func (s *service) Create(ctx context.Context, req *CreateEventRequest, actorID *uint, ip string) (*Event, error) {
	day, startMin, endMin, err := validateInterval(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		s.audit(ctx, actorID, "EVENT_CREATED", map[string]interface{}{
			"name": req.Name, "error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	conflict, err := s.repo.FindConflict(ctx, req.Location, day, startMin, endMin, 0)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		s.audit(ctx, actorID, "EVENT_CREATED", map[string]interface{}{
			"name": req.Name, "location": req.Location, "date": req.Date,
			"conflicting_event_id": conflict.ID,
		}, ip, "failure")
		return nil, conflictError(conflict)
	}

	e := &Event{
		Name:        req.Name,
		Date:        day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		StartMinute: startMin,
		EndMinute:   endMin,
		Location:    req.Location,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, e, req.Participants, s.policy); err != nil {
		s.audit(ctx, actorID, "EVENT_CREATED", map[string]interface{}{
			"name": req.Name, "location": req.Location, "error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(ctx, actorID, "EVENT_CREATED", map[string]interface{}{
		"event_id": e.ID, "name": e.Name, "location": e.Location,
		"date": req.Date, "start_time": e.StartTime, "end_time": e.EndTime,
	}, ip, "success")

	if s.notifier != nil {
		s.notifier.EventActivity(ctx, "EVENT_CREATED", e)
		if len(e.Participants) > 0 {
			s.notifier.ParticipantsInvited(ctx, e, participantEmails(e.Participants))
		}
	}

	return e, nil
}

// ===========================
// 🛠 Update Event
//
// Same pipeline as Create, with the event's own row excluded from the scan
// so an unchanged interval never conflicts with itself.
func (s *service) Update(ctx context.Context, id uint, req *UpdateEventRequest, actorID *uint, ip string) (*Event, error) {
	day, startMin, endMin, err := validateInterval(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		s.audit(ctx, actorID, "EVENT_UPDATED", map[string]interface{}{
			"event_id": id, "error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	conflict, err := s.repo.FindConflict(ctx, req.Location, day, startMin, endMin, id)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		s.audit(ctx, actorID, "EVENT_UPDATED", map[string]interface{}{
			"event_id": id, "conflicting_event_id": conflict.ID,
		}, ip, "failure")
		return nil, conflictError(conflict)
	}

	e := &Event{
		ID:          id,
		Name:        req.Name,
		Date:        day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		StartMinute: startMin,
		EndMinute:   endMin,
		Location:    req.Location,
		Description: req.Description,
	}

	if err := s.repo.Update(ctx, e, req.Participants, s.policy); err != nil {
		s.audit(ctx, actorID, "EVENT_UPDATED", map[string]interface{}{
			"event_id": id, "error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(ctx, actorID, "EVENT_UPDATED", map[string]interface{}{
		"event_id": id, "name": e.Name, "location": e.Location,
		"date": req.Date, "start_time": e.StartTime, "end_time": e.EndTime,
	}, ip, "success")

	if s.notifier != nil {
		s.notifier.EventActivity(ctx, "EVENT_UPDATED", e)
	}

	return e, nil
}

// ===========================
// ❌ Delete Event (soft)
func (s *service) Delete(ctx context.Context, id uint, actorID *uint, ip string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		s.audit(ctx, actorID, "EVENT_DELETED", map[string]interface{}{
			"event_id": id, "error": err.Error(),
		}, ip, "failure")
		return err
	}

	s.audit(ctx, actorID, "EVENT_DELETED", map[string]interface{}{
		"event_id": id,
	}, ip, "success")

	if s.notifier != nil {
		s.notifier.EventActivity(ctx, "EVENT_DELETED", &Event{ID: id})
	}

	return nil
}

// ===========================
// 🔍 Get Event By ID
func (s *service) GetByID(ctx context.Context, id uint) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

// ===========================
// 📄 List Events
func (s *service) List(ctx context.Context, q ListQuery) ([]Event, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	return s.repo.List(ctx, q)
}

// ===========================
// 🟢 Add Participants
func (s *service) AddParticipants(ctx context.Context, eventID uint, emails []string, actorID *uint, ip string) ([]Participant, error) {
	added, err := s.repo.AddParticipants(ctx, eventID, emails, s.policy)
	if err != nil {
		s.audit(ctx, actorID, "PARTICIPANTS_ADDED", map[string]interface{}{
			"event_id": eventID, "error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(ctx, actorID, "PARTICIPANTS_ADDED", map[string]interface{}{
		"event_id": eventID, "added": len(added),
	}, ip, "success")

	if s.notifier != nil && len(added) > 0 {
		e, err := s.repo.GetByID(ctx, eventID)
		if err == nil {
			s.notifier.ParticipantsInvited(ctx, e, participantEmails(added))
		}
	}

	return added, nil
}

// ===========================
// ❌ Remove Participant (soft)
func (s *service) RemoveParticipant(ctx context.Context, eventID, participantID uint, actorID *uint, ip string) error {
	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		return err
	}

	p, err := s.repo.FindParticipant(ctx, eventID, participantID)
	if err != nil {
		s.audit(ctx, actorID, "PARTICIPANT_REMOVED", map[string]interface{}{
			"event_id": eventID, "participant_id": participantID, "error": err.Error(),
		}, ip, "failure")
		return err
	}

	if err := s.repo.SoftDeleteParticipant(ctx, p.ID); err != nil {
		return err
	}

	s.audit(ctx, actorID, "PARTICIPANT_REMOVED", map[string]interface{}{
		"event_id": eventID, "participant_id": participantID, "email": p.Email,
	}, ip, "success")

	return nil
}

func (s *service) audit(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.auditSvc == nil {
		return
	}
	_ = s.auditSvc.LogAction(ctx, userID, action, details, ip, status)
}

func conflictError(conflict *Event) error {
	return apierror.NewConflict(fmt.Sprintf(
		"Time conflict with event %d (%s) at the same location.", conflict.ID, conflict.Name,
	))
}

func participantEmails(ps []Participant) []string {
	emails := make([]string, 0, len(ps))
	for _, p := range ps {
		emails = append(emails, p.Email)
	}
	return emails
}
