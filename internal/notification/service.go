package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/sharath018/event-management-backend/internal/event"
	"github.com/sharath018/event-management-backend/utils"
)

type Service interface {
	Record(ctx context.Context, msg ActivityMessage) error
	List(ctx context.Context, limit int) ([]InAppNotification, error)
	MarkRead(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Record turns a consumed activity message into an in-app notification row.
func (s *service) Record(ctx context.Context, msg ActivityMessage) error {
	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}

	n := &InAppNotification{
		MessageID: msg.MessageID,
		Title:     titleFor(msg.Action),
		Body: fmt.Sprintf("%s on %s %s-%s at %s",
			msg.Name, msg.Date, msg.StartTime, msg.EndTime, msg.Location),
		Type: msg.Action,
	}
	return s.repo.Create(ctx, n)
}

func (s *service) List(ctx context.Context, limit int) ([]InAppNotification, error) {
	return s.repo.List(ctx, limit)
}

func (s *service) MarkRead(ctx context.Context, id uint) error {
	return s.repo.MarkRead(ctx, id)
}

func titleFor(action string) string {
	switch action {
	case "EVENT_CREATED":
		return "Event scheduled"
	case "EVENT_UPDATED":
		return "Event rescheduled"
	case "EVENT_DELETED":
		return "Event cancelled"
	case "PARTICIPANTS_ADDED":
		return "Participants added"
	case "PARTICIPANT_REMOVED":
		return "Participant removed"
	default:
		return "Event activity"
	}
}

// ============================
// 🔷 Kafka-backed activity notifier
//
// Publishes every scheduler mutation to the activity topic and mails
// invitations to newly added participants. All paths are best effort so
// a broker or SMTP outage never fails a write that already committed.
type ActivityNotifier struct{}

func NewActivityNotifier() *ActivityNotifier {
	return &ActivityNotifier{}
}

func (n *ActivityNotifier) EventActivity(ctx context.Context, action string, e *event.Event) {
	msg := ActivityMessage{
		MessageID: uuid.NewString(),
		Action:    action,
		EventID:   e.ID,
		Name:      e.Name,
		Location:  e.Location,
		Date:      e.Date.Format("2006-01-02"),
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("⚠️ Failed to marshal activity message: %v", err)
		return
	}
	utils.PublishMessage(ctx, fmt.Sprintf("event-%d", e.ID), payload)
}

func (n *ActivityNotifier) ParticipantsInvited(ctx context.Context, e *event.Event, emails []string) {
	date := e.Date.Format("2006-01-02")
	for _, email := range emails {
		go func(to string) {
			if err := utils.SendParticipantInvite(to, e.Name, date, e.StartTime, e.Location); err != nil {
				log.Printf("⚠️ Invite email to %s failed: %v", to, err)
			}
		}(email)
	}
}
