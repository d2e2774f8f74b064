package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	rows map[string]InAppNotification // keyed by MessageID
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{rows: map[string]InAppNotification{}}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *InAppNotification) error {
	if _, exists := f.rows[n.MessageID]; exists {
		return nil // ON CONFLICT DO NOTHING
	}
	n.ID = uint(len(f.rows) + 1)
	f.rows[n.MessageID] = *n
	return nil
}

func (f *fakeNotificationRepo) List(_ context.Context, limit int) ([]InAppNotification, error) {
	out := make([]InAppNotification, 0, len(f.rows))
	for _, n := range f.rows {
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id uint) error {
	for key, n := range f.rows {
		if n.ID == id {
			n.IsRead = true
			f.rows[key] = n
		}
	}
	return nil
}

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a readable notification", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewService(repo)

		err := svc.Record(ctx, ActivityMessage{
			MessageID: "m-1",
			Action:    "EVENT_CREATED",
			EventID:   7,
			Name:      "Workshop",
			Location:  "Hall 1",
			Date:      "2026-09-15",
			StartTime: "09:00",
			EndTime:   "11:00",
		})
		require.NoError(t, err)

		n, ok := repo.rows["m-1"]
		require.True(t, ok)
		assert.Equal(t, "Event scheduled", n.Title)
		assert.Equal(t, "EVENT_CREATED", n.Type)
		assert.Contains(t, n.Body, "Workshop")
		assert.Contains(t, n.Body, "Hall 1")
		assert.False(t, n.IsRead)
	})

	t.Run("redelivered message is stored once", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewService(repo)

		msg := ActivityMessage{MessageID: "m-2", Action: "EVENT_DELETED", Name: "Townhall"}
		require.NoError(t, svc.Record(ctx, msg))
		require.NoError(t, svc.Record(ctx, msg))
		assert.Len(t, repo.rows, 1)
	})

	t.Run("missing message id gets one assigned", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewService(repo)

		require.NoError(t, svc.Record(ctx, ActivityMessage{Action: "EVENT_UPDATED", Name: "Sync"}))
		require.Len(t, repo.rows, 1)
		for key := range repo.rows {
			assert.NotEmpty(t, key)
		}
	})
}

func TestTitleFor(t *testing.T) {
	assert.Equal(t, "Event scheduled", titleFor("EVENT_CREATED"))
	assert.Equal(t, "Event rescheduled", titleFor("EVENT_UPDATED"))
	assert.Equal(t, "Event cancelled", titleFor("EVENT_DELETED"))
	assert.Equal(t, "Participants added", titleFor("PARTICIPANTS_ADDED"))
	assert.Equal(t, "Participant removed", titleFor("PARTICIPANT_REMOVED"))
	assert.Equal(t, "Event activity", titleFor("SOMETHING_ELSE"))
}
