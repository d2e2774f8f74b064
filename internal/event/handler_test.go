package event

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/event-management-backend/internal/apierror"
)

// stubService returns canned results so handler tests exercise only the
// HTTP mapping.
type stubService struct {
	event *Event
	err   error
}

func (s *stubService) Create(context.Context, *CreateEventRequest, *uint, string) (*Event, error) {
	return s.event, s.err
}
func (s *stubService) Update(context.Context, uint, *UpdateEventRequest, *uint, string) (*Event, error) {
	return s.event, s.err
}
func (s *stubService) Delete(context.Context, uint, *uint, string) error { return s.err }
func (s *stubService) GetByID(context.Context, uint) (*Event, error)     { return s.event, s.err }
func (s *stubService) List(context.Context, ListQuery) ([]Event, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return []Event{}, 0, nil
}
func (s *stubService) AddParticipants(context.Context, uint, []string, *uint, string) ([]Participant, error) {
	return nil, s.err
}
func (s *stubService) RemoveParticipant(context.Context, uint, uint, *uint, string) error {
	return s.err
}

func newTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/events", h.CreateEvent)
	r.GET("/events", h.ListEvents)
	r.GET("/events/:eventId", h.GetEvent)
	r.PUT("/events/:eventId", h.UpdateEvent)
	r.DELETE("/events/:eventId", h.DeleteEvent)
	r.POST("/events/:eventId/participants", h.AddParticipants)
	r.DELETE("/events/:eventId/participants/:participantId", h.RemoveParticipant)
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBuildListQuery(t *testing.T) {
	t.Run("accepts known options and filters", func(t *testing.T) {
		values := url.Values{}
		values.Set("searchTerm", "hall")
		values.Set("page", "2")
		values.Set("limit", "5")
		values.Set("sortBy", "date")
		values.Set("sortOrder", "asc")
		values.Set("location", "Hall 1")

		q, err := buildListQuery(values)
		require.NoError(t, err)
		assert.Equal(t, "hall", q.SearchTerm)
		assert.Equal(t, 2, q.Page)
		assert.Equal(t, 5, q.Limit)
		assert.Equal(t, "date", q.SortBy)
		assert.Equal(t, "Hall 1", q.Filters["location"])
	})

	t.Run("rejects unknown filter key", func(t *testing.T) {
		values := url.Values{}
		values.Set("organizer", "alice")

		_, err := buildListQuery(values)
		assert.True(t, apierror.IsKind(err, apierror.KindInput))
	})

	t.Run("rejects unknown sortBy field", func(t *testing.T) {
		values := url.Values{}
		values.Set("sortBy", "is_deleted")

		_, err := buildListQuery(values)
		assert.True(t, apierror.IsKind(err, apierror.KindInput))
	})

	t.Run("defaults page and limit", func(t *testing.T) {
		q, err := buildListQuery(url.Values{})
		require.NoError(t, err)
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, 10, q.Limit)
	})
}

func TestHandlerStatusMapping(t *testing.T) {
	validBody := `{"name":"Standup","date":"2026-09-15","startTime":"09:00","endTime":"09:30","location":"Hall 1","description":"daily"}`

	t.Run("create maps format error to 406", func(t *testing.T) {
		r := newTestRouter(&stubService{err: apierror.NewFormat("Invalid date format. Please use YYYY-MM-DD.")})
		w := perform(r, http.MethodPost, "/events", validBody)
		assert.Equal(t, http.StatusNotAcceptable, w.Code)
	})

	t.Run("create maps conflict to 409", func(t *testing.T) {
		r := newTestRouter(&stubService{err: apierror.NewConflict("Time conflict with event 1 (Workshop) at the same location.")})
		w := perform(r, http.MethodPost, "/events", validBody)
		assert.Equal(t, http.StatusConflict, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["message"], "conflict")
	})

	t.Run("create success returns 201", func(t *testing.T) {
		r := newTestRouter(&stubService{event: &Event{ID: 7, Name: "Standup"}})
		w := perform(r, http.MethodPost, "/events", validBody)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing body field is 400", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := perform(r, http.MethodPost, "/events", `{"name":"Standup"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get maps not found to 404", func(t *testing.T) {
		r := newTestRouter(&stubService{err: apierror.NewNotFound("Event not found.")})
		w := perform(r, http.MethodGet, "/events/99", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non numeric id is 400, not 404", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := perform(r, http.MethodGet, "/events/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown list filter is 400", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := perform(r, http.MethodGet, "/events?organizer=alice", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("add participants rejects malformed email", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := perform(r, http.MethodPost, "/events/1/participants", `{"participants":["not-an-email"]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("remove participant success", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := perform(r, http.MethodDelete, "/events/1/participants/2", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
