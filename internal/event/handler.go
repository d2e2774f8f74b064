package event

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/event-management-backend/internal/apierror"
	"github.com/sharath018/event-management-backend/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// queryOptions are the pagination/sort keys accepted alongside filters.
var queryOptions = map[string]bool{
	"searchTerm": true,
	"page":       true,
	"limit":      true,
	"sortBy":     true,
	"sortOrder":  true,
}

// buildListQuery maps raw query params onto a ListQuery. Filter keys are
// allow-listed; anything unrecognized is a client-input error rather than a
// pass-through into the query builder.
func buildListQuery(values url.Values) (ListQuery, error) {
	q := ListQuery{Filters: map[string]string{}}

	for key := range values {
		switch {
		case queryOptions[key]:
		case eventFilterableFields[key]:
			q.Filters[key] = values.Get(key)
		default:
			return ListQuery{}, apierror.NewInput("Unknown query parameter: " + key)
		}
	}

	q.SearchTerm = values.Get("searchTerm")
	q.Page, _ = strconv.Atoi(values.Get("page"))
	q.Limit, _ = strconv.Atoi(values.Get("limit"))
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}

	if sortBy := values.Get("sortBy"); sortBy != "" {
		if !eventSortableFields[sortBy] {
			return ListQuery{}, apierror.NewInput("Unknown sortBy field: " + sortBy)
		}
		q.SortBy = sortBy
	}
	q.SortOrder = values.Get("sortOrder")

	return q, nil
}

// parseID parses a path identifier; a non-numeric id is a client-input
// error, not a NotFoundError.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		fail(c, apierror.NewInput("Invalid "+name+"."))
		return 0, false
	}
	return uint(id), true
}

func fail(c *gin.Context, err error) {
	apiErr := apierror.From(err)
	c.JSON(apiErr.Status, gin.H{"success": false, "message": apiErr.Message})
}

func actorID(c *gin.Context) *uint {
	if id, exists := c.Get("user_id"); exists {
		if uid, ok := id.(uint); ok {
			return &uid
		}
	}
	return nil
}

// ===========================
// 🎯 Create Event - POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierror.NewInput("Invalid input: "+err.Error()))
		return
	}

	ip := middleware.GetIPFromContext(c)
	e, err := h.Service.Create(c.Request.Context(), &req, actorID(c), ip)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Event created successfully!",
		"data":    e,
	})
}

// ===========================
// 📄 List Events - GET /events
func (h *Handler) ListEvents(c *gin.Context) {
	q, err := buildListQuery(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}

	events, total, err := h.Service.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Events retrieved successfully!",
		"meta":    ListMeta{Page: q.Page, Limit: q.Limit, Total: total},
		"data":    events,
	})
}

// ===========================
// 🔍 Get Event - GET /events/:eventId
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := parseID(c, "eventId")
	if !ok {
		return
	}

	e, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event retrieved successfully!",
		"data":    e,
	})
}

// ===========================
// 🛠 Update Event - PUT /events/:eventId
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c, "eventId")
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierror.NewInput("Invalid input: "+err.Error()))
		return
	}

	ip := middleware.GetIPFromContext(c)
	e, err := h.Service.Update(c.Request.Context(), id, &req, actorID(c), ip)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event updated successfully!",
		"data":    e,
	})
}

// ===========================
// ❌ Delete Event - DELETE /events/:eventId
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c, "eventId")
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.Delete(c.Request.Context(), id, actorID(c), ip); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event deleted successfully!",
	})
}

// ===========================
// 🟢 Add Participants - POST /events/:eventId/participants
func (h *Handler) AddParticipants(c *gin.Context) {
	id, ok := parseID(c, "eventId")
	if !ok {
		return
	}

	var req AddParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierror.NewInput("Each participant must have a valid email address."))
		return
	}

	ip := middleware.GetIPFromContext(c)
	added, err := h.Service.AddParticipants(c.Request.Context(), id, req.Participants, actorID(c), ip)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Participants added successfully!",
		"data":    added,
	})
}

// ===========================
// ❌ Remove Participant - DELETE /events/:eventId/participants/:participantId
func (h *Handler) RemoveParticipant(c *gin.Context) {
	eventID, ok := parseID(c, "eventId")
	if !ok {
		return
	}
	participantID, ok := parseID(c, "participantId")
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.RemoveParticipant(c.Request.Context(), eventID, participantID, actorID(c), ip); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Participant removed successfully!",
	})
}
