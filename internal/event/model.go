package event

import (
	"time"
)

// ============================
// 🔷 GORM Event Model
//
// StartTime/EndTime keep the wall-clock "HH:mm" strings the API speaks;
// StartMinute/EndMinute carry the same instants as minutes-of-day for the
// overlap scan and the events_no_overlap exclusion constraint.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Date        time.Time `gorm:"type:date;not null;index:idx_events_location_date" json:"date"`
	StartTime   string    `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime     string    `gorm:"type:varchar(5);not null" json:"endTime"`
	StartMinute int       `gorm:"not null" json:"-"`
	EndMinute   int       `gorm:"not null" json:"-"`
	Location    string    `gorm:"type:text;not null;index:idx_events_location_date" json:"location"`
	Description string    `gorm:"type:text" json:"description"`
	IsDeleted   bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Participants []Participant `gorm:"foreignKey:EventID" json:"participants,omitempty"`
}

// ============================
// 🔷 GORM Participant Model
//
// Email is a cross-event unique upsert key: adding a known email never
// creates a second row, it re-links or skips per the configured policy.
type Participant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	IsDeleted bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Name         string   `json:"name" binding:"required"`
	Date         string   `json:"date" binding:"required"`      // "2006-01-02"
	StartTime    string   `json:"startTime" binding:"required"` // "15:04"
	EndTime      string   `json:"endTime" binding:"required"`   // "15:04"
	Location     string   `json:"location" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Participants []string `json:"participants,omitempty"`
}

// ============================
// 🟠 Update Event Request — full replace of schedulable fields
type UpdateEventRequest struct {
	Name         string   `json:"name" binding:"required"`
	Date         string   `json:"date" binding:"required"`
	StartTime    string   `json:"startTime" binding:"required"`
	EndTime      string   `json:"endTime" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Participants []string `json:"participants,omitempty"`
}

// ============================
// 🟢 Add Participants Request
type AddParticipantsRequest struct {
	Participants []string `json:"participants" binding:"required,min=1,dive,email"`
}

// ============================
// 📄 Listing

// eventSearchableFields are matched case-insensitively against searchTerm.
var eventSearchableFields = []string{"location", "description", "name"}

// eventFilterableFields is the allow-list for equality filters; unknown
// filter keys are rejected rather than passed through to the query.
var eventFilterableFields = map[string]bool{
	"location": true,
	"date":     true,
}

// eventSortableFields is the allow-list for sortBy.
var eventSortableFields = map[string]bool{
	"created_at": true,
	"date":       true,
	"start_time": true,
	"name":       true,
}

type ListQuery struct {
	SearchTerm string
	Filters    map[string]string

	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type ListMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ============================
// 🧩 Participant policy for already-known emails
type ParticipantPolicy string

const (
	PolicyRelink ParticipantPolicy = "relink"
	PolicySkip   ParticipantPolicy = "skip"
	PolicyError  ParticipantPolicy = "error"
)

// ParsePolicy maps a config string to a policy, defaulting to skip.
func ParsePolicy(s string) ParticipantPolicy {
	switch ParticipantPolicy(s) {
	case PolicyRelink, PolicySkip, PolicyError:
		return ParticipantPolicy(s)
	default:
		return PolicySkip
	}
}
