package notification

import (
	"time"
)

// ============================
// 🔷 GORM In-App Notification Model
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID string    `gorm:"type:varchar(64);uniqueIndex" json:"-"` // dedupe key for redelivered Kafka messages
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (InAppNotification) TableName() string {
	return "in_app_notifications"
}

// ActivityMessage is the payload published to the activity topic for every
// scheduler mutation and consumed back into in-app notifications.
type ActivityMessage struct {
	MessageID string `json:"message_id"`
	Action    string `json:"action"`
	EventID   uint   `json:"event_id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
