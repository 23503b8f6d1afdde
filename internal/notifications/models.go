package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	TypeProjectApproved = "project_approved"
	TypeProjectRejected = "project_rejected"
)

// Notification is a message delivered to a user about their project.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ProjectID *uuid.UUID `gorm:"type:uuid" json:"project_id,omitempty"`
	Type      string     `gorm:"not null" json:"type"`
	Title     string     `gorm:"not null" json:"title"`
	Body      string     `json:"body"`
	IsRead    bool       `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Event is the wire payload pushed over a user's websocket.
type Event struct {
	Type      string       `json:"type"`
	Payload   Notification `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}
