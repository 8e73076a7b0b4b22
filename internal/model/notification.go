package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationTaskReminder NotificationType = "task_reminder"
	NotificationAchievement  NotificationType = "achievement"
	NotificationSystem       NotificationType = "system"
)

// Notification is a message scheduled for or delivered to a user. This
// service only deletes notifications during a demo reset.
type Notification struct {
	ID           uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID        `json:"userId" gorm:"type:uuid;not null;index"`
	Title        string           `json:"title" gorm:"size:255;not null"`
	Message      string           `json:"message" gorm:"type:text;not null"`
	Type         NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	IsRead       bool             `json:"isRead" gorm:"not null;default:false"`
	ScheduledFor *time.Time       `json:"scheduledFor,omitempty"`
	SentAt       *time.Time       `json:"sentAt,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// BeforeCreate sets the UUID before creating the record.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
