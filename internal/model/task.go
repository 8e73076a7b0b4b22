package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task represents a unit of work owned by exactly one user. Categories are
// resolved through the assignment table, not loaded as a gorm relation.
type Task struct {
	ID                uuid.UUID                      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID                      `json:"userId" gorm:"type:uuid;not null;index"`
	Title             string                         `json:"title" gorm:"size:500;not null"`
	Description       string                         `json:"description,omitempty" gorm:"size:2000"`
	Status            TaskStatus                     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Priority          TaskPriority                   `json:"priority" gorm:"type:varchar(20);not null;default:'medium';index"`
	DueDate           *time.Time                     `json:"dueDate,omitempty"`
	CompletedAt       *time.Time                     `json:"completedAt,omitempty"`
	Tags              datatypes.JSONSlice[string]    `json:"tags"`
	EstimatedDuration *int                           `json:"estimatedDuration,omitempty"`
	ActualDuration    *int                           `json:"actualDuration,omitempty"`
	ParentTaskID      *uuid.UUID                     `json:"parentTaskId,omitempty" gorm:"type:uuid;index"`
	SortOrder         int                            `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt         time.Time                      `json:"createdAt"`
	UpdatedAt         time.Time                      `json:"updatedAt"`

	Categories []TaskCategory `json:"categories" gorm:"-"`
}

// BeforeCreate sets the UUID and defaults before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
	if t.Tags == nil {
		t.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}
