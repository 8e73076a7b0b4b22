package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GameProgress tracks gamification state for a user. Only the demo seed and
// reset paths touch it from this service.
type GameProgress struct {
	ID                  uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID                   `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	Level               int                         `json:"level" gorm:"not null;default:1"`
	ExperiencePoints    int                         `json:"experiencePoints" gorm:"not null;default:0"`
	Achievements        datatypes.JSONSlice[string] `json:"achievements"`
	CurrentStreak       int                         `json:"currentStreak" gorm:"not null;default:0"`
	LongestStreak       int                         `json:"longestStreak" gorm:"not null;default:0"`
	TasksCompletedToday int                         `json:"tasksCompletedToday" gorm:"not null;default:0"`
	LastActivityDate    *time.Time                  `json:"lastActivityDate,omitempty"`
	CreatedAt           time.Time                   `json:"createdAt"`
	UpdatedAt           time.Time                   `json:"updatedAt"`
}

// BeforeCreate sets the UUID before creating the record.
func (g *GameProgress) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
