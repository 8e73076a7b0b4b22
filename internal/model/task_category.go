package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskCategory is a user-scoped label. Name uniqueness per user is not
// enforced; duplicates are allowed.
type TaskCategory struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Color     string    `json:"color,omitempty" gorm:"size:7"`
	Icon      string    `json:"icon,omitempty" gorm:"size:50"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets the UUID before creating the record.
func (c *TaskCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TaskCategoryAssignment joins tasks to categories. The composite key makes
// repeated assignment of the same pair a no-op.
type TaskCategoryAssignment struct {
	TaskID     uuid.UUID `json:"taskId" gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `json:"categoryId" gorm:"type:uuid;primaryKey"`
}
