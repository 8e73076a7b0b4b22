package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account synced from the external identity provider.
type User struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ExternalID        string     `json:"externalId" gorm:"column:external_id;uniqueIndex;size:255;not null"`
	Email             string     `json:"email" gorm:"size:255;not null"`
	DisplayName       string     `json:"displayName,omitempty" gorm:"size:255"`
	ProfilePictureURL string     `json:"profilePictureUrl,omitempty" gorm:"column:profile_picture_url;size:1024"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`
	IsActive          bool       `json:"isActive" gorm:"default:true"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// BeforeCreate sets the UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
