package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ColorBlindMode selects a color-blindness palette adjustment.
type ColorBlindMode string

const (
	ColorBlindProtanopia   ColorBlindMode = "protanopia"
	ColorBlindDeuteranopia ColorBlindMode = "deuteranopia"
	ColorBlindTritanopia   ColorBlindMode = "tritanopia"
)

// AccessibilitySettings holds one row of per-user accessibility preferences.
// The row is created lazily on first update or eagerly with defaults when the
// user is first synced.
type AccessibilitySettings struct {
	ID                        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID                    uuid.UUID       `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	VoiceOverEnabled          bool            `json:"voiceOverEnabled" gorm:"not null;default:false"`
	VoiceOverSpeed            float64         `json:"voiceOverSpeed" gorm:"not null;default:1.0"`
	KeyboardNavigationEnabled bool            `json:"keyboardNavigationEnabled" gorm:"not null;default:false"`
	HighContrastMode          bool            `json:"highContrastMode" gorm:"not null;default:false"`
	FontSizeMultiplier        float64         `json:"fontSizeMultiplier" gorm:"not null;default:1.0"`
	ScreenReaderEnabled       bool            `json:"screenReaderEnabled" gorm:"not null;default:false"`
	MotionReduced             bool            `json:"motionReduced" gorm:"not null;default:false"`
	ColorBlindMode            *ColorBlindMode `json:"colorBlindMode,omitempty" gorm:"type:varchar(20)"`
	CustomCSS                 *string         `json:"customCss,omitempty" gorm:"column:custom_css;size:5000"`
	CreatedAt                 time.Time       `json:"createdAt"`
	UpdatedAt                 time.Time       `json:"updatedAt"`
}

// BeforeCreate sets the UUID before creating the record.
func (s *AccessibilitySettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// DefaultAccessibilitySettings returns the documented defaults for a user.
func DefaultAccessibilitySettings(userID uuid.UUID) *AccessibilitySettings {
	return &AccessibilitySettings{
		UserID:             userID,
		VoiceOverSpeed:     1.0,
		FontSizeMultiplier: 1.0,
	}
}
