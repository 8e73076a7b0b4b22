package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"accessibleos/internal/model"
)

// SettingsRepository defines persistence for per-user accessibility settings.
type SettingsRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.AccessibilitySettings, error)
	Create(ctx context.Context, settings *model.AccessibilitySettings) error
	UpdateColumns(ctx context.Context, userID uuid.UUID, columns map[string]any) (int64, error)
	Upsert(ctx context.Context, settings *model.AccessibilitySettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository builds a GORM-backed settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.AccessibilitySettings, error) {
	var settings model.AccessibilitySettings
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Create(ctx context.Context, settings *model.AccessibilitySettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *settingsRepository) UpdateColumns(ctx context.Context, userID uuid.UUID, columns map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.AccessibilitySettings{}).
		Where("user_id = ?", userID).
		Updates(columns)
	return result.RowsAffected, result.Error
}

// Upsert inserts or overwrites the user's settings row. The demo seeder uses
// it to install friendly defaults regardless of whether sync already created
// the row.
func (r *settingsRepository) Upsert(ctx context.Context, settings *model.AccessibilitySettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"voice_over_enabled", "voice_over_speed", "keyboard_navigation_enabled",
				"high_contrast_mode", "font_size_multiplier", "screen_reader_enabled",
				"motion_reduced", "color_blind_mode", "custom_css", "updated_at",
			}),
		}).
		Create(settings).Error
}
