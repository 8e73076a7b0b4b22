package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"accessibleos/internal/model"
)

// UserRepository defines user persistence plus the demo-lifecycle operations
// that span the user's owned rows.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) (int64, error)
	UpdateByExternalID(ctx context.Context, externalID string, columns map[string]any) error

	UpsertGameProgress(ctx context.Context, progress *model.GameProgress) error
	PurgeUser(ctx context.Context, userID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(columns)
	return result.RowsAffected, result.Error
}

func (r *userRepository) UpdateByExternalID(ctx context.Context, externalID string, columns map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("external_id = ?", externalID).
		Updates(columns).Error
}

// UpsertGameProgress inserts or refreshes the single game-progress row for a user.
func (r *userRepository) UpsertGameProgress(ctx context.Context, progress *model.GameProgress) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"level", "experience_points", "achievements", "current_streak",
				"longest_streak", "tasks_completed_today", "last_activity_date", "updated_at",
			}),
		}).
		Create(progress).Error
}

// PurgeUser removes every row owned by the user in dependency order, ending
// with the user row itself. The whole sequence runs in one transaction.
func (r *userRepository) PurgeUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("task_id IN (?)", tx.Model(&model.Task{}).Select("id").Where("user_id = ?", userID)).
			Delete(&model.TaskCategoryAssignment{}).Error
		if err != nil {
			return err
		}
		err = tx.
			Where("category_id IN (?)", tx.Model(&model.TaskCategory{}).Select("id").Where("user_id = ?", userID)).
			Delete(&model.TaskCategoryAssignment{}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.TaskCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.AccessibilitySettings{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.GameProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&model.User{}).Error
	})
}
