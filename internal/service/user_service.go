package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"accessibleos/internal/cache"
	"accessibleos/internal/errors"
	"accessibleos/internal/mapper"
	"accessibleos/internal/model"
	"accessibleos/internal/repository"
)

const (
	userCacheTTL = 5 * time.Minute
	// demoPrefix marks external identities eligible for starter-data seeding.
	demoPrefix = "demo"
)

var userAllowedUpdates = map[string]bool{
	"displayName":       true,
	"profilePictureUrl": true,
}

// SyncUserInput is the identity payload delivered by the auth layer.
type SyncUserInput struct {
	ExternalID        string
	Email             string
	DisplayName       string
	ProfilePictureURL string
}

// UserService owns user upsert-on-login, profile reads/updates and the demo
// data lifecycle.
type UserService interface {
	SyncUser(ctx context.Context, input SyncUserInput) (*model.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.User, error)
	ResetDemoForUser(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	repo         repository.UserRepository
	taskRepo     repository.TaskRepository
	settingsRepo repository.SettingsRepository
	cache        *cache.Client

	demoSeedEnabled  bool
	demoResetEnabled bool
}

// NewUserService builds a UserService. The demo flags are resolved once at
// startup and injected here so the service never reads ambient state.
func NewUserService(
	repo repository.UserRepository,
	taskRepo repository.TaskRepository,
	settingsRepo repository.SettingsRepository,
	cache *cache.Client,
	demoSeedEnabled, demoResetEnabled bool,
) UserService {
	return &userService{
		repo:             repo,
		taskRepo:         taskRepo,
		settingsRepo:     settingsRepo,
		cache:            cache,
		demoSeedEnabled:  demoSeedEnabled,
		demoResetEnabled: demoResetEnabled,
	}
}

func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// SyncUser upserts a user keyed on the external identity. New users get
// default accessibility settings, and demo identities get starter data when
// seeding is enabled. Seeding failures never fail the sync itself.
func (s *userService) SyncUser(ctx context.Context, input SyncUserInput) (*model.User, error) {
	existing, err := s.repo.FindByExternalID(ctx, input.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	now := time.Now()
	if existing != nil {
		err := s.repo.UpdateByExternalID(ctx, input.ExternalID, map[string]any{
			"email":               input.Email,
			"display_name":        input.DisplayName,
			"profile_picture_url": input.ProfilePictureURL,
			"last_login":          now,
		})
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		_ = s.cache.Delete(ctx, userCacheKey(existing.ID))
		return s.repo.FindByExternalID(ctx, input.ExternalID)
	}

	user := &model.User{
		ExternalID:        input.ExternalID,
		Email:             input.Email,
		DisplayName:       input.DisplayName,
		ProfilePictureURL: input.ProfilePictureURL,
		LastLogin:         &now,
		IsActive:          true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.settingsRepo.Create(ctx, model.DefaultAccessibilitySettings(user.ID)); err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}

	if s.demoSeedEnabled && strings.HasPrefix(input.ExternalID, demoPrefix) {
		if err := s.seedDemoData(ctx, user.ID); err != nil {
			log.Printf("demo seed for user %s failed: %v", user.ID, err)
		}
	}

	return user, nil
}

func (s *userService) GetUserByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	return s.repo.FindByExternalID(ctx, externalID)
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.User, error) {
	columns := mapper.Columns(updates, userAllowedUpdates)
	if len(columns) == 0 {
		return nil, errors.ErrNoFieldsToUpdate
	}

	rows, err := s.repo.UpdateColumns(ctx, id, columns)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrUserNotFound
	}

	_ = s.cache.Delete(ctx, userCacheKey(id))
	return s.repo.FindByID(ctx, id)
}

// ResetDemoForUser deletes every row owned by the user, then the user itself.
// Gated by configuration so production deployments cannot lose data to a
// stray admin call.
func (s *userService) ResetDemoForUser(ctx context.Context, userID uuid.UUID) error {
	if !s.demoResetEnabled {
		return errors.ErrDemoResetDisabled
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return errors.ErrUserNotFound
	}

	if err := s.repo.PurgeUser(ctx, userID); err != nil {
		return fmt.Errorf("purge user: %w", err)
	}

	_ = s.cache.Delete(ctx, userCacheKey(userID))
	_ = s.cache.Delete(ctx, settingsCacheKey(userID))
	return nil
}

// seedDemoData installs starter categories, tasks, settings and game progress
// for a fresh demo identity. The guard and the category/task inserts run in
// one transaction, so a duplicate concurrent sync seeds at most once.
func (s *userService) seedDemoData(ctx context.Context, userID uuid.UUID) error {
	err := s.taskRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		seeded, err := repo.HasContent(ctx, userID)
		if err != nil {
			return err
		}
		if seeded {
			return nil
		}

		work := &model.TaskCategory{UserID: userID, Name: "Work", Color: "#3B82F6", Icon: "briefcase"}
		personal := &model.TaskCategory{UserID: userID, Name: "Personal", Color: "#F59E0B", Icon: "user"}
		if err := repo.CreateCategory(ctx, work); err != nil {
			return err
		}
		if err := repo.CreateCategory(ctx, personal); err != nil {
			return err
		}

		dueSoon := time.Now().Add(2 * 24 * time.Hour)
		dueLater := time.Now().Add(7 * 24 * time.Hour)
		estProposal, estAppointment := 120, 30

		proposal := &model.Task{
			UserID:            userID,
			Title:             "Complete project proposal",
			Description:       "Finish the Q1 project proposal document with accessibility guidelines",
			Status:            model.TaskStatusInProgress,
			Priority:          model.TaskPriorityHigh,
			DueDate:           &dueSoon,
			Tags:              datatypes.JSONSlice[string]{"work", "proposal"},
			EstimatedDuration: &estProposal,
			SortOrder:         1,
		}
		appointment := &model.Task{
			UserID:            userID,
			Title:             "Schedule doctor appointment",
			Description:       "Book annual health checkup and eye exam",
			Status:            model.TaskStatusPending,
			Priority:          model.TaskPriorityMedium,
			DueDate:           &dueLater,
			Tags:              datatypes.JSONSlice[string]{"health", "personal"},
			EstimatedDuration: &estAppointment,
			SortOrder:         2,
		}
		if err := repo.CreateTask(ctx, proposal); err != nil {
			return err
		}
		if err := repo.CreateTask(ctx, appointment); err != nil {
			return err
		}

		if err := repo.AssignCategories(ctx, proposal.ID, []uuid.UUID{work.ID}); err != nil {
			return err
		}
		return repo.AssignCategories(ctx, appointment.ID, []uuid.UUID{personal.ID})
	})
	if err != nil {
		return err
	}

	// Friendly accessibility defaults for demo walkthroughs.
	colorBlind := (*model.ColorBlindMode)(nil)
	err = s.settingsRepo.Upsert(ctx, &model.AccessibilitySettings{
		UserID:                    userID,
		VoiceOverEnabled:          true,
		VoiceOverSpeed:            1.2,
		KeyboardNavigationEnabled: true,
		FontSizeMultiplier:        1.2,
		ScreenReaderEnabled:       true,
		ColorBlindMode:            colorBlind,
	})
	if err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, settingsCacheKey(userID))

	today := time.Now()
	return s.repo.UpsertGameProgress(ctx, &model.GameProgress{
		UserID:              userID,
		Level:               3,
		ExperiencePoints:    450,
		Achievements:        datatypes.JSONSlice[string]{"First Task", "Accessibility Win"},
		CurrentStreak:       5,
		LongestStreak:       10,
		TasksCompletedToday: 1,
		LastActivityDate:    &today,
	})
}
