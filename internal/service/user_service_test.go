package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"accessibleos/internal/errors"
	"accessibleos/internal/model"
)

func newUserServiceForTest(repo *MockUserRepository, taskRepo *MockTaskRepository, settingsRepo *MockSettingsRepository, seed, reset bool) UserService {
	// The cache client tolerates a nil receiver, so unit tests skip redis.
	return NewUserService(repo, taskRepo, settingsRepo, nil, seed, reset)
}

func TestSyncUser_ExistingUserRefreshesProfile(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserServiceForTest(repo, new(MockTaskRepository), new(MockSettingsRepository), true, true)

	existing := &model.User{ID: uuid.New(), ExternalID: "auth0|123", Email: "old@example.com"}
	refreshed := &model.User{ID: existing.ID, ExternalID: "auth0|123", Email: "new@example.com"}

	repo.On("FindByExternalID", mock.Anything, "auth0|123").Return(existing, nil).Once()
	repo.On("UpdateByExternalID", mock.Anything, "auth0|123", mock.MatchedBy(func(cols map[string]any) bool {
		return cols["email"] == "new@example.com" &&
			cols["display_name"] == "Ada" &&
			cols["last_login"] != nil
	})).Return(nil)
	repo.On("FindByExternalID", mock.Anything, "auth0|123").Return(refreshed, nil).Once()

	user, err := svc.SyncUser(context.Background(), SyncUserInput{
		ExternalID:  "auth0|123",
		Email:       "new@example.com",
		DisplayName: "Ada",
	})

	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestSyncUser_NewUserGetsDefaultSettings(t *testing.T) {
	repo := new(MockUserRepository)
	settingsRepo := new(MockSettingsRepository)
	taskRepo := new(MockTaskRepository)
	svc := newUserServiceForTest(repo, taskRepo, settingsRepo, true, true)

	repo.On("FindByExternalID", mock.Anything, "auth0|456").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ExternalID == "auth0|456" && u.IsActive && u.LastLogin != nil
	})).Return(nil)
	settingsRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *model.AccessibilitySettings) bool {
		return s.VoiceOverSpeed == 1.0 && s.FontSizeMultiplier == 1.0 && !s.VoiceOverEnabled
	})).Return(nil)

	user, err := svc.SyncUser(context.Background(), SyncUserInput{ExternalID: "auth0|456", Email: "a@b.com"})

	assert.NoError(t, err)
	assert.Equal(t, "auth0|456", user.ExternalID)
	// Non-demo identities never receive starter data.
	taskRepo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	settingsRepo.AssertExpectations(t)
}

func TestSyncUser_DemoIdentitySeedsStarterData(t *testing.T) {
	repo := new(MockUserRepository)
	settingsRepo := new(MockSettingsRepository)
	taskRepo := new(MockTaskRepository)
	svc := newUserServiceForTest(repo, taskRepo, settingsRepo, true, true)

	repo.On("FindByExternalID", mock.Anything, "demo-user").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	settingsRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	taskRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	taskRepo.On("HasContent", mock.Anything, mock.Anything).Return(false, nil)
	taskRepo.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c *model.TaskCategory) bool {
		return c.Name == "Work" && c.Color == "#3B82F6"
	})).Return(nil).Once()
	taskRepo.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c *model.TaskCategory) bool {
		return c.Name == "Personal" && c.Color == "#F59E0B"
	})).Return(nil).Once()
	taskRepo.On("CreateTask", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Title == "Complete project proposal" && task.Status == model.TaskStatusInProgress
	})).Return(nil).Once()
	taskRepo.On("CreateTask", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Title == "Schedule doctor appointment" && task.Priority == model.TaskPriorityMedium
	})).Return(nil).Once()
	taskRepo.On("AssignCategories", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	settingsRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *model.AccessibilitySettings) bool {
		return s.VoiceOverEnabled && s.VoiceOverSpeed == 1.2 && s.ScreenReaderEnabled
	})).Return(nil)
	repo.On("UpsertGameProgress", mock.Anything, mock.MatchedBy(func(p *model.GameProgress) bool {
		return p.Level == 3 && p.ExperiencePoints == 450 && p.CurrentStreak == 5
	})).Return(nil)

	_, err := svc.SyncUser(context.Background(), SyncUserInput{ExternalID: "demo-user", Email: "demo@accessibleos.com"})

	assert.NoError(t, err)
	taskRepo.AssertExpectations(t)
	settingsRepo.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestSyncUser_SeedSkippedWhenContentExists(t *testing.T) {
	repo := new(MockUserRepository)
	settingsRepo := new(MockSettingsRepository)
	taskRepo := new(MockTaskRepository)
	svc := newUserServiceForTest(repo, taskRepo, settingsRepo, true, true)

	repo.On("FindByExternalID", mock.Anything, "demo-2").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	settingsRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	taskRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	taskRepo.On("HasContent", mock.Anything, mock.Anything).Return(true, nil)
	settingsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	repo.On("UpsertGameProgress", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.SyncUser(context.Background(), SyncUserInput{ExternalID: "demo-2"})

	assert.NoError(t, err)
	taskRepo.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	taskRepo.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestSyncUser_SeedDisabledForDemoIdentity(t *testing.T) {
	repo := new(MockUserRepository)
	settingsRepo := new(MockSettingsRepository)
	taskRepo := new(MockTaskRepository)
	svc := newUserServiceForTest(repo, taskRepo, settingsRepo, false, true)

	repo.On("FindByExternalID", mock.Anything, "demo-3").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	settingsRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.SyncUser(context.Background(), SyncUserInput{ExternalID: "demo-3"})

	assert.NoError(t, err)
	taskRepo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
}

func TestUpdateUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserServiceForTest(repo, new(MockTaskRepository), new(MockSettingsRepository), false, false)
	userID := uuid.New()

	repo.On("UpdateColumns", mock.Anything, userID, map[string]any{"display_name": "Grace"}).
		Return(int64(1), nil)
	repo.On("FindByID", mock.Anything, userID).
		Return(&model.User{ID: userID, DisplayName: "Grace"}, nil)

	user, err := svc.UpdateUser(context.Background(), userID, map[string]any{
		"displayName": "Grace",
		"email":       "ignored@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Grace", user.DisplayName)
	repo.AssertExpectations(t)
}

func TestUpdateUser_NoValidFields(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserServiceForTest(repo, new(MockTaskRepository), new(MockSettingsRepository), false, false)

	_, err := svc.UpdateUser(context.Background(), uuid.New(), map[string]any{"externalId": "x"})

	assert.ErrorIs(t, err, errors.ErrNoFieldsToUpdate)
	repo.AssertNotCalled(t, "UpdateColumns", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserServiceForTest(repo, new(MockTaskRepository), new(MockSettingsRepository), false, false)

	repo.On("UpdateColumns", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := svc.UpdateUser(context.Background(), uuid.New(), map[string]any{"displayName": "X"})

	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestResetDemoForUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserServiceForTest(repo, new(MockTaskRepository), new(MockSettingsRepository), true, true)
	userID := uuid.New()

	repo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	repo.On("PurgeUser", mock.Anything, userID).Return(nil)

	assert.NoError(t, svc.ResetDemoForUser(context.Background(), userID))
	repo.AssertExpectations(t)
}

func TestResetDemoForUser_Disabled(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserServiceForTest(repo, new(MockTaskRepository), new(MockSettingsRepository), true, false)

	err := svc.ResetDemoForUser(context.Background(), uuid.New())

	assert.ErrorIs(t, err, errors.ErrDemoResetDisabled)
	repo.AssertNotCalled(t, "PurgeUser", mock.Anything, mock.Anything)
}

func TestResetDemoForUser_UserNotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserServiceForTest(repo, new(MockTaskRepository), new(MockSettingsRepository), true, true)

	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	err := svc.ResetDemoForUser(context.Background(), uuid.New())

	assert.ErrorIs(t, err, errors.ErrUserNotFound)
	repo.AssertNotCalled(t, "PurgeUser", mock.Anything, mock.Anything)
}
