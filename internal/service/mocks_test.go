package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"accessibleos/internal/model"
	"accessibleos/internal/repository"
)

// MockTaskRepository is a mock implementation of repository.TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) CreateTask(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindTaskByID(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListTasks(ctx context.Context, userID uuid.UUID, filter repository.TaskFilter, orderBy string, limit, offset int) ([]model.Task, error) {
	args := m.Called(ctx, userID, filter, orderBy, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) CountTasks(ctx context.Context, userID uuid.UUID, filter repository.TaskFilter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) UpdateTaskColumns(ctx context.Context, userID, taskID uuid.UUID, columns map[string]any) (int64, error) {
	args := m.Called(ctx, userID, taskID, columns)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CreateCategory(ctx context.Context, category *model.TaskCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockTaskRepository) ListCategories(ctx context.Context, userID uuid.UUID) ([]model.TaskCategory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskCategory), args.Error(1)
}

func (m *MockTaskRepository) FindCategoriesByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]model.TaskCategory, error) {
	args := m.Called(ctx, userID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskCategory), args.Error(1)
}

func (m *MockTaskRepository) UpdateCategoryColumns(ctx context.Context, userID, categoryID uuid.UUID, columns map[string]any) (int64, error) {
	args := m.Called(ctx, userID, categoryID, columns)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) AssignCategories(ctx context.Context, taskID uuid.UUID, categoryIDs []uuid.UUID) error {
	args := m.Called(ctx, taskID, categoryIDs)
	return args.Error(0)
}

func (m *MockTaskRepository) ReplaceCategories(ctx context.Context, taskID uuid.UUID, categoryIDs []uuid.UUID) error {
	args := m.Called(ctx, taskID, categoryIDs)
	return args.Error(0)
}

func (m *MockTaskRepository) CategoriesForTasks(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]model.TaskCategory, error) {
	args := m.Called(ctx, taskIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]model.TaskCategory), args.Error(1)
}

func (m *MockTaskRepository) HasContent(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// WithTransaction runs the closure against the same mock so per-step
// expectations apply inside transactions too.
func (m *MockTaskRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.TaskRepository) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) (int64, error) {
	args := m.Called(ctx, id, columns)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateByExternalID(ctx context.Context, externalID string, columns map[string]any) error {
	args := m.Called(ctx, externalID, columns)
	return args.Error(0)
}

func (m *MockUserRepository) UpsertGameProgress(ctx context.Context, progress *model.GameProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockUserRepository) PurgeUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockSettingsRepository is a mock implementation of repository.SettingsRepository.
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.AccessibilitySettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessibilitySettings), args.Error(1)
}

func (m *MockSettingsRepository) Create(ctx context.Context, settings *model.AccessibilitySettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) UpdateColumns(ctx context.Context, userID uuid.UUID, columns map[string]any) (int64, error) {
	args := m.Called(ctx, userID, columns)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, settings *model.AccessibilitySettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
