package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"accessibleos/internal/model"
)

// TaskFilter narrows task list queries. ParentTaskID is tri-state: when
// FilterParent is false no parent filter applies; when true and ParentTaskID
// is nil only root tasks match; otherwise children of the given parent match.
type TaskFilter struct {
	Status       string
	Priority     string
	CategoryID   *uuid.UUID
	FilterParent bool
	ParentTaskID *uuid.UUID
}

// TaskRepository defines persistence operations for tasks, categories and
// their assignments. All reads and writes are scoped to an owning user.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *model.Task) error
	FindTaskByID(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID, filter TaskFilter, orderBy string, limit, offset int) ([]model.Task, error)
	CountTasks(ctx context.Context, userID uuid.UUID, filter TaskFilter) (int64, error)
	UpdateTaskColumns(ctx context.Context, userID, taskID uuid.UUID, columns map[string]any) (int64, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) (int64, error)

	CreateCategory(ctx context.Context, category *model.TaskCategory) error
	ListCategories(ctx context.Context, userID uuid.UUID) ([]model.TaskCategory, error)
	FindCategoriesByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]model.TaskCategory, error)
	UpdateCategoryColumns(ctx context.Context, userID, categoryID uuid.UUID, columns map[string]any) (int64, error)
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)

	AssignCategories(ctx context.Context, taskID uuid.UUID, categoryIDs []uuid.UUID) error
	ReplaceCategories(ctx context.Context, taskID uuid.UUID, categoryIDs []uuid.UUID) error
	CategoriesForTasks(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]model.TaskCategory, error)

	HasContent(ctx context.Context, userID uuid.UUID) (bool, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TaskRepository) error) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) CreateTask(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindTaskByID(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&task).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// filtered applies the common ownership and filter predicate shared by the
// list and count queries.
func (r *taskRepository) filtered(ctx context.Context, userID uuid.UUID, filter TaskFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", userID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.CategoryID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM task_category_assignments tca WHERE tca.task_id = tasks.id AND tca.category_id = ?)",
			*filter.CategoryID,
		)
	}
	if filter.FilterParent {
		if filter.ParentTaskID == nil {
			query = query.Where("parent_task_id IS NULL")
		} else {
			query = query.Where("parent_task_id = ?", *filter.ParentTaskID)
		}
	}
	return query
}

func (r *taskRepository) ListTasks(ctx context.Context, userID uuid.UUID, filter TaskFilter, orderBy string, limit, offset int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.filtered(ctx, userID, filter).
		Order(orderBy).
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) CountTasks(ctx context.Context, userID uuid.UUID, filter TaskFilter) (int64, error) {
	var total int64
	if err := r.filtered(ctx, userID, filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *taskRepository) UpdateTaskColumns(ctx context.Context, userID, taskID uuid.UUID, columns map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(columns)
	return result.RowsAffected, result.Error
}

func (r *taskRepository) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&model.Task{})
	return result.RowsAffected, result.Error
}

func (r *taskRepository) CreateCategory(ctx context.Context, category *model.TaskCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *taskRepository) ListCategories(ctx context.Context, userID uuid.UUID) ([]model.TaskCategory, error) {
	var categories []model.TaskCategory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name, id").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *taskRepository) FindCategoriesByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]model.TaskCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []model.TaskCategory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("name, id").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *taskRepository) UpdateCategoryColumns(ctx context.Context, userID, categoryID uuid.UUID, columns map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.TaskCategory{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Updates(columns)
	return result.RowsAffected, result.Error
}

func (r *taskRepository) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Delete(&model.TaskCategory{})
	return result.RowsAffected, result.Error
}

// AssignCategories inserts join rows, ignoring pairs that already exist.
func (r *taskRepository) AssignCategories(ctx context.Context, taskID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	assignments := make([]model.TaskCategoryAssignment, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		assignments = append(assignments, model.TaskCategoryAssignment{
			TaskID:     taskID,
			CategoryID: categoryID,
		})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignments).Error
}

// ReplaceCategories swaps a task's category set for the given ids.
func (r *taskRepository) ReplaceCategories(ctx context.Context, taskID uuid.UUID, categoryIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Delete(&model.TaskCategoryAssignment{}).Error
	if err != nil {
		return err
	}
	return r.AssignCategories(ctx, taskID, categoryIDs)
}

// CategoriesForTasks resolves category sets for a page of tasks with two
// batched queries instead of one query per task.
func (r *taskRepository) CategoriesForTasks(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]model.TaskCategory, error) {
	grouped := make(map[uuid.UUID][]model.TaskCategory, len(taskIDs))
	if len(taskIDs) == 0 {
		return grouped, nil
	}

	var assignments []model.TaskCategoryAssignment
	err := r.db.WithContext(ctx).
		Where("task_id IN ?", taskIDs).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return grouped, nil
	}

	categoryIDs := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		categoryIDs = append(categoryIDs, a.CategoryID)
	}

	var categories []model.TaskCategory
	err = r.db.WithContext(ctx).
		Where("id IN ?", categoryIDs).
		Order("name, id").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]model.TaskCategory, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	for _, a := range assignments {
		if c, ok := byID[a.CategoryID]; ok {
			grouped[a.TaskID] = append(grouped[a.TaskID], c)
		}
	}
	return grouped, nil
}

// HasContent reports whether the user already owns any categories or tasks.
// The demo seeder uses it as its idempotency guard.
func (r *taskRepository) HasContent(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TaskCategory{}).
		Where("user_id = ?", userID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	err = r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ?", userID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// WithTransaction executes a function against a repository bound to a single
// database transaction.
func (r *taskRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TaskRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &taskRepository{db: tx})
	})
}
