package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"accessibleos/internal/errors"
	"accessibleos/internal/mapper"
	"accessibleos/internal/model"
	"accessibleos/internal/repository"
)

// taskAllowedUpdates is the allow-list of API fields a task update may touch.
// Anything else in the payload is silently ignored.
var taskAllowedUpdates = map[string]bool{
	"title":             true,
	"description":       true,
	"status":            true,
	"priority":          true,
	"dueDate":           true,
	"completedAt":       true,
	"estimatedDuration": true,
	"actualDuration":    true,
	"tags":              true,
	"parentTaskId":      true,
	"sortOrder":         true,
}

var categoryAllowedUpdates = map[string]bool{
	"name":  true,
	"color": true,
	"icon":  true,
}

// sortKeyColumns maps caller-selectable logical sort keys to physical
// columns. The allow-list is what keeps caller input out of the ORDER BY
// clause.
var sortKeyColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"priority":  "priority",
	"status":    "status",
	"title":     "title",
	"sortOrder": "sort_order",
}

// CreateTaskInput carries the fields accepted when creating a task.
type CreateTaskInput struct {
	Title             string
	Description       string
	Status            model.TaskStatus
	Priority          model.TaskPriority
	DueDate           *time.Time
	EstimatedDuration *int
	Tags              []string
	ParentTaskID      *uuid.UUID
	SortOrder         int
	CategoryIDs       []uuid.UUID
}

// CreateCategoryInput carries the fields accepted when creating a category.
type CreateCategoryInput struct {
	Name  string
	Color string
	Icon  string
}

// ListTasksOptions narrows and orders a task listing.
type ListTasksOptions struct {
	Status       string
	Priority     string
	CategoryID   *uuid.UUID
	FilterParent bool
	ParentTaskID *uuid.UUID
	Page         int
	Limit        int
	SortBy       string
	SortOrder    string
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Items      []model.Task `json:"items"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

// TaskService owns CRUD and listing for tasks and categories, plus the
// many-to-many assignment between them. Every operation is scoped to the
// owning user.
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*model.Task, error)
	GetTasks(ctx context.Context, userID uuid.UUID, opts ListTasksOptions) (*TaskPage, error)
	GetTaskByID(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, updates map[string]any) (*model.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	CreateCategory(ctx context.Context, userID uuid.UUID, input CreateCategoryInput) (*model.TaskCategory, error)
	GetCategories(ctx context.Context, userID uuid.UUID) ([]model.TaskCategory, error)
	UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, updates map[string]any) (*model.TaskCategory, error)
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService builds a TaskService over the given repository.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) CreateTask(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*model.Task, error) {
	if input.ParentTaskID != nil && *input.ParentTaskID == uuid.Nil {
		input.ParentTaskID = nil
	}

	task := &model.Task{
		UserID:            userID,
		Title:             input.Title,
		Description:       input.Description,
		Status:            input.Status,
		Priority:          input.Priority,
		DueDate:           input.DueDate,
		EstimatedDuration: input.EstimatedDuration,
		Tags:              datatypes.JSONSlice[string](input.Tags),
		ParentTaskID:      input.ParentTaskID,
		SortOrder:         input.SortOrder,
	}

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		if err := repo.CreateTask(ctx, task); err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		if len(input.CategoryIDs) == 0 {
			task.Categories = []model.TaskCategory{}
			return nil
		}
		// Only categories owned by the same user may be attached.
		categories, err := repo.FindCategoriesByIDs(ctx, userID, input.CategoryIDs)
		if err != nil {
			return fmt.Errorf("resolve categories: %w", err)
		}
		ids := make([]uuid.UUID, 0, len(categories))
		for _, c := range categories {
			ids = append(ids, c.ID)
		}
		if err := repo.AssignCategories(ctx, task.ID, ids); err != nil {
			return fmt.Errorf("assign categories: %w", err)
		}
		task.Categories = categories
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetTasks(ctx context.Context, userID uuid.UUID, opts ListTasksOptions) (*TaskPage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 20
	}

	orderBy, err := buildOrderClause(opts.SortBy, opts.SortOrder)
	if err != nil {
		return nil, err
	}

	filter := repository.TaskFilter{
		Status:       opts.Status,
		Priority:     opts.Priority,
		CategoryID:   opts.CategoryID,
		FilterParent: opts.FilterParent,
		ParentTaskID: opts.ParentTaskID,
	}

	total, err := s.repo.CountTasks(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	offset := (opts.Page - 1) * opts.Limit
	tasks, err := s.repo.ListTasks(ctx, userID, filter, orderBy, opts.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if err := s.attachCategories(ctx, tasks); err != nil {
		return nil, err
	}

	return &TaskPage{
		Items:      tasks,
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(opts.Limit))),
	}, nil
}

func (s *taskService) GetTaskByID(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.repo.FindTaskByID(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	if task == nil {
		return nil, errors.ErrTaskNotFound
	}
	categories, err := s.repo.CategoriesForTasks(ctx, []uuid.UUID{task.ID})
	if err != nil {
		return nil, fmt.Errorf("resolve categories: %w", err)
	}
	task.Categories = categories[task.ID]
	if task.Categories == nil {
		task.Categories = []model.TaskCategory{}
	}
	return task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, updates map[string]any) (*model.Task, error) {
	columns, err := buildTaskColumns(taskID, updates)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, errors.ErrNoFieldsToUpdate
	}

	categoryIDs, replaceCategories, err := extractCategoryIDs(updates)
	if err != nil {
		return nil, err
	}

	var task *model.Task
	err = s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		rows, err := repo.UpdateTaskColumns(ctx, userID, taskID, columns)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if rows == 0 {
			return errors.ErrTaskNotFound
		}

		if replaceCategories {
			categories, err := repo.FindCategoriesByIDs(ctx, userID, categoryIDs)
			if err != nil {
				return fmt.Errorf("resolve categories: %w", err)
			}
			ids := make([]uuid.UUID, 0, len(categories))
			for _, c := range categories {
				ids = append(ids, c.ID)
			}
			if err := repo.ReplaceCategories(ctx, taskID, ids); err != nil {
				return fmt.Errorf("replace categories: %w", err)
			}
		}

		task, err = repo.FindTaskByID(ctx, userID, taskID)
		if err != nil {
			return fmt.Errorf("reload task: %w", err)
		}
		if task == nil {
			return errors.ErrTaskNotFound
		}
		categories, err := repo.CategoriesForTasks(ctx, []uuid.UUID{taskID})
		if err != nil {
			return fmt.Errorf("resolve categories: %w", err)
		}
		task.Categories = categories[taskID]
		if task.Categories == nil {
			task.Categories = []model.TaskCategory{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	rows, err := s.repo.DeleteTask(ctx, userID, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if rows == 0 {
		return errors.ErrTaskNotFound
	}
	return nil
}

func (s *taskService) CreateCategory(ctx context.Context, userID uuid.UUID, input CreateCategoryInput) (*model.TaskCategory, error) {
	category := &model.TaskCategory{
		UserID: userID,
		Name:   input.Name,
		Color:  input.Color,
		Icon:   input.Icon,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *taskService) GetCategories(ctx context.Context, userID uuid.UUID) ([]model.TaskCategory, error) {
	categories, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *taskService) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, updates map[string]any) (*model.TaskCategory, error) {
	columns := mapper.Columns(updates, categoryAllowedUpdates)
	if len(columns) == 0 {
		return nil, errors.ErrNoFieldsToUpdate
	}

	rows, err := s.repo.UpdateCategoryColumns(ctx, userID, categoryID, columns)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrCategoryNotFound
	}

	categories, err := s.repo.FindCategoriesByIDs(ctx, userID, []uuid.UUID{categoryID})
	if err != nil {
		return nil, fmt.Errorf("reload category: %w", err)
	}
	if len(categories) == 0 {
		return nil, errors.ErrCategoryNotFound
	}
	return &categories[0], nil
}

func (s *taskService) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	rows, err := s.repo.DeleteCategory(ctx, userID, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if rows == 0 {
		return errors.ErrCategoryNotFound
	}
	return nil
}

// attachCategories resolves category sets for a page of tasks in one batch.
func (s *taskService) attachCategories(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	grouped, err := s.repo.CategoriesForTasks(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve categories: %w", err)
	}
	for i := range tasks {
		if cats := grouped[tasks[i].ID]; cats != nil {
			tasks[i].Categories = cats
		} else {
			tasks[i].Categories = []model.TaskCategory{}
		}
	}
	return nil
}

// buildOrderClause validates the logical sort key and produces a
// deterministic ORDER BY with an id tie-break for stable pagination.
func buildOrderClause(sortBy, sortOrder string) (string, error) {
	if sortBy == "" {
		sortBy = "createdAt"
	}
	column, ok := sortKeyColumns[sortBy]
	if !ok {
		return "", fmt.Errorf("%w: %s", errors.ErrInvalidSortField, sortBy)
	}
	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s, id ASC", column, direction), nil
}

// buildTaskColumns filters an update payload through the allow-list and
// coerces API values to column values.
func buildTaskColumns(taskID uuid.UUID, updates map[string]any) (map[string]any, error) {
	columns := make(map[string]any, len(updates))
	for key, value := range updates {
		if !taskAllowedUpdates[key] {
			continue
		}
		coerced, err := coerceTaskValue(taskID, key, value)
		if err != nil {
			return nil, err
		}
		columns[mapper.CamelToSnake(key)] = coerced
	}
	return columns, nil
}

func coerceTaskValue(taskID uuid.UUID, key string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch key {
	case "dueDate", "completedAt":
		raw, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
		}
		return parsed, nil
	case "estimatedDuration", "actualDuration", "sortOrder":
		switch n := value.(type) {
		case float64:
			return int(n), nil
		case int:
			return n, nil
		default:
			return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
		}
	case "tags":
		tags, err := toStringSlice(value)
		if err != nil {
			return nil, fmt.Errorf("%w: tags", errors.ErrInvalidFieldValue)
		}
		return datatypes.JSONSlice[string](tags), nil
	case "parentTaskId":
		raw, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: parentTaskId", errors.ErrInvalidFieldValue)
		}
		parent, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: parentTaskId", errors.ErrInvalidFieldValue)
		}
		if parent == taskID {
			return nil, errors.ErrInvalidParentTask
		}
		return parent, nil
	default:
		return value, nil
	}
}

// extractCategoryIDs pulls the category id list out of an update payload.
// Presence of the key, including an empty list, replaces all assignments.
func extractCategoryIDs(updates map[string]any) ([]uuid.UUID, bool, error) {
	raw, ok := updates["categories"]
	if !ok || raw == nil {
		return nil, false, nil
	}
	values, err := toStringSlice(raw)
	if err != nil {
		return nil, false, fmt.Errorf("%w: categories", errors.ErrInvalidFieldValue)
	}
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, false, fmt.Errorf("%w: categories", errors.ErrInvalidFieldValue)
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}

func toStringSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("not a string slice")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("not a string slice")
	}
}
