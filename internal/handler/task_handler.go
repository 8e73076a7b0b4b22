package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"accessibleos/internal/model"
	"accessibleos/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	tasks    service.TaskService
	identity *identityResolver
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(tasks service.TaskService, users service.UserService, authStub bool) *TaskHandler {
	return &TaskHandler{
		tasks:    tasks,
		identity: &identityResolver{users: users, authStub: authStub},
	}
}

// CreateTaskRequest is the task creation payload.
type CreateTaskRequest struct {
	Title             string     `json:"title" validate:"required,min=1,max=500"`
	Description       string     `json:"description" validate:"omitempty,max=2000"`
	Status            string     `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority          string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate           *time.Time `json:"dueDate"`
	EstimatedDuration *int       `json:"estimatedDuration" validate:"omitempty,gt=0"`
	Tags              []string   `json:"tags"`
	ParentTaskID      *string    `json:"parentTaskId" validate:"omitempty,uuid"`
	SortOrder         int        `json:"sortOrder"`
	Categories        []string   `json:"categories" validate:"omitempty,dive,uuid"`
}

// ListTasks godoc
// @Summary List tasks with filtering and pagination
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param categoryId query string false "Category filter"
// @Param parentTaskId query string false "Parent filter; 'null' selects root tasks"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Param sortBy query string false "Sort key (default createdAt)"
// @Param sortOrder query string false "asc or desc (default desc)"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	opts := service.ListTasksOptions{
		Status:    c.QueryParam("status"),
		Priority:  c.QueryParam("priority"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid categoryId")
		}
		opts.CategoryID = &id
	}
	if c.QueryParams().Has("parentTaskId") {
		opts.FilterParent = true
		if raw := c.QueryParam("parentTaskId"); raw != "" && raw != "null" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid parentTaskId")
			}
			opts.ParentTaskID = &id
		}
	}
	if page, err := intQueryParam(c, "page"); err == nil {
		opts.Page = page
	}
	if limit, err := intQueryParam(c, "limit"); err == nil {
		opts.Limit = limit
	}

	result, err := h.tasks.GetTasks(c.Request().Context(), user.ID, opts)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"items":      result.Items,
		"total":      result.Total,
		"page":       result.Page,
		"limit":      result.Limit,
		"totalPages": result.TotalPages,
	})
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body CreateTaskRequest true "Task payload"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.CreateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		Status:            model.TaskStatus(req.Status),
		Priority:          model.TaskPriority(req.Priority),
		DueDate:           req.DueDate,
		EstimatedDuration: req.EstimatedDuration,
		Tags:              req.Tags,
		SortOrder:         req.SortOrder,
	}
	if req.ParentTaskID != nil {
		parent, err := uuid.Parse(*req.ParentTaskID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid parentTaskId")
		}
		input.ParentTaskID = &parent
	}
	for _, raw := range req.Categories {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
		}
		input.CategoryIDs = append(input.CategoryIDs, id)
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), user.ID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    task,
		Message: "Task created successfully",
	})
}

// GetTask godoc
// @Summary Get a task by id
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	task, err := h.tasks.GetTaskByID(c.Request().Context(), user.ID, taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Success: true, Data: task})
}

// UpdateTask godoc
// @Summary Partially update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param updates body object true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	updates := map[string]any{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), user.ID, taskID, updates)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    task,
		Message: "Task updated successfully",
	})
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), user.ID, taskID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Success: true, Message: "Task deleted successfully"})
}

func intQueryParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, echo.ErrNotFound
	}
	var n int
	if err := echo.QueryParamsBinder(c).Int(name, &n).BindError(); err != nil {
		return 0, err
	}
	return n, nil
}
