package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/dto"
	apierrors "github.com/yukikurage/company-task-api/internal/errors"
	"github.com/yukikurage/company-task-api/internal/middleware"
	"github.com/yukikurage/company-task-api/internal/models"
	"github.com/yukikurage/company-task-api/internal/repository"
	"github.com/yukikurage/company-task-api/internal/services"
	"github.com/yukikurage/company-task-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type createTaskRequest struct {
	Summary     string               `json:"summary" binding:"required,max=255"`
	Description string               `json:"description" binding:"max=255"`
	Status      *models.TaskStatus   `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	UserID      *uuid.UUID           `json:"user_id" binding:"required"`
}

type updateTaskRequest struct {
	Summary     *string              `json:"summary" binding:"omitempty,min=1,max=255"`
	Description *string              `json:"description" binding:"omitempty,max=255"`
	Status      *models.TaskStatus   `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	UserID      *uuid.UUID           `json:"user_id"`
}

// ListTasks returns every task
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a task the caller owns, or any task for an admin
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	id, ok := middleware.PathID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInputWithDetails(c, "Invalid request body", err.Error())
		return
	}
	if !validEnum(c, req.Status, models.ErrInvalidTaskStatus) || !validEnum(c, req.Priority, models.ErrInvalidTaskPriority) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actor, services.CreateTaskInput{
		Summary:     req.Summary,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		UserID:      *req.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask changes the fields present in the request body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	id, ok := middleware.PathID(c, "id")
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInputWithDetails(c, "Invalid request body", err.Error())
		return
	}
	if !validEnum(c, req.Status, models.ErrInvalidTaskStatus) || !validEnum(c, req.Priority, models.ErrInvalidTaskPriority) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), actor, id, services.UpdateTaskInput{
		Summary:     req.Summary,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		UserID:      req.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// SearchTasks filters by summary, description, status, priority and owner.
// Non-admin callers only ever see their own tasks.
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	filter, err := taskFilterFromQuery(c)
	if err != nil {
		apierrors.InvalidInput(c, message(err))
		return
	}

	tasks, err := h.taskService.SearchTasks(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

func taskFilterFromQuery(c *gin.Context) (repository.TaskFilter, error) {
	params, err := utils.GetSearchParams(c)
	if err != nil {
		return repository.TaskFilter{}, err
	}
	status, err := queryEnum(c, "status", models.ParseTaskStatus)
	if err != nil {
		return repository.TaskFilter{}, err
	}
	priority, err := queryEnum(c, "priority", models.ParseTaskPriority)
	if err != nil {
		return repository.TaskFilter{}, err
	}
	userID, err := queryUUID(c, "user_id")
	if err != nil {
		return repository.TaskFilter{}, err
	}

	return repository.TaskFilter{
		Summary:      queryString(c, "summary"),
		Description:  queryString(c, "description"),
		Status:       status,
		Priority:     priority,
		UserID:       userID,
		SearchParams: params,
	}, nil
}
