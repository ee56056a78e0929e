package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/constants"
	"github.com/yukikurage/company-task-api/internal/dto"
	"github.com/yukikurage/company-task-api/internal/events"
	"github.com/yukikurage/company-task-api/internal/models"
	"github.com/yukikurage/company-task-api/internal/repository"
	"gorm.io/gorm"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	publisher events.Publisher
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, publisher events.Publisher) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Summary     string
	Description string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	UserID      uuid.UUID
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Summary     *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	UserID      *uuid.UUID
}

func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns the task when the actor owns it or is an admin
func (s *TaskService) GetTask(ctx context.Context, actor Actor, id uuid.UUID) (*models.Task, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !task.OwnedBy(actor.ID) {
		return nil, ErrTaskAccessDenied
	}
	return task, nil
}

// CreateTask creates a task for input.UserID. Creating an IN_PROGRESS task is
// subject to the owner's in-progress quota.
func (s *TaskService) CreateTask(ctx context.Context, actor Actor, input CreateTaskInput) (*models.Task, error) {
	if !actor.CanActFor(input.UserID) {
		return nil, ErrTaskCreateForbidden
	}
	if err := s.ensureUserExists(ctx, input.UserID); err != nil {
		return nil, err
	}

	ownerID := input.UserID
	task := &models.Task{
		Summary:     input.Summary,
		Description: input.Description,
		Status:      models.TaskStatusNotStarted,
		Priority:    models.TaskPriorityLow,
		UserID:      &ownerID,
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}

	var err error
	if task.Status == models.TaskStatusInProgress {
		err = s.taskRepo.CreateWithinQuota(ctx, task, constants.MaxInProgressTasks)
	} else {
		err = s.taskRepo.Create(ctx, task)
	}
	if err != nil {
		return nil, translateQuotaError(err, "failed to create task")
	}

	publish(ctx, s.publisher, &actor, events.New(events.TaskCreated, task.ID, dto.ToTaskDTO(*task)))
	return task, nil
}

// UpdateTask applies input to a task owned by the actor (or any task for an
// admin). Moving a task into IN_PROGRESS, or handing an IN_PROGRESS task to
// another user, is subject to the resulting owner's quota.
func (s *TaskService) UpdateTask(ctx context.Context, actor Actor, id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && !task.OwnedBy(actor.ID) {
		return nil, ErrTaskUpdateForbidden
	}

	ownerChanged := false
	if input.UserID != nil && !task.OwnedBy(*input.UserID) {
		if !actor.IsAdmin {
			return nil, ErrTaskReassign
		}
		if err := s.ensureUserExists(ctx, *input.UserID); err != nil {
			return nil, err
		}
		ownerID := *input.UserID
		task.UserID = &ownerID
		task.User = nil
		ownerChanged = true
	}

	statusChanged := input.Status != nil && *input.Status != task.Status
	if input.Summary != nil {
		task.Summary = *input.Summary
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}

	if task.Status == models.TaskStatusInProgress && (statusChanged || ownerChanged) {
		err = s.taskRepo.UpdateWithinQuota(ctx, task, constants.MaxInProgressTasks)
	} else {
		err = s.taskRepo.Update(ctx, task)
	}
	if err != nil {
		return nil, translateQuotaError(err, "failed to update task")
	}

	publish(ctx, s.publisher, &actor, events.New(events.TaskUpdated, task.ID, dto.ToTaskDTO(*task)))
	return task, nil
}

// SearchTasks searches every task for an admin. Other callers only see their
// own tasks: a missing user_id filter is narrowed to the caller and any other
// user_id is rejected.
func (s *TaskService) SearchTasks(ctx context.Context, actor Actor, filter repository.TaskFilter) ([]models.Task, error) {
	if !actor.IsAdmin {
		if filter.UserID != nil && *filter.UserID != actor.ID {
			return nil, ErrTaskSearchForbidden
		}
		self := actor.ID
		filter.UserID = &self
	}

	if err := validateSort(filter.SearchParams, models.Task{}.SortableFields()); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) findTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) ensureUserExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}

func translateQuotaError(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrInProgressLimitReached):
		return ErrInProgressLimit
	case errors.Is(err, repository.ErrOwnerNotFound):
		return ErrUserNotFound
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
