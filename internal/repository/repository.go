package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/models"
	"github.com/yukikurage/company-task-api/internal/utils"
)

var (
	// ErrInProgressLimitReached is returned when saving a task would give its
	// owner more IN_PROGRESS tasks than allowed.
	ErrInProgressLimitReached = errors.New("task repository: in-progress limit reached")
	// ErrOwnerNotFound is returned when the task owner disappears before the quota check.
	ErrOwnerNotFound = errors.New("task repository: owner not found")
)

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)

	// FindByName finds a company with exactly this name
	FindByName(ctx context.Context, name string) (*models.Company, error)

	List(ctx context.Context) ([]models.Company, error)
	Search(ctx context.Context, filter CompanyFilter) ([]models.Company, error)
	Update(ctx context.Context, company *models.Company) error
}

// CompanyFilter holds the optional company search predicates
type CompanyFilter struct {
	Name        *string
	Description *string
	Mode        *models.CompanyMode
	Rating      *models.Rating
	utils.SearchParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByEmailOrUsername finds any user holding either identifier
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)

	List(ctx context.Context) ([]models.User, error)
	Search(ctx context.Context, filter UserFilter) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// UserFilter holds the optional user search predicates
type UserFilter struct {
	Email     *string
	Username  *string
	FirstName *string
	LastName  *string
	CompanyID *uuid.UUID
	IsAdmin   *bool
	IsActive  *bool
	utils.SearchParams
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error

	// CreateWithinQuota inserts task while holding a lock on its owner, failing
	// with ErrInProgressLimitReached when the owner already has limit
	// IN_PROGRESS tasks.
	CreateWithinQuota(ctx context.Context, task *models.Task, limit int) error

	// UpdateWithinQuota is CreateWithinQuota for an existing task; the task
	// itself is not counted.
	UpdateWithinQuota(ctx context.Context, task *models.Task, limit int) error

	// FindByID finds a task by ID with its owner loaded
	FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error)

	List(ctx context.Context) ([]models.Task, error)
	Search(ctx context.Context, filter TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
}

// TaskFilter holds the optional task search predicates
type TaskFilter struct {
	Summary     *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	UserID      *uuid.UUID
	utils.SearchParams
}
