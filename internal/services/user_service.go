package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/auth"
	"github.com/yukikurage/company-task-api/internal/constants"
	"github.com/yukikurage/company-task-api/internal/dto"
	"github.com/yukikurage/company-task-api/internal/events"
	"github.com/yukikurage/company-task-api/internal/models"
	"github.com/yukikurage/company-task-api/internal/repository"
	"gorm.io/gorm"
)

// UserService handles user business logic
type UserService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	publisher   events.Publisher
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, publisher events.Publisher) *UserService {
	return &UserService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		publisher:   publisher,
	}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	IsAdmin   *bool
	IsActive  *bool
	CompanyID uuid.UUID
}

// UpdateUserInput holds the fields to change. IsAdmin, IsActive and CompanyID
// are privileged: a non-admin caller may only send them with their current
// values.
type UpdateUserInput struct {
	Password  *string
	Email     *string
	FirstName *string
	LastName  *string
	IsAdmin   *bool
	IsActive  *bool
	CompanyID *uuid.UUID
}

func (in UpdateUserInput) changesPrivilegedFields(user *models.User) bool {
	if in.IsAdmin != nil && *in.IsAdmin != user.IsAdmin {
		return true
	}
	if in.IsActive != nil && *in.IsActive != user.IsActive {
		return true
	}
	if in.CompanyID != nil && (user.CompanyID == nil || *in.CompanyID != *user.CompanyID) {
		return true
	}
	return false
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, actor *Actor, input CreateUserInput) (*models.User, error) {
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmailOrUsername(ctx, input.Email, input.Username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check user identifiers: %w", err)
	}

	if err := s.ensureCompanyExists(ctx, input.CompanyID); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	companyID := input.CompanyID
	user := &models.User{
		Username:       input.Username,
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		HashedPassword: hashedPassword,
		IsActive:       true,
		CompanyID:      &companyID,
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	publish(ctx, s.publisher, actor, events.New(events.UserCreated, user.ID, dto.ToUserDTO(*user)))
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, actor Actor, id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && input.changesPrivilegedFields(user) {
		return nil, ErrRestrictedField
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := s.userRepo.FindByEmail(ctx, *input.Email)
		if err == nil && existing.ID != user.ID {
			return nil, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = *input.Email
	}

	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashedPassword, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashedPassword
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.CompanyID != nil {
		if err := s.ensureCompanyExists(ctx, *input.CompanyID); err != nil {
			return nil, err
		}
		companyID := *input.CompanyID
		user.CompanyID = &companyID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	publish(ctx, s.publisher, &actor, events.New(events.UserUpdated, user.ID, dto.ToUserDTO(*user)))
	return user, nil
}

func (s *UserService) SearchUsers(ctx context.Context, filter repository.UserFilter) ([]models.User, error) {
	if err := validateSort(filter.SearchParams, models.User{}.SortableFields()); err != nil {
		return nil, err
	}

	users, err := s.userRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// Authenticate verifies credentials and returns the active user they belong to.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !auth.VerifyPassword(user.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	return user, nil
}

func (s *UserService) ensureCompanyExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.companyRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("failed to find company: %w", err)
	}
	return nil
}
