package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/dto"
	"github.com/yukikurage/company-task-api/internal/events"
	"github.com/yukikurage/company-task-api/internal/models"
	"github.com/yukikurage/company-task-api/internal/repository"
	"gorm.io/gorm"
)

// CompanyService handles company business logic
type CompanyService struct {
	companyRepo repository.CompanyRepository
	publisher   events.Publisher
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo repository.CompanyRepository, publisher events.Publisher) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		publisher:   publisher,
	}
}

// CreateCompanyInput represents input for creating a company
type CreateCompanyInput struct {
	Name        string
	Description string
	Mode        *models.CompanyMode
	Rating      *models.Rating
}

// UpdateCompanyInput holds the fields to change; nil fields are left alone
type UpdateCompanyInput struct {
	Name        *string
	Description *string
	Mode        *models.CompanyMode
	Rating      *models.Rating
}

func (s *CompanyService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) CreateCompany(ctx context.Context, actor Actor, input CreateCompanyInput) (*models.Company, error) {
	if err := s.ensureNameFree(ctx, input.Name, uuid.Nil); err != nil {
		return nil, err
	}

	company := &models.Company{
		Name:        input.Name,
		Description: input.Description,
		Mode:        models.CompanyModeActive,
		Rating:      models.RatingNotRated,
	}
	if input.Mode != nil {
		company.Mode = *input.Mode
	}
	if input.Rating != nil {
		company.Rating = *input.Rating
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCompanyNameTaken
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	publish(ctx, s.publisher, &actor, events.New(events.CompanyCreated, company.ID, dto.ToCompanyDTO(*company)))
	return company, nil
}

func (s *CompanyService) UpdateCompany(ctx context.Context, actor Actor, id uuid.UUID, input UpdateCompanyInput) (*models.Company, error) {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := s.ensureNameFree(ctx, *input.Name, company.ID); err != nil {
			return nil, err
		}
		company.Name = *input.Name
	}
	if input.Description != nil {
		company.Description = *input.Description
	}
	if input.Mode != nil {
		company.Mode = *input.Mode
	}
	if input.Rating != nil {
		company.Rating = *input.Rating
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCompanyNameTaken
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	publish(ctx, s.publisher, &actor, events.New(events.CompanyUpdated, company.ID, dto.ToCompanyDTO(*company)))
	return company, nil
}

func (s *CompanyService) SearchCompanies(ctx context.Context, filter repository.CompanyFilter) ([]models.Company, error) {
	if err := validateSort(filter.SearchParams, models.Company{}.SortableFields()); err != nil {
		return nil, err
	}

	companies, err := s.companyRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search companies: %w", err)
	}
	return companies, nil
}

// ensureNameFree fails when a company other than self already uses name.
func (s *CompanyService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.companyRepo.FindByName(ctx, name)
	switch {
	case err == nil:
		if existing.ID != self {
			return ErrCompanyNameTaken
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check company name: %w", err)
	}
}
