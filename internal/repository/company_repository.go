package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/database"
	"github.com/yukikurage/company-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

func (r *GormCompanyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *GormCompanyRepository) FindByName(ctx context.Context, name string) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *GormCompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.WithContext(ctx).Order("created_at").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Search applies the filter predicates, then ordering and pagination
func (r *GormCompanyRepository) Search(ctx context.Context, filter CompanyFilter) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.WithContext(ctx).
		Scopes(
			database.Contains("name", filter.Name),
			database.Contains("description", filter.Description),
			database.Equals("mode", filter.Mode),
			database.Equals("rating", filter.Rating),
			database.OrderBy(filter.SearchParams),
			database.Paginate(filter.SearchParams),
		).
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *GormCompanyRepository) Update(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(company).Error
}
