package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/database"
	"github.com/yukikurage/company-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *GormUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	return r.first(ctx, "email = ? OR username = ?", email, username)
}

func (r *GormUserRepository) first(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Search applies the filter predicates, then ordering and pagination
func (r *GormUserRepository) Search(ctx context.Context, filter UserFilter) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Scopes(
			database.Contains("email", filter.Email),
			database.Contains("username", filter.Username),
			database.Contains("first_name", filter.FirstName),
			database.Contains("last_name", filter.LastName),
			database.Equals("company_id", filter.CompanyID),
			database.Equals("is_admin", filter.IsAdmin),
			database.Equals("is_active", filter.IsActive),
			database.OrderBy(filter.SearchParams),
			database.Paginate(filter.SearchParams),
		).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}
