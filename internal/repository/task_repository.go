package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/database"
	"github.com/yukikurage/company-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *GormTaskRepository) CreateWithinQuota(ctx context.Context, task *models.Task, limit int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkInProgressQuota(tx, task, limit); err != nil {
			return err
		}
		return tx.Create(task).Error
	})
}

func (r *GormTaskRepository) UpdateWithinQuota(ctx context.Context, task *models.Task, limit int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkInProgressQuota(tx, task, limit); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(task).Error
	})
}

// checkInProgressQuota locks the owner row so concurrent writers for the same
// owner serialize on it, then counts the owner's other IN_PROGRESS tasks.
// SQLite has no row locks; its single writer gives the same guarantee.
func checkInProgressQuota(tx *gorm.DB, task *models.Task, limit int) error {
	if task.UserID == nil {
		return nil
	}

	var owner models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", *task.UserID).
		First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOwnerNotFound
	}
	if err != nil {
		return err
	}

	query := tx.Model(&models.Task{}).
		Where("user_id = ? AND status = ?", *task.UserID, models.TaskStatusInProgress)
	if task.ID != uuid.Nil {
		query = query.Where("id <> ?", task.ID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count >= int64(limit) {
		return ErrInProgressLimitReached
	}
	return nil
}

// FindByID finds a task by ID with its owner loaded
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Order("created_at").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Search applies the filter predicates, then ordering and pagination
func (r *GormTaskRepository) Search(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Scopes(
			database.Contains("summary", filter.Summary),
			database.Contains("description", filter.Description),
			database.Equals("status", filter.Status),
			database.Equals("priority", filter.Priority),
			database.Equals("user_id", filter.UserID),
			database.OrderBy(filter.SearchParams),
			database.Paginate(filter.SearchParams),
		).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}
