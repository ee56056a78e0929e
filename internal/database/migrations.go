package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/company-task-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates tables and the secondary indexes used by searches.
func Migrate(db *gorm.DB) error {
	slog.Info("running database migrations")
	err := db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	slog.Info("database migrations completed")
	return nil
}

// AddIndexes adds the sort-column indexes that are not declared on the models.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"companies", "idx_companies_created_at", "created_at"},
		{"users", "idx_users_created_at", "created_at"},
		{"users", "idx_users_last_name", "last_name"},
		{"tasks", "idx_tasks_created_at", "created_at"},
		{"tasks", "idx_tasks_priority", "priority"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Debug("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
