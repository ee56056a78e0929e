package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID          uuid.UUID    `gorm:"type:char(36);primarykey" json:"id"`
	Summary     string       `gorm:"type:varchar(255);not null" json:"summary"`
	Description string       `gorm:"type:varchar(255)" json:"description"`
	Status      TaskStatus   `gorm:"not null;index:idx_tasks_user_status,priority:2" json:"status"`
	Priority    TaskPriority `gorm:"not null" json:"priority"`
	UserID      *uuid.UUID   `gorm:"type:char(36);index:idx_tasks_user_status,priority:1" json:"user_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// SortableFields lists the columns accepted as order_by in task searches.
func (Task) SortableFields() []string {
	return []string{"summary", "description", "status", "priority", "user_id", "created_at", "updated_at"}
}

// OwnedBy reports whether the task is assigned to userID.
func (t *Task) OwnedBy(userID uuid.UUID) bool {
	return t.UserID != nil && *t.UserID == userID
}
