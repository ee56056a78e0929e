package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:char(36);primarykey" json:"id"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	FirstName      string     `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName       string     `gorm:"type:varchar(255);not null" json:"last_name"`
	HashedPassword string     `gorm:"type:varchar(255);not null" json:"-"`
	IsActive       bool       `gorm:"not null" json:"is_active"`
	IsAdmin        bool       `gorm:"not null" json:"is_admin"`
	CompanyID      *uuid.UUID `gorm:"type:char(36);index" json:"company_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
	Tasks   []Task   `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SortableFields lists the columns accepted as order_by in user searches.
func (User) SortableFields() []string {
	return []string{
		"email", "username", "first_name", "last_name", "hashed_password",
		"is_active", "is_admin", "company_id", "created_at", "updated_at",
	}
}
