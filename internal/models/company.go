package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID          uuid.UUID   `gorm:"type:char(36);primarykey" json:"id"`
	Name        string      `gorm:"type:varchar(255);uniqueIndex:uq_company_name;not null" json:"name"`
	Description string      `gorm:"type:varchar(255)" json:"description"`
	Mode        CompanyMode `gorm:"not null;index" json:"mode"`
	Rating      Rating      `gorm:"not null" json:"rating"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Relations
	Users []User `gorm:"foreignKey:CompanyID" json:"-"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// SortableFields lists the columns accepted as order_by in company searches.
func (Company) SortableFields() []string {
	return []string{"name", "description", "mode", "rating", "created_at", "updated_at"}
}
