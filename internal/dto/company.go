package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/models"
)

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Mode        models.CompanyMode `json:"mode"`
	Rating      models.Rating      `json:"rating"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ToCompanyDTO converts a Company model to CompanyDTO
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Mode:        company.Mode,
		Rating:      company.Rating,
		CreatedAt:   company.CreatedAt,
		UpdatedAt:   company.UpdatedAt,
	}
}

func ToCompanyDTOs(companies []models.Company) []CompanyDTO {
	out := make([]CompanyDTO, len(companies))
	for i, company := range companies {
		out[i] = ToCompanyDTO(company)
	}
	return out
}
