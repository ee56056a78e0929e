package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-task-api/internal/dto"
	apierrors "github.com/yukikurage/company-task-api/internal/errors"
	"github.com/yukikurage/company-task-api/internal/middleware"
	"github.com/yukikurage/company-task-api/internal/models"
	"github.com/yukikurage/company-task-api/internal/repository"
	"github.com/yukikurage/company-task-api/internal/services"
	"github.com/yukikurage/company-task-api/internal/utils"
)

type CompanyHandler struct {
	companyService *services.CompanyService
}

func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

type createCompanyRequest struct {
	Name        string              `json:"name" binding:"required,min=3,max=255"`
	Description string              `json:"description" binding:"required,min=3,max=255"`
	Mode        *models.CompanyMode `json:"mode"`
	Rating      *models.Rating      `json:"rating"`
}

type updateCompanyRequest struct {
	Name        *string             `json:"name" binding:"omitempty,min=3,max=255"`
	Description *string             `json:"description" binding:"omitempty,min=3,max=255"`
	Mode        *models.CompanyMode `json:"mode"`
	Rating      *models.Rating      `json:"rating"`
}

// ListCompanies returns every company
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyDTOs(companies))
}

// GetCompany returns a company by ID
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := middleware.PathID(c, "id")
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

// CreateCompany creates a new company
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInputWithDetails(c, "Invalid request body", err.Error())
		return
	}
	if !validEnum(c, req.Mode, models.ErrInvalidCompanyMode) || !validEnum(c, req.Rating, models.ErrInvalidRating) {
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), actor, services.CreateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Mode:        req.Mode,
		Rating:      req.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCompanyDTO(*company))
}

// UpdateCompany changes the fields present in the request body
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	id, ok := middleware.PathID(c, "id")
	if !ok {
		return
	}

	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInputWithDetails(c, "Invalid request body", err.Error())
		return
	}
	if !validEnum(c, req.Mode, models.ErrInvalidCompanyMode) || !validEnum(c, req.Rating, models.ErrInvalidRating) {
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), actor, id, services.UpdateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Mode:        req.Mode,
		Rating:      req.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

// SearchCompanies filters by name, description, mode and rating
func (h *CompanyHandler) SearchCompanies(c *gin.Context) {
	filter, err := companyFilterFromQuery(c)
	if err != nil {
		apierrors.InvalidInput(c, message(err))
		return
	}

	companies, err := h.companyService.SearchCompanies(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyDTOs(companies))
}

func companyFilterFromQuery(c *gin.Context) (repository.CompanyFilter, error) {
	params, err := utils.GetSearchParams(c)
	if err != nil {
		return repository.CompanyFilter{}, err
	}
	mode, err := queryEnum(c, "mode", models.ParseCompanyMode)
	if err != nil {
		return repository.CompanyFilter{}, err
	}
	rating, err := queryEnum(c, "rating", models.ParseRating)
	if err != nil {
		return repository.CompanyFilter{}, err
	}

	return repository.CompanyFilter{
		Name:         queryString(c, "name"),
		Description:  queryString(c, "description"),
		Mode:         mode,
		Rating:       rating,
		SearchParams: params,
	}, nil
}

// validEnum writes a 422 and returns false when a supplied enum is out of range.
func validEnum[T interface{ Valid() bool }](c *gin.Context, value *T, errInvalid error) bool {
	if value == nil || (*value).Valid() {
		return true
	}
	apierrors.InvalidInput(c, message(errInvalid))
	return false
}
