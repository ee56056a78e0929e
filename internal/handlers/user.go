package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/dto"
	apierrors "github.com/yukikurage/company-task-api/internal/errors"
	"github.com/yukikurage/company-task-api/internal/middleware"
	"github.com/yukikurage/company-task-api/internal/repository"
	"github.com/yukikurage/company-task-api/internal/services"
	"github.com/yukikurage/company-task-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type createUserRequest struct {
	Username  string     `json:"username" binding:"required,min=3,max=255"`
	Password  string     `json:"password" binding:"required,min=8,max=255"`
	Email     string     `json:"email" binding:"required,min=3,max=255"`
	FirstName string     `json:"first_name" binding:"required,min=3,max=255"`
	LastName  string     `json:"last_name" binding:"required,min=3,max=255"`
	IsAdmin   *bool      `json:"is_admin"`
	IsActive  *bool      `json:"is_active"`
	CompanyID *uuid.UUID `json:"company_id" binding:"required"`
}

type updateUserRequest struct {
	Password  *string    `json:"password" binding:"omitempty,min=8,max=255"`
	Email     *string    `json:"email" binding:"omitempty,min=3,max=255"`
	FirstName *string    `json:"first_name" binding:"omitempty,min=3,max=255"`
	LastName  *string    `json:"last_name" binding:"omitempty,min=3,max=255"`
	IsAdmin   *bool      `json:"is_admin"`
	IsActive  *bool      `json:"is_active"`
	CompanyID *uuid.UUID `json:"company_id"`
}

// ListUsers returns every user
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns a user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := middleware.PathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser creates a user inside an existing company
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInputWithDetails(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &actor, services.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   req.IsAdmin,
		IsActive:  req.IsActive,
		CompanyID: *req.CompanyID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser changes the fields present in the request body
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	id, ok := middleware.PathID(c, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInputWithDetails(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), actor, id, services.UpdateUserInput{
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   req.IsAdmin,
		IsActive:  req.IsActive,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// SearchUsers filters by name fields, company and flags
func (h *UserHandler) SearchUsers(c *gin.Context) {
	filter, err := userFilterFromQuery(c)
	if err != nil {
		apierrors.InvalidInput(c, message(err))
		return
	}

	users, err := h.userService.SearchUsers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

func userFilterFromQuery(c *gin.Context) (repository.UserFilter, error) {
	params, err := utils.GetSearchParams(c)
	if err != nil {
		return repository.UserFilter{}, err
	}
	companyID, err := queryUUID(c, "company_id")
	if err != nil {
		return repository.UserFilter{}, err
	}
	isAdmin, err := queryBool(c, "is_admin")
	if err != nil {
		return repository.UserFilter{}, err
	}
	isActive, err := queryBool(c, "is_active")
	if err != nil {
		return repository.UserFilter{}, err
	}

	return repository.UserFilter{
		Email:        queryString(c, "email"),
		Username:     queryString(c, "username"),
		FirstName:    queryString(c, "first_name"),
		LastName:     queryString(c, "last_name"),
		CompanyID:    companyID,
		IsAdmin:      isAdmin,
		IsActive:     isActive,
		SearchParams: params,
	}, nil
}
