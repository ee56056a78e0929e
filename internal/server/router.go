package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-task-api/internal/auth"
	"github.com/yukikurage/company-task-api/internal/events"
	"github.com/yukikurage/company-task-api/internal/handlers"
	"github.com/yukikurage/company-task-api/internal/middleware"
	"github.com/yukikurage/company-task-api/internal/repository"
	"github.com/yukikurage/company-task-api/internal/services"
	"gorm.io/gorm"
)

// Deps are the long-lived collaborators the router is built from.
type Deps struct {
	DB        *gorm.DB
	Tokens    *auth.TokenService
	Publisher events.Publisher
	Logger    *slog.Logger
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(deps Deps) *gin.Engine {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	companyRepo := repository.NewCompanyRepository(deps.DB)
	userRepo := repository.NewUserRepository(deps.DB)
	taskRepo := repository.NewTaskRepository(deps.DB)

	companyService := services.NewCompanyService(companyRepo, publisher)
	userService := services.NewUserService(userRepo, companyRepo, publisher)
	taskService := services.NewTaskService(taskRepo, userRepo, publisher)
	authService := services.NewAuthService(userService, deps.Tokens)

	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "App is running",
		})
	}
	r.GET("/", health)
	r.GET("/health", health)

	requireAuth := middleware.RequireAuth(deps.Tokens)
	requireAdmin := middleware.RequireAdmin()

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/token", authHandler.Login)
		authRoutes.GET("/me", requireAuth, authHandler.GetCurrentUser)
	}

	companies := r.Group("/company", requireAuth)
	{
		companies.GET("", requireAdmin, companyHandler.ListCompanies)
		companies.POST("", requireAdmin, companyHandler.CreateCompany)
		companies.GET("/search", requireAdmin, companyHandler.SearchCompanies)
		companies.GET("/:id", middleware.RequireCompanyAccess("id"), companyHandler.GetCompany)
		companies.PUT("/:id", requireAdmin, companyHandler.UpdateCompany)
	}

	users := r.Group("/user", requireAuth)
	{
		users.GET("", requireAdmin, userHandler.ListUsers)
		users.POST("", requireAdmin, userHandler.CreateUser)
		users.GET("/search", requireAdmin, userHandler.SearchUsers)
		users.GET("/:id", middleware.RequireSelfOrAdmin("id"), userHandler.GetUser)
		users.PUT("/:id", middleware.RequireSelfOrAdmin("id"), userHandler.UpdateUser)
	}

	// Task ownership depends on the stored row, so it is checked in the service.
	tasks := r.Group("/task", requireAuth)
	{
		tasks.GET("", requireAdmin, taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/search", taskHandler.SearchTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
	}

	return r
}
