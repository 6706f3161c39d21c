package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/metrics"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// NewRouter wires repositories, services, and handlers onto a gin engine.
func NewRouter(db *gorm.DB, log *zap.Logger) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	identityService := services.NewIdentityService(userRepo, log.Named("identity"))
	authService := services.NewAuthService(userRepo, tokenRepo, log.Named("auth"))
	projectService := services.NewProjectService(projectRepo, taskRepo, log.Named("projects"))
	taskService := services.NewTaskService(taskRepo, projectRepo, log.Named("tasks"))

	authHandler := NewAuthHandler(identityService, authService)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log.Named("http")),
		metrics.Middleware(),
	)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			_ = c.Error(err)
			apierrors.ServiceUnavailable(c, "Database unreachable")
			return
		}
		apierrors.Success(c, http.StatusOK, gin.H{
			"message": "Project Tracker API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Public routes
	r.POST("/signup", authHandler.Signup)
	r.POST("/auth", authHandler.Login)

	// Protected routes
	authed := r.Group("")
	authed.Use(middleware.RequireAuth(authService))
	{
		authed.POST("/logout", authHandler.Logout)
		authed.GET("/me", authHandler.GetCurrentUser)

		projects := authed.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireIDParam(), projectHandler.GetProject)
			projects.PUT("/:id", middleware.RequireIDParam(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireIDParam(), projectHandler.DeleteProject)
		}

		tasks := authed.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireIDParam(), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireIDParam(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireIDParam(), taskHandler.DeleteTask)
		}
	}

	return r
}
