package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/cache"
	"taskboard-api/internal/database"
	"taskboard-api/internal/handler"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	JWTSecret      string
	TokenLifetime  time.Duration
	AllowedOrigins []string
	BasePath       string
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "taskboard-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if !database.IsConnected() {
			c.JSON(503, gin.H{"status": "not ready", "service": "taskboard-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "taskboard-api"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	boardRepo := repository.NewBoardRepository(cfg.DB)
	categoryRepo := repository.NewCategoryRepository(cfg.DB)
	customFieldRepo := repository.NewCustomFieldRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	eventLogRepo := repository.NewEventLogRepository(cfg.DB)
	settingRepo := repository.NewSystemSettingRepository(cfg.DB)

	// Initialize cache and services
	taskCache := cache.NewTaskCache(cfg.Redis, cfg.Logger)
	auditService := service.NewAuditService(eventLogRepo, userRepo, cfg.Metrics, cfg.Logger)
	taskService := service.NewTaskService(taskRepo, categoryRepo, customFieldRepo, auditService, taskCache, cfg.Metrics, cfg.Logger)
	categoryService := service.NewCategoryService(categoryRepo, boardRepo, taskRepo, auditService, taskCache, cfg.Logger)
	customFieldService := service.NewCustomFieldService(customFieldRepo, boardRepo, auditService, cfg.Logger)
	boardService := service.NewBoardService(boardRepo, categoryRepo, customFieldRepo, taskRepo, auditService, taskCache, cfg.Logger)
	userService := service.NewUserService(userRepo, settingRepo, auditService, cfg.JWTSecret, cfg.TokenLifetime, cfg.Logger)
	settingService := service.NewSettingService(settingRepo, auditService, cfg.Logger)

	// Initialize handlers
	taskHandler := handler.NewTaskHandler(taskService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	customFieldHandler := handler.NewCustomFieldHandler(customFieldService)
	boardHandler := handler.NewBoardHandler(boardService, taskService)
	eventLogHandler := handler.NewEventLogHandler(auditService)
	userHandler := handler.NewUserHandler(userService)
	settingHandler := handler.NewSettingHandler(settingService)

	// API routes group
	api := r.Group(cfg.BasePath)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminMiddleware := middleware.RequireAdmin()

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
	}

	// Board routes
	boards := api.Group("/boards")
	boards.Use(authMiddleware)
	{
		boards.POST("", boardHandler.CreateBoard)
		boards.GET("", boardHandler.GetBoards)
		boards.GET("/:boardId", boardHandler.GetBoard)
		boards.PATCH("/:boardId", boardHandler.UpdateBoard)
		boards.DELETE("/:boardId", boardHandler.DeleteBoard)
		boards.GET("/:boardId/categories", categoryHandler.GetCategoriesByBoard)
		boards.GET("/:boardId/custom-fields", customFieldHandler.GetCustomFieldsByBoard)
		boards.GET("/:boardId/archived-tasks", boardHandler.GetArchivedTasks)
	}

	// Category routes
	categories := api.Group("/categories")
	categories.Use(authMiddleware)
	{
		categories.POST("", categoryHandler.CreateCategory)
		categories.PATCH("/:categoryId", categoryHandler.UpdateCategory)
		categories.DELETE("/:categoryId", categoryHandler.DeleteCategory)
		categories.GET("/:categoryId/tasks", taskHandler.GetTasksByCategory)
	}

	// Custom field routes
	customFields := api.Group("/custom-fields")
	customFields.Use(authMiddleware)
	{
		customFields.POST("", customFieldHandler.CreateCustomField)
		customFields.PATCH("/:fieldId", customFieldHandler.UpdateCustomField)
		customFields.DELETE("/:fieldId", customFieldHandler.DeleteCustomField)
	}

	// Task routes
	tasks := api.Group("/tasks")
	tasks.Use(authMiddleware)
	{
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:taskId", taskHandler.GetTask)
		tasks.PATCH("/:taskId", taskHandler.UpdateTask)
		tasks.DELETE("/:taskId", taskHandler.DeleteTask)
		tasks.POST("/:taskId/archive", taskHandler.ArchiveTask)
		tasks.POST("/:taskId/restore", taskHandler.RestoreTask)
		tasks.POST("/:taskId/move", taskHandler.MoveTask)
	}

	// Event log routes (admin only)
	eventLog := api.Group("/event-log")
	eventLog.Use(authMiddleware, adminMiddleware)
	{
		eventLog.GET("", eventLogHandler.QueryEventLog)
		eventLog.GET("/summary", eventLogHandler.GetEventLogSummary)
	}

	// User routes
	users := api.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/:userId", userHandler.GetUser)
		users.PATCH("/:userId", adminMiddleware, userHandler.UpdateUser)
		users.DELETE("/:userId", adminMiddleware, userHandler.DeleteUser)
	}

	// System setting routes (admin only)
	settings := api.Group("/settings")
	settings.Use(authMiddleware, adminMiddleware)
	{
		settings.GET("", settingHandler.GetSettings)
		settings.GET("/:key", settingHandler.GetSetting)
		settings.PUT("/:key", settingHandler.UpdateSetting)
	}

	return r
}
