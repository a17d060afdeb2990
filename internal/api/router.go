package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/trackerhq/bugtracker/docs"
	"github.com/trackerhq/bugtracker/internal/api/handler"
	"github.com/trackerhq/bugtracker/internal/api/middleware"
	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
	"github.com/trackerhq/bugtracker/internal/core/service"
	"github.com/trackerhq/bugtracker/internal/infrastructure/config"
	mongodb "github.com/trackerhq/bugtracker/internal/infrastructure/db/mongo"
	redisdb "github.com/trackerhq/bugtracker/internal/infrastructure/db/redis"
	"github.com/trackerhq/bugtracker/pkg/logger"
)

// allRoles grants read access to every authenticated tracker role.
var allRoles = []domain.Role{domain.RoleAdmin, domain.RoleDeveloper, domain.RoleTester, domain.RoleStakeholder}

// NewRouter builds and returns the Echo instance with all routes registered,
// plus the notification dispatch port so the caller can run its workers.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, dispatcher ports.NotificationDispatcher) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bugtracker"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	bugRepo := mongodb.NewBugRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	qualityRepo := mongodb.NewQualityRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	attachmentRepo := mongodb.NewAttachmentRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	revocationStore := redisdb.NewRevocationStore(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, revocationStore, cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	bugService := service.NewBugService(bugRepo, projectRepo, dispatcher, logger.Get())
	projectService := service.NewProjectService(projectRepo, userRepo)
	userService := service.NewUserService(userRepo)
	qualityService := service.NewQualityService(qualityRepo, projectRepo)
	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	attachmentService := service.NewAttachmentService(attachmentRepo, bugRepo, cfg.UploadDir, logger.Get())
	reportService := service.NewReportService(reportRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	bugHandler := handler.NewBugHandler(bugService)
	projectHandler := handler.NewProjectHandler(projectService)
	userHandler := handler.NewUserHandler(userService)
	qualityHandler := handler.NewQualityHandler(qualityService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	reportHandler := handler.NewReportHandler(reportService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	auth := middleware.Auth(cfg.JWTSecret, revocationStore)

	// --- Auth routes (no bearer token required) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout, auth)

	// --- Health probes and operational surfaces ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", auth)

	// --- Bugs ---
	bugs := api.Group("/bugs")
	bugs.POST("/add", bugHandler.Add, middleware.RBAC(domain.RoleAdmin, domain.RoleTester))
	bugs.GET("", bugHandler.GetAll, middleware.RBAC(allRoles...))
	bugs.GET("/paginated", bugHandler.ListPaginated, middleware.RBAC(allRoles...))
	bugs.GET("/:id", bugHandler.GetByID, middleware.RBAC(allRoles...))
	bugs.GET("/project/:projectId", bugHandler.GetByProject, middleware.RBAC(allRoles...))
	bugs.PUT("/:id", bugHandler.Update, middleware.RBAC(domain.RoleAdmin, domain.RoleDeveloper, domain.RoleTester))
	bugs.DELETE("/:id", bugHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Projects ---
	projects := api.Group("/projects")
	projects.POST("/add", projectHandler.Add, middleware.RBAC(domain.RoleAdmin))
	projects.GET("", projectHandler.GetAll, middleware.RBAC(domain.RoleAdmin, domain.RoleStakeholder))
	projects.GET("/:projectId", projectHandler.GetByID, middleware.RBAC(domain.RoleAdmin, domain.RoleStakeholder))
	projects.PUT("/update", projectHandler.Update, middleware.RBAC(domain.RoleAdmin))
	projects.DELETE("/delete/:projectId", projectHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Users (admin only) ---
	users := api.Group("/users", middleware.RBAC(domain.RoleAdmin))
	users.POST("", userHandler.Create)
	users.GET("", userHandler.GetAll)
	users.GET("/:id", userHandler.GetByID)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Quality metrics ---
	qualityWrite := middleware.RBAC(domain.RoleAdmin, domain.RoleDeveloper, domain.RoleTester)
	qualities := api.Group("/qualities")
	qualities.POST("", qualityHandler.Add, qualityWrite)
	qualities.GET("", qualityHandler.GetAll, middleware.RBAC(allRoles...))
	qualities.GET("/:id", qualityHandler.GetByID, middleware.RBAC(allRoles...))
	qualities.GET("/project/:projectId", qualityHandler.GetByProject, middleware.RBAC(allRoles...))
	qualities.PUT("/:id", qualityHandler.Update, qualityWrite)
	qualities.DELETE("/:id", qualityHandler.Delete, qualityWrite)

	// --- Notifications ---
	notificationWrite := middleware.RBAC(domain.RoleAdmin, domain.RoleDeveloper, domain.RoleTester)
	notifications := api.Group("/notifications")
	notifications.POST("", notificationHandler.Add, notificationWrite)
	notifications.GET("", notificationHandler.GetAll, middleware.RBAC(allRoles...))
	notifications.GET("/:id", notificationHandler.GetByID, middleware.RBAC(allRoles...))
	notifications.GET("/user/:userId", notificationHandler.GetByUser, middleware.RBAC(allRoles...))
	notifications.PUT("/:id", notificationHandler.Update, notificationWrite)
	notifications.DELETE("/:id", notificationHandler.Delete, notificationWrite)

	// --- Bug attachments ---
	attachmentWrite := middleware.RBAC(domain.RoleAdmin, domain.RoleDeveloper, domain.RoleTester)
	attachments := api.Group("/bugattachments")
	attachments.POST("/upload/:bugId", attachmentHandler.Upload, attachmentWrite)
	attachments.GET("", attachmentHandler.GetAll, middleware.RBAC(allRoles...))
	attachments.GET("/:id", attachmentHandler.GetByID, middleware.RBAC(allRoles...))
	attachments.GET("/bug/:bugId", attachmentHandler.GetByBug, middleware.RBAC(allRoles...))
	attachments.GET("/download/:id", attachmentHandler.Download, middleware.RBAC(allRoles...))
	attachments.DELETE("/:id", attachmentHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Reports ---
	reports := api.Group("/reports")
	reports.POST("", reportHandler.Create, middleware.RBAC(domain.RoleAdmin))
	reports.GET("", reportHandler.GetAll, middleware.RBAC(allRoles...))
	reports.GET("/:id", reportHandler.GetByID, middleware.RBAC(allRoles...))
	reports.GET("/type/:type", reportHandler.GetByType, middleware.RBAC(allRoles...))
	reports.GET("/creator/:username", reportHandler.GetByCreator, middleware.RBAC(allRoles...))
	reports.GET("/download/:id", reportHandler.Download, middleware.RBAC(domain.RoleAdmin, domain.RoleStakeholder))
	reports.PUT("/:id", reportHandler.Update, middleware.RBAC(domain.RoleAdmin))
	reports.DELETE("/:id", reportHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	return e
}
