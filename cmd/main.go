package main

import (
	"jobboard-service/internal/handler"
	"jobboard-service/internal/middleware"
	"jobboard-service/pkg/config"
	"jobboard-service/pkg/database"
	"jobboard-service/pkg/jwtutil"
	"jobboard-service/pkg/logger"
	"jobboard-service/pkg/storage"
	"jobboard-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting job board service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize upload storage
	store, err := storage.New(&cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize upload storage", zap.Error(err))
	}
	handler.SetFileStore(store)
	log.Info("Upload storage initialized", zap.String("dir", cfg.Storage.Dir))

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication
	auth := e.Group("/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.GET("/user", handler.GetAuthenticatedUser, middleware.AuthMiddleware)
	auth.POST("/logout", handler.Logout, middleware.AuthMiddleware)
	auth.POST("/logout-all", handler.LogoutAll, middleware.AuthMiddleware)

	// Onboarding - the stage machine, all behind auth
	onboarding := e.Group("/onboarding")
	onboarding.Use(middleware.AuthMiddleware)
	onboarding.GET("/stage", handler.GetCurrentStage)
	onboarding.PUT("/stage", handler.UpdateOnboardingStage)
	onboarding.GET("/status", handler.GetOnboardingStatus)
	onboarding.PUT("/status", handler.UpdateOnboardingStatus)
	onboarding.GET("/stage/next", handler.GetNextStage)
	onboarding.GET("/stage/previous", handler.GetPreviousStage)
	onboarding.POST("/stage/next", handler.MoveToNextStage)
	onboarding.POST("/stage/previous", handler.MoveToPreviousStage)
	onboarding.POST("/welcome", handler.OnboardingWelcome)
	onboarding.POST("/profile", handler.OnboardingProfile)
	onboarding.POST("/company", handler.OnboardingCompany)
	onboarding.POST("/complete", handler.OnboardingComplete)
	onboarding.GET("/:stage", handler.OnboardingIndex)

	// Boards - public reads, owner-only writes
	boards := e.Group("/boards")
	boards.GET("", handler.ListBoards)
	boards.GET("/find/by/user/:userId", handler.GetBoardsByUserID)
	boards.GET("/find/by/company/:companyId", handler.GetBoardsByCompanyID)
	boards.GET("/find/by/slug/:slug", handler.GetBoardBySlug)
	boards.GET("/:id", handler.GetBoard)
	boards.GET("/:id/trashed", handler.GetBoardTrashedStatus)
	boards.POST("/create", handler.CreateBoard, middleware.AuthMiddleware)
	boards.PUT("/update/:id", handler.UpdateBoard, middleware.AuthMiddleware)
	boards.DELETE("/delete/:id", handler.DeleteBoard, middleware.AuthMiddleware)
	boards.POST("/restore/:id", handler.RestoreBoard, middleware.AuthMiddleware)
	boards.DELETE("/purge/:id", handler.PurgeBoard, middleware.AuthMiddleware)

	// Companies
	companies := e.Group("/companies")
	companies.GET("/find/by/slug/:slug", handler.GetCompanyBySlug)
	companies.GET("/:id", handler.GetCompany)
	companies.GET("/:id/trashed", handler.GetCompanyTrashedStatus)
	companies.POST("/create", handler.CreateCompany, middleware.AuthMiddleware)
	companies.PUT("/update/:id", handler.UpdateCompany, middleware.AuthMiddleware)
	companies.DELETE("/delete/:id", handler.TrashCompany, middleware.AuthMiddleware)
	companies.POST("/restore/:id", handler.RestoreCompany, middleware.AuthMiddleware)
	companies.DELETE("/purge/:id", handler.PurgeCompany, middleware.AuthMiddleware)

	// Jobs and their pipeline stages
	jobs := e.Group("/jobs")
	jobs.GET("/find/by/board/:boardId", handler.GetJobsByBoardID)
	jobs.GET("/:id", handler.GetJob)
	jobs.GET("/:id/stages", handler.GetJobStages)
	jobs.POST("/create", handler.CreateJob, middleware.AuthMiddleware)
	jobs.PUT("/update/:id", handler.UpdateJob, middleware.AuthMiddleware)
	jobs.PUT("/publish/:id", handler.PublishJob, middleware.AuthMiddleware)
	jobs.DELETE("/delete/:id", handler.DeleteJob, middleware.AuthMiddleware)

	// Applications - submission is public, management is not
	applications := e.Group("/applications")
	applications.POST("/create", handler.CreateApplication)
	applications.GET("", handler.ListApplications, middleware.AuthMiddleware)
	applications.GET("/find/by/job/:jobId", handler.GetApplicationsByJobID, middleware.AuthMiddleware)
	applications.GET("/:id", handler.GetApplication, middleware.AuthMiddleware)
	applications.GET("/:id/trashed", handler.GetApplicationTrashedStatus, middleware.AuthMiddleware)
	applications.GET("/:id/stages", handler.GetApplicationStageLogs, middleware.AuthMiddleware)
	applications.PUT("/update/:id", handler.UpdateApplication, middleware.AuthMiddleware)
	applications.PUT("/:id/stage", handler.MoveApplicationStage, middleware.AuthMiddleware)
	applications.DELETE("/delete/:id", handler.TrashApplication, middleware.AuthMiddleware)
	applications.POST("/restore/:id", handler.RestoreApplication, middleware.AuthMiddleware)
	applications.DELETE("/purge/:id", handler.PurgeApplication, middleware.AuthMiddleware)

	// Files
	files := e.Group("/files")
	files.Use(middleware.AuthMiddleware)
	files.GET("", handler.ListFiles)
	files.GET("/:id", handler.GetFile)
	files.GET("/:id/type", handler.GetFileType)
	files.GET("/:id/name", handler.GetFileName)
	files.GET("/:id/path", handler.GetFilePath)
	files.GET("/:id/size", handler.GetFileSize)
	files.GET("/:id/extension", handler.GetFileExtension)
	files.GET("/:id/download", handler.DownloadFile)
	files.POST("/upload", handler.UploadFile)
	files.DELETE("/:id", handler.DeleteFile)

	// Heartbeats - a token is optional but recorded when present
	heartbeats := e.Group("/heartbeats")
	heartbeats.Use(middleware.OptionalAuth)
	heartbeats.GET("", handler.ListHeartbeats)
	heartbeats.POST("", handler.CreateHeartbeat)
	heartbeats.GET("/:id", handler.GetHeartbeat)
	heartbeats.PUT("/:id", handler.UpdateHeartbeat)
	heartbeats.DELETE("/:id", handler.DeleteHeartbeat)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
