package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/gwynnn297/SmartSurvey-sub001/api/swagger"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/handler"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/middleware"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/repository"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/service"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/cache"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/config"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/database"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/logger"
	corsmiddleware "github.com/gwynnn297/SmartSurvey-sub001/pkg/middleware/cors"
	reqidmiddleware "github.com/gwynnn297/SmartSurvey-sub001/pkg/middleware/requestid"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/storage"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/validation"
)

// @title SmartSurvey API
// @version 1.0.0
// @description Survey management backend: surveys, questions, sharing, statistics.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	store, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.JWT.Secret, cfg.Uploads.ShareLinkTTL)

	validate := validation.New()

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	optionRepo := repository.NewOptionRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	fileRepo := repository.NewFileRepository(db)
	statisticsRepo := repository.NewStatisticsRepository(db)
	responseRepo := repository.NewResponseRepository(db)

	authSvc := service.NewAuthService(userRepo, activityRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	profileSvc := service.NewProfileService(userRepo, validate, logr)
	categorySvc := service.NewCategoryService(categoryRepo, validate, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, logr)
	surveySvc := service.NewSurveyService(surveyRepo, permissionRepo, categoryRepo, activityRepo, cacheSvc, validate, logr)
	permissionSvc := service.NewPermissionService(permissionRepo, surveyRepo, userRepo, teamRepo, notificationSvc, validate, logr)
	questionSvc := service.NewQuestionService(questionRepo, optionRepo, surveyRepo, permissionRepo, activityRepo, validate, logr)
	optionSvc := service.NewOptionService(optionRepo, questionRepo, surveyRepo, permissionRepo, validate, logr)
	teamSvc := service.NewTeamService(teamRepo, userRepo, notificationSvc, validate, logr)
	dashboardSvc := service.NewDashboardService(surveyRepo, permissionRepo, teamRepo, activityRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	fileSvc := service.NewFileService(fileRepo, store, signer, cfg.Uploads, logr)
	statisticsSvc := service.NewStatisticsService(statisticsRepo, surveyRepo, permissionRepo, logr)
	responseSvc := service.NewResponseService(responseRepo, surveyRepo, questionRepo, optionRepo, activityRepo, notificationSvc, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	userHandler := handler.NewUserHandler(userSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	surveyHandler := handler.NewSurveyHandler(surveySvc, permissionSvc)
	questionHandler := handler.NewQuestionHandler(questionSvc)
	optionHandler := handler.NewOptionHandler(optionSvc)
	teamHandler := handler.NewTeamHandler(teamSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	fileHandler := handler.NewFileHandler(fileSvc)
	statisticsHandler := handler.NewStatisticsHandler(statisticsSvc)
	responseHandler := handler.NewResponseHandler(responseSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
		auth.POST("/change-password", middleware.JWT(authSvc), authHandler.ChangePassword)
	}

	api.GET("/files/download", fileHandler.DownloadShared)

	// Published surveys accept responses without an account. Claims are
	// attached when a valid token is sent so submissions get attributed.
	api.POST("/surveys/:id/responses", middleware.OptionalJWT(authSvc), responseHandler.Submit)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.GET("/profile", profileHandler.Get)
		protected.PUT("/profile", profileHandler.Update)

		users := protected.Group("/users")
		{
			users.GET("", middleware.RequireRoles(models.RoleAdmin), userHandler.List)
			users.POST("", middleware.RequireRoles(models.RoleAdmin), userHandler.Create)
			users.GET("/:id", middleware.RBAC(string(models.RoleAdmin), "SELF"), userHandler.Get)
			users.PUT("/:id", middleware.RBAC(string(models.RoleAdmin), "SELF"), userHandler.Update)
			users.PATCH("/:id/status", middleware.RequireRoles(models.RoleAdmin), userHandler.UpdateStatus)
			users.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.Delete)
		}

		categories := protected.Group("/categories")
		{
			categories.POST("", categoryHandler.Create)
			categories.GET("", categoryHandler.List)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		surveys := protected.Group("/surveys")
		{
			surveys.POST("", surveyHandler.Create)
			surveys.GET("", surveyHandler.List)
			surveys.GET("/:id", surveyHandler.Get)
			surveys.PUT("/:id", surveyHandler.Update)
			surveys.DELETE("/:id", surveyHandler.Delete)
			surveys.GET("/:id/permissions", surveyHandler.GetPermissions)
			surveys.PUT("/:id/permissions", surveyHandler.UpdatePermissions)
			surveys.POST("/:id/questions", questionHandler.Create)
			surveys.GET("/:id/questions", questionHandler.ListBySurvey)
			surveys.GET("/:id/statistics", statisticsHandler.Overview)
			surveys.GET("/:id/statistics/export", statisticsHandler.Export)
		}

		questions := protected.Group("/questions")
		{
			questions.GET("/:id", questionHandler.Get)
			questions.PUT("/:id", questionHandler.Update)
			questions.DELETE("/:id", questionHandler.Delete)
			questions.POST("/:id/options", optionHandler.Create)
			questions.GET("/:id/options", optionHandler.ListByQuestion)
		}

		options := protected.Group("/options")
		{
			options.PUT("/:id", optionHandler.Update)
			options.DELETE("/:id", optionHandler.Delete)
		}

		teams := protected.Group("/teams")
		{
			teams.POST("", teamHandler.Create)
			teams.GET("", teamHandler.List)
			teams.POST("/:id/members", teamHandler.AddMember)
			teams.DELETE("/:id/members/:userId", teamHandler.RemoveMember)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.PATCH("/read-all", notificationHandler.MarkAllRead)
		}

		files := protected.Group("/files")
		{
			files.POST("", fileHandler.Upload)
			files.GET("/:id", fileHandler.Info)
			files.GET("/:id/download", fileHandler.Download)
			files.GET("/:id/share-link", fileHandler.ShareLink)
		}

		protected.GET("/dashboard", dashboardHandler.Summary)
		protected.GET("/system/metrics", middleware.RequireRoles(models.RoleAdmin), metricsHandler.Status)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	srv := &http.Server{Addr: addr, Handler: r}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
