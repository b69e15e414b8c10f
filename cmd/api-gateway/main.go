package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ministry-hub/attendance-api/api/swagger"
	"github.com/ministry-hub/attendance-api/internal/handler"
	"github.com/ministry-hub/attendance-api/internal/middleware"
	"github.com/ministry-hub/attendance-api/internal/models"
	"github.com/ministry-hub/attendance-api/internal/repository"
	"github.com/ministry-hub/attendance-api/internal/service"
	"github.com/ministry-hub/attendance-api/pkg/cache"
	"github.com/ministry-hub/attendance-api/pkg/config"
	"github.com/ministry-hub/attendance-api/pkg/database"
	"github.com/ministry-hub/attendance-api/pkg/logger"
	corsmiddleware "github.com/ministry-hub/attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ministry-hub/attendance-api/pkg/middleware/requestid"
)

// @title Ministry Attendance API
// @version 1.0.0
// @description Attendance tracking and engagement reporting across the ministry hierarchy
// @BasePath /api
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsService := service.NewMetricsService()

	var cacheService *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, analytics caching disabled", "error", err)
		cacheService = service.NewCacheService(nil, metricsService, cfg.Analytics.CacheTTL, logr, false)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Analytics.CacheTTL, logr, cfg.Analytics.Enabled)
	}

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrgRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	eventRepo := repository.NewEventRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	validate := validator.New()
	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "attendance-api",
	})
	orgService := service.NewOrgService(orgRepo, logr)
	eventService := service.NewEventService(eventRepo, logr)
	dateService := service.NewDateService(attendanceRepo, logr)
	markingService := service.NewMarkingService(memberRepo, eventRepo, attendanceRepo, logr)
	recordsService := service.NewRecordsService(attendanceRepo, logr)
	analyticsService := service.NewAnalyticsService(analyticsRepo, cacheService, metricsService, cfg.Analytics.CacheTTL, logr)
	exportService := service.NewExportService(analyticsService, cfg.Exports.ReportType, logr)

	authHandler := handler.NewAuthHandler(authService)
	orgHandler := handler.NewOrgHandler(orgService)
	eventHandler := handler.NewEventHandler(eventService)
	memberHandler := handler.NewMemberHandler(markingService)
	attendanceHandler := handler.NewAttendanceHandler(recordsService, markingService, dateService, analyticsService)
	engagementHandler := handler.NewEngagementHandler(analyticsService, exportService)
	contributionHandler := handler.NewContributionHandler(analyticsService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authService))

	protected.GET("/auth/me", authHandler.Me)

	protected.GET("/regions", orgHandler.Regions)
	protected.GET("/universities", orgHandler.Universities)
	protected.GET("/small-groups", orgHandler.SmallGroups)
	protected.GET("/alumni-small-groups", orgHandler.AlumniSmallGroups)

	protected.GET("/events", eventHandler.List)
	protected.GET("/members", memberHandler.List)

	protected.GET("/attendance", attendanceHandler.List)
	protected.POST("/attendance", attendanceHandler.Submit)
	protected.PUT("/attendance/:id", attendanceHandler.UpdateStatus)
	protected.GET("/attendance/dates", attendanceHandler.Dates)
	protected.GET("/attendance/student-analytics", attendanceHandler.StudentAnalytics)

	protected.GET("/engagement/analytics", engagementHandler.Analytics)
	protected.GET("/engagement/regions", engagementHandler.Regions)
	protected.GET("/engagement/universities", engagementHandler.Universities)
	protected.GET("/engagement/small-groups", engagementHandler.SmallGroups)
	protected.GET("/engagement/members", engagementHandler.Members)
	protected.GET("/engagement/export-details", engagementHandler.ExportDetails)
	if cfg.Exports.Enabled {
		// whole-hierarchy report downloads are an oversight feature
		protected.GET("/engagement/export",
			middleware.RequireRoles(models.RoleSuperAdmin, models.RoleNational, models.RoleRegion),
			engagementHandler.Export)
	}
	protected.GET("/contributions/analytics", contributionHandler.Analytics)

	protected.GET("/system/metrics",
		middleware.RequireRoles(models.RoleSuperAdmin),
		metricsHandler.Snapshot)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
