package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/studyplan-dev/study-planner-api/api/swagger"
	"github.com/studyplan-dev/study-planner-api/internal/handler"
	"github.com/studyplan-dev/study-planner-api/internal/middleware"
	"github.com/studyplan-dev/study-planner-api/internal/platform"
	"github.com/studyplan-dev/study-planner-api/internal/repository"
	"github.com/studyplan-dev/study-planner-api/internal/service"
	"github.com/studyplan-dev/study-planner-api/pkg/cache"
	"github.com/studyplan-dev/study-planner-api/pkg/config"
	"github.com/studyplan-dev/study-planner-api/pkg/database"
	"github.com/studyplan-dev/study-planner-api/pkg/jobs"
	"github.com/studyplan-dev/study-planner-api/pkg/logger"
	"github.com/studyplan-dev/study-planner-api/pkg/middleware/cors"
	"github.com/studyplan-dev/study-planner-api/pkg/middleware/requestid"
)

// @title Study Planner API
// @version 1.0
// @description Semester study planning service merging local plans with platform data.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	validate := validator.New()

	planRepo := repository.NewPlanRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, log)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Planner.PlanCacheTTL, log, cfg.Planner.CacheEnabled)

	platformClient := platform.NewClient(cfg.Platform, log)

	scopeSvc := service.NewModuleScopeService(platformClient, cacheSvc, metricsSvc, cfg.Planner.ScopeCacheTTL, log)
	plannerSvc := service.NewPlannerService(planRepo, platformClient, scopeSvc, cacheSvc, metricsSvc, cfg.Planner.PlanCacheTTL, log)

	invalidateQueue := jobs.NewQueue("plan-cache", func(ctx context.Context, job jobs.Job) error {
		switch job.Type {
		case service.JobTypePlanCacheInvalidate:
			pattern, ok := job.Payload.(string)
			if !ok {
				log.Warn("discarding cache job with unexpected payload", zap.String("job_id", job.ID))
				return nil
			}
			return cacheSvc.Invalidate(ctx, pattern)
		default:
			log.Warn("unknown job type", zap.String("type", job.Type), zap.String("job_id", job.ID))
			return nil
		}
	}, jobs.QueueConfig{
		Workers: cfg.Planner.WarmupWorkers,
		Logger:  log,
	})
	invalidateQueue.Start(context.Background())
	defer invalidateQueue.Stop()
	metricsSvc.RegisterQueueDepth("plan-cache", invalidateQueue.Depth)

	planSvc := service.NewPlanService(planRepo, plannerSvc, scopeSvc, validate, invalidateQueue, log)
	searchSvc := service.NewSearchService(scopeSvc, plannerSvc, log)
	authSvc := service.NewAuthService(sessionRepo, platformClient, validate, log, cfg.Auth)
	exportSvc := service.NewExportService(plannerSvc, cfg.Exports.Enabled, log)

	authHandler := handler.NewAuthHandler(authSvc)
	planHandler := handler.NewPlanHandler(plannerSvc, planSvc, authSvc)
	modulesHandler := handler.NewModulesHandler(searchSvc, authSvc)
	exportHandler := handler.NewExportHandler(exportSvc, authSvc)
	systemHandler := handler.NewSystemHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(cors.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		protected := api.Group("")
		protected.Use(middleware.JWT(authSvc))
		{
			protected.POST("/auth/logout", authHandler.Logout)

			protected.GET("/plan", planHandler.GetPlan)
			protected.POST("/plan/semesters", planHandler.AddSemester)
			protected.PUT("/plan/placements", planHandler.PlaceModule)
			protected.DELETE("/plan/placements", planHandler.RemoveModule)
			protected.GET("/plan/drop-targets", planHandler.DropTargets)
			protected.GET("/plan/export", exportHandler.Export)

			protected.GET("/modules", modulesHandler.Search)

			protected.GET("/system/stats", systemHandler.Stats)
		}
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("starting api gateway", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := r.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
