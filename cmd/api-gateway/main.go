package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campus-pulse/wellbeing-api/api/swagger"
	"github.com/campus-pulse/wellbeing-api/internal/handler"
	"github.com/campus-pulse/wellbeing-api/internal/middleware"
	"github.com/campus-pulse/wellbeing-api/internal/repository"
	"github.com/campus-pulse/wellbeing-api/internal/service"
	"github.com/campus-pulse/wellbeing-api/pkg/cache"
	"github.com/campus-pulse/wellbeing-api/pkg/config"
	"github.com/campus-pulse/wellbeing-api/pkg/database"
	"github.com/campus-pulse/wellbeing-api/pkg/logger"
	corsmiddleware "github.com/campus-pulse/wellbeing-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campus-pulse/wellbeing-api/pkg/middleware/requestid"
)

// @title Campus Pulse Wellbeing API
// @version 1.0.0
// @description Student wellbeing tracking with stress trend analysis and high-stress alerting
// @BasePath /
// @schemes http

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
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	// Redis is optional: without it the analysis reads simply skip caching.
	var cacheSvc *service.CacheService
	if cfg.Analysis.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Analysis.CacheTTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	studentRepo := repository.NewStudentRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	moduleSvc := service.NewModuleService(moduleRepo)
	surveySvc := service.NewSurveyService(surveyRepo, cacheSvc, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, cacheSvc, validate, logr)
	submissionSvc := service.NewSubmissionService(submissionRepo, validate, logr)
	analysisSvc := service.NewAnalysisService(analysisRepo, cacheSvc, metricsSvc, logr)
	stressSvc := service.NewStressService(analysisRepo, alertRepo, metricsSvc, validate, logr)
	alertSvc := service.NewAlertService(alertRepo, logr)
	exportSvc := service.NewExportService(alertRepo, analysisRepo, logr)

	studentHandler := handler.NewStudentHandler(studentSvc)
	moduleHandler := handler.NewModuleHandler(moduleSvc)
	surveyHandler := handler.NewSurveyHandler(surveySvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc)
	analysisHandler := handler.NewAnalysisHandler(analysisSvc)
	alertHandler := handler.NewAlertHandler(alertSvc, stressSvc, cfg.Alerts.DefaultThreshold, cfg.Alerts.ClearOldDefault)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		students := api.Group("/students")
		{
			students.GET("", studentHandler.List)
			students.POST("", studentHandler.Create)
			students.GET("/:id", studentHandler.Get)
			students.PUT("/:id", studentHandler.Update)
			students.DELETE("/:id", studentHandler.Delete)
			students.POST("/:id/deactivate", studentHandler.Deactivate)
		}

		modules := api.Group("/modules")
		{
			modules.GET("", moduleHandler.List)
			modules.GET("/:id", moduleHandler.Get)
			modules.GET("/:id/enrolments", moduleHandler.Enrolments)
		}

		surveys := api.Group("/surveys")
		{
			surveys.GET("", surveyHandler.List)
			surveys.POST("", surveyHandler.Create)
			surveys.GET("/:id", surveyHandler.Get)
			surveys.PUT("/:id", surveyHandler.Update)
			surveys.DELETE("/:id", surveyHandler.Delete)
			surveys.POST("/:id/deactivate", surveyHandler.Deactivate)
		}

		attendance := api.Group("/attendance")
		{
			attendance.GET("", attendanceHandler.List)
			attendance.POST("", attendanceHandler.Create)
			attendance.GET("/:id", attendanceHandler.Get)
			attendance.PUT("/:id", attendanceHandler.Update)
			attendance.DELETE("/:id", attendanceHandler.Delete)
			attendance.POST("/:id/deactivate", attendanceHandler.Deactivate)
		}

		submissions := api.Group("/submissions")
		{
			submissions.GET("", submissionHandler.List)
			submissions.POST("", submissionHandler.Create)
			submissions.GET("/:id", submissionHandler.Get)
			submissions.PUT("/:id", submissionHandler.Update)
			submissions.DELETE("/:id", submissionHandler.Delete)
			submissions.POST("/:id/deactivate", submissionHandler.Deactivate)
		}

		analysis := api.Group("/analysis")
		{
			analysis.GET("/students/:id/stress-trend", analysisHandler.StressTrend)
			analysis.GET("/students/:id/attendance", analysisHandler.StudentAttendance)
			analysis.GET("/attendance", analysisHandler.AttendanceAverages)
			analysis.GET("/stress-grade", analysisHandler.CompareModules)
			analysis.GET("/stress-grade/scatter", analysisHandler.StressGradeScatter)
			analysis.GET("/grade-distribution", analysisHandler.GradeDistribution)
			analysis.GET("/system", analysisHandler.System)
		}

		alerts := api.Group("/alerts")
		{
			alerts.GET("", alertHandler.List)
			alerts.GET("/events", alertHandler.Events)
			alerts.POST("/generate", alertHandler.Generate)
			alerts.GET("/:id", alertHandler.Get)
			alerts.POST("/:id/resolve", alertHandler.Resolve)
			alerts.DELETE("/:id", alertHandler.Delete)
			alerts.POST("/:id/deactivate", alertHandler.Deactivate)
		}

		if cfg.Exports.Enabled {
			exports := api.Group("/exports")
			{
				exports.GET("/alerts", exportHandler.Alerts)
				exports.GET("/students/:id/stress-trend", exportHandler.StressTrend)
			}
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
