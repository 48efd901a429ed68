package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-analytics-api/api/swagger"
	"github.com/noah-isme/sma-analytics-api/internal/handler"
	"github.com/noah-isme/sma-analytics-api/internal/middleware"
	"github.com/noah-isme/sma-analytics-api/internal/models"
	"github.com/noah-isme/sma-analytics-api/internal/repository"
	"github.com/noah-isme/sma-analytics-api/internal/service"
	"github.com/noah-isme/sma-analytics-api/pkg/config"
	"github.com/noah-isme/sma-analytics-api/pkg/database"
	"github.com/noah-isme/sma-analytics-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-analytics-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-analytics-api/pkg/middleware/requestid"
)

// @title SMA Analytics API
// @version 1.0.0
// @description On-demand attendance, grade and fee analytics for schools
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	analyticsSvc := service.NewAnalyticsService(repository.NewRecordStore(db), metricsSvc, logr, service.AnalyticsConfig{
		ComparisonPolicy: cfg.Analytics.ComparisonPolicy,
		QueryTimeout:     cfg.Analytics.QueryTimeout,
	})
	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(analyticsSvc, service.ExportConfig{PDFTitle: cfg.Export.PDFTitle}, logr, nil, nil)
	}
	tokenSvc := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc, "/metrics"))

	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if cfg.Analytics.Enabled {
		resolver := service.NewScopeResolver(validator.New(), time.Now)
		analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc, resolver, nil)
		if exportSvc != nil {
			analyticsHandler = handler.NewAnalyticsHandler(analyticsSvc, resolver, exportSvc)
		}
		registerAnalyticsRoutes(r.Group(cfg.APIPrefix), tokenSvc, analyticsHandler)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func registerAnalyticsRoutes(api *gin.RouterGroup, tokens middleware.TokenValidator, h *handler.AnalyticsHandler) {
	staff := []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin, models.RoleTeacher}
	admins := []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin}

	analytics := api.Group("/analytics")
	analytics.Use(middleware.JWT(tokens))
	analytics.GET("/attendance", middleware.RequireRoles(staff...), h.Attendance)
	analytics.GET("/grades", middleware.RequireRoles(staff...), h.Grades)
	analytics.GET("/class-averages", middleware.RequireRoles(staff...), h.ClassAverages)
	analytics.GET("/teacher-performance", middleware.SelfOrRoles("teacherId", admins...), h.TeacherPerformance)
	analytics.GET("/student-vs-class", middleware.SelfOrRoles("studentId", staff...), h.StudentVsClass)
	analytics.GET("/school-performance", middleware.RequireRoles(admins...), h.SchoolPerformance)
	analytics.GET("/school-performance/export", middleware.RequireRoles(admins...), h.ExportSchoolPerformance)
	analytics.GET("/system", middleware.RequireRoles(models.RoleSuperAdmin), h.System)
}
