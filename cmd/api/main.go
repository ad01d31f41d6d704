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

	_ "github.com/timecraft-app/timecraft-api/api/swagger"
	"github.com/timecraft-app/timecraft-api/internal/handler"
	"github.com/timecraft-app/timecraft-api/internal/middleware"
	"github.com/timecraft-app/timecraft-api/internal/repository"
	"github.com/timecraft-app/timecraft-api/internal/service"
	"github.com/timecraft-app/timecraft-api/pkg/cache"
	"github.com/timecraft-app/timecraft-api/pkg/config"
	"github.com/timecraft-app/timecraft-api/pkg/database"
	"github.com/timecraft-app/timecraft-api/pkg/logger"
	corsmiddleware "github.com/timecraft-app/timecraft-api/pkg/middleware/cors"
	reqidmiddleware "github.com/timecraft-app/timecraft-api/pkg/middleware/requestid"
	"github.com/timecraft-app/timecraft-api/pkg/notify"
)

// @title TimeCraft API
// @version 1.0.0
// @description Class timetable, reminder and notes backend
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	scheduler := notify.NewTimerScheduler(logr, nil)
	if cfg.Notifications.Enabled {
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	validate := validator.New()

	classRepo := repository.NewClassRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	scheduleSvc := service.NewScheduleService(classRepo, validate, logr)
	exportSvc := service.NewExportService(classRepo, logr, nil, nil, cfg.Exports.PDFTitle)
	reminderSvc := service.NewReminderService(reminderRepo, scheduler, validate, logr)
	noteSvc := service.NewNoteService(noteRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Classes:   classRepo,
		Reminders: reminderRepo,
		Cache:     cacheSvc,
		Logger:    logr,
		Config: service.DashboardServiceConfig{
			CacheTTL:       cfg.Dashboard.CacheTTL,
			RemindersLimit: cfg.Dashboard.RemindersLimit,
		},
	})

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, exportSvc)
	reminderHandler := handler.NewReminderHandler(reminderSvc)
	noteHandler := handler.NewNoteHandler(noteSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
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
	{
		schedule := api.Group("/schedule")
		schedule.GET("", scheduleHandler.List)
		schedule.POST("", scheduleHandler.Create)
		schedule.POST("/check", scheduleHandler.Check)
		if cfg.Exports.Enabled {
			schedule.GET("/export", scheduleHandler.Export)
		}
		schedule.PUT("/:id", scheduleHandler.Update)
		schedule.DELETE("/:id", scheduleHandler.Delete)

		reminders := api.Group("/reminders")
		reminders.GET("", reminderHandler.List)
		reminders.POST("", reminderHandler.Create)
		reminders.POST("/preview", reminderHandler.Preview)
		reminders.DELETE("/:id", reminderHandler.Delete)

		notes := api.Group("/notes")
		notes.GET("/subjects", noteHandler.Subjects)
		notes.PUT("", noteHandler.Save)
		notes.GET("/:subject", noteHandler.BySubject)
		notes.GET("/:subject/:title", noteHandler.Get)
		notes.DELETE("/:subject/:title", noteHandler.Delete)

		api.GET("/dashboard", dashboardHandler.Home)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
