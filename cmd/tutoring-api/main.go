package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tutoring-api/api/swagger"
	"github.com/noah-isme/tutoring-api/internal/handler"
	"github.com/noah-isme/tutoring-api/internal/middleware"
	"github.com/noah-isme/tutoring-api/internal/repository"
	"github.com/noah-isme/tutoring-api/internal/service"
	"github.com/noah-isme/tutoring-api/pkg/cache"
	"github.com/noah-isme/tutoring-api/pkg/config"
	"github.com/noah-isme/tutoring-api/pkg/database"
	"github.com/noah-isme/tutoring-api/pkg/logger"
	"github.com/noah-isme/tutoring-api/pkg/messaging"
	corsmiddleware "github.com/noah-isme/tutoring-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutoring-api/pkg/middleware/requestid"
)

// @title Tutoring Scheduler API
// @version 1.0.0
// @description Term calendars, tutor availability and appointment booking
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()
	checks := map[string]handler.Pinger{"postgres": handler.PingFunc(db.PingContext)}

	var cacheRepo service.CacheRepository
	if cfg.Calendar.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, calendar cache disabled", zap.Error(err))
		} else {
			redisRepo := repository.NewCacheRepository(client, logr)
			defer redisRepo.Close()
			cacheRepo = redisRepo
			checks["redis"] = redisRepo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Calendar.CacheTTL, logr, cacheRepo != nil)

	var publisher messaging.Publisher = messaging.NopPublisher{}
	notificationsEnabled := cfg.Notifications.Enabled
	if notificationsEnabled {
		amqp, err := messaging.NewRabbitMQ(cfg.Notifications)
		if err != nil {
			logr.Warn("rabbitmq unavailable, appointment events disabled", zap.Error(err))
			notificationsEnabled = false
		} else {
			defer amqp.Close()
			publisher = amqp
		}
	}
	notifications := service.NewNotificationService(publisher, metrics, service.NotificationServiceConfig{
		Enabled:       notificationsEnabled,
		RoutingPrefix: cfg.Notifications.RoutingPrefix,
		Workers:       cfg.Notifications.Workers,
		Retries:       cfg.Notifications.Retries,
		RetryDelay:    cfg.Notifications.RetryDelay,
	}, logr)
	notifications.Start(ctx)
	defer notifications.Stop()

	termRepo := repository.NewTermRepository(db)
	bookingSvc := service.NewBookingService(service.BookingServiceParams{
		Terms:        termRepo,
		Tutors:       repository.NewTutorRepository(db),
		Appointments: repository.NewAppointmentRepository(db),
		Users:        repository.NewUserRepository(db),
		Notifier:     notifications,
		Cache:        cacheSvc,
		Metrics:      metrics,
		Logger:       logr,
		Config: service.BookingServiceConfig{
			CacheTTL:        cfg.Calendar.CacheTTL,
			ScanHorizonDays: cfg.Calendar.ScanHorizonDays,
			Location:        cfg.Calendar.Timezone,
		},
	})
	termSvc := service.NewTermService(termRepo, logr)

	if cfg.Calendar.WarmOnStartup && cacheSvc.Enabled() {
		warmer := service.NewCalendarWarmer(termRepo, bookingSvc, service.CalendarWarmerConfig{
			Concurrency: cfg.Calendar.WarmupConcurrency,
			PageSize:    cfg.Calendar.WarmupTermPageSize,
		}, logr)
		go func() {
			if _, err := warmer.Warm(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logr.Warn("calendar warm-up aborted", zap.Error(err))
			}
		}()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r.Group(cfg.APIPrefix), handler.NewTermHandler(termSvc), handler.NewBookingHandler(bookingSvc))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
