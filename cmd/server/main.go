package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nfu-im/internship-service/internal/cache"
	"github.com/nfu-im/internship-service/internal/config"
	"github.com/nfu-im/internship-service/internal/events"
	"github.com/nfu-im/internship-service/internal/handlers"
	"github.com/nfu-im/internship-service/internal/repositories/postgres"
	"github.com/nfu-im/internship-service/internal/services"
	"github.com/nfu-im/internship-service/internal/storage"
	"github.com/nfu-im/internship-service/internal/utils"
	"github.com/nfu-im/internship-service/internal/validator"
	"github.com/nfu-im/internship-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		logger.Error("auto migration failed", "error", err)
		os.Exit(1)
	}

	// Redis backs the announcement cache only; the service degrades to
	// direct store reads if it is unavailable.
	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, announcement caching disabled", "error", err)
	} else {
		cacheService = cache.NewRedisCache(redisClient, logger)
		defer redisClient.Close()
	}

	files, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.Error("upload dir init failed", "error", err)
		os.Exit(1)
	}

	publisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
		KafkaBrokers: cfg.KafkaBrokers,
		TopicName:    cfg.NotificationTopic,
		Logger:       slogLogger,
	})
	if err != nil {
		logger.Error("event publisher init failed", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	serviceManager := services.NewServiceManager(
		repo, files, cacheService, publisher, slogLogger, validator.New())

	sessionStore := handlers.NewSessionStore(cfg.SessionSecret)
	handlerManager := handlers.NewHandlerManager(serviceManager, sessionStore, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
