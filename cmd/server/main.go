package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trovacasa/server/config"
	"trovacasa/server/internal/api"
	"trovacasa/server/internal/database"
	"trovacasa/server/internal/models"
	"trovacasa/server/internal/notification"
	"trovacasa/server/internal/push"
	"trovacasa/server/internal/queue"
	"trovacasa/server/internal/search"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", cfg.Database.Path)

	db, err := database.NewDatabase(cfg.Database.Path, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	eventQueue := queue.NewPropertyEventQueue(cfg.Notifications.QueueSize, logger)
	defer eventQueue.Close()

	if cfg.Notifications.FCMCredentialsFile == "" {
		logger.Warn("FCM_CREDENTIALS_FILE not set, push notifications are disabled")
	} else {
		gateway, err := push.NewClient(context.Background(), cfg.Notifications.FCMCredentialsFile, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize push client")
		}

		matcher := search.NewMatcher(logger)
		finder := notification.NewCandidateFinder(db, matcher, cfg.ThrottleWindow(), logger)
		dispatcher := notification.NewDispatcher(gateway, db, logger)
		orchestrator := notification.NewOrchestrator(finder, dispatcher, logger)

		eventQueue.Subscribe(func(property *models.Property) error {
			orchestrator.NotifyNewProperty(context.Background(), property)
			return nil
		})
	}
	eventQueue.Start()

	router := gin.Default()
	router.Use(cors.Default())
	api.SetupRoutes(router, db, eventQueue, logger)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
