package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"evaluo/server/config"
	"evaluo/server/internal/api"
	"evaluo/server/internal/bus"
	"evaluo/server/internal/database"
	"evaluo/server/internal/evaluators"
	"evaluo/server/internal/notifications"
	"evaluo/server/internal/orders"
	"evaluo/server/internal/simulator"
	"evaluo/server/internal/users"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Shared event bus and the stores hanging off it
	eventBus := bus.NewBus(logger)
	notificationStore := notifications.NewStore(eventBus, logger)
	directory := evaluators.NewDirectory(rand.New(rand.NewSource(time.Now().UnixNano())))

	store := orders.NewStore(directory, notificationStore, eventBus, logger, cfg.Pricing.SurgeActive)
	userService := users.NewService(store, notificationStore, eventBus, logger)

	// Terminal orders get archived to sqlite for the admin view
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	archive, err := database.NewArchive(cfg.Database.Path, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize archive database")
	}
	store.SetArchiver(archive)
	logger.Infof("Using archive database at: %s", cfg.Database.Path)

	if cfg.Simulator.Enabled {
		sim := simulator.NewSimulator(store, logger,
			time.Duration(cfg.Simulator.TickSeconds)*time.Second,
			time.Duration(cfg.Simulator.JitterSeconds)*time.Second)
		sim.Start()
		defer sim.Stop()
		logger.WithFields(logrus.Fields{
			"tick_seconds":   cfg.Simulator.TickSeconds,
			"jitter_seconds": cfg.Simulator.JitterSeconds,
		}).Info("Lifecycle simulator started")
	}

	handler := api.NewHandler(store, userService, notificationStore, directory, eventBus, archive, cfg.Database.Path, logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	api.SetupRoutes(router, handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Infof("Starting server on port %d", cfg.Server.Port)
	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
