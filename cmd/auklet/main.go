package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/auklet-oj/auklet/internal/api"
	"github.com/auklet-oj/auklet/internal/config"
	"github.com/auklet-oj/auklet/internal/database"
	"github.com/auklet-oj/auklet/internal/pubsub"

	"go.uber.org/zap"
)

var Version = "dev-build"

func main() {

	fmt.Fprintf(os.Stderr, "Auklet %s - Programming Contest Judge Backend\n\n", Version)

	// config
	var configPath string
	flag.StringVar(&configPath, "c", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// logger
	var logger *zap.Logger
	if cfg.Logger.Level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// database
	db, err := database.Init(cfg.Storage.Database)
	if err != nil {
		zap.S().Fatalf("failed to initialize database: %v", err)
	}
	zap.S().Info("database initialized successfully")

	if err := database.EnsureAdminUser(db, cfg.Admin); err != nil {
		zap.S().Fatalf("failed to ensure bootstrap admin user: %v", err)
	}

	// judge queue / status update broker
	broker := pubsub.NewBroker()

	// API router
	engine := api.NewRouter(cfg, db, broker)

	// start server
	go func() {
		zap.S().Infof("starting server at %s", cfg.Listen)
		if err := engine.Run(cfg.Listen); err != nil {
			zap.S().Fatalf("failed to start server: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("shutting down server...")
}
