// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prebook/cmd"
	"prebook/internal/data/repository"
	"prebook/internal/message"
	"prebook/internal/wire"
	"prebook/internal/worker"
	"prebook/pkg/database"
	"prebook/pkg/events"
	"prebook/pkg/storage"
	"prebook/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// prebook hash-password <password> prints a value for STAFF_PASSWORD_HASH
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := utils.HashPassword(os.Args[2])
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Message templates are embedded; fail fast if the catalog is broken
	if err := message.Load(); err != nil {
		logger.Fatal("Failed to load message templates", zap.Error(err))
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Optional submit lock store
	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("Redis connected successfully")
	}

	// Photo bucket
	store, err := storage.New(ctx, config.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize photo storage", zap.Error(err))
	}
	logger.Info("Photo storage ready",
		zap.String("driver", config.Storage.Driver),
		zap.String("bucket", config.Storage.Bucket),
	)

	// Optional event publisher
	publisher, err := events.New(config.NATS.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	// Orphaned staging uploads
	sweeper := worker.NewStagingSweeper(store, time.Duration(config.Sweeper.StagingTTLMinutes)*time.Minute, logger)
	scheduler, err := sweeper.Start(time.Duration(config.Sweeper.IntervalMinutes) * time.Minute)
	if err != nil {
		logger.Fatal("Failed to start staging sweeper", zap.Error(err))
	}
	defer scheduler.Stop()

	// Initialize all repositories
	repos := repository.NewRepository(db, rdb, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, store, publisher, config, logger)

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
