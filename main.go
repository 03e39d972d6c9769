package main

import (
	"log"

	"github.com/SW-Wanted/riding/cmd"
	"github.com/SW-Wanted/riding/internal/data/repository"
	"github.com/SW-Wanted/riding/internal/jobs"
	"github.com/SW-Wanted/riding/internal/wire"
	"github.com/SW-Wanted/riding/pkg/cache"
	"github.com/SW-Wanted/riding/pkg/database"
	"github.com/SW-Wanted/riding/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
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

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to redis
	redisClient, err := cache.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	logger.Info("Redis connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	availabilityCache := cache.NewAvailabilityCache(redisClient)

	// Wire all dependencies
	app := wire.Wiring(repos, availabilityCache, config, logger)

	// Start background jobs
	scheduler := jobs.NewScheduler(repos, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatal("Failed to start background jobs", zap.Error(err))
	}
	defer scheduler.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
