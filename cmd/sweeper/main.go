package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"auction-marketplace-service/internal/adapters/db"
	"auction-marketplace-service/internal/adapters/redis"
	"auction-marketplace-service/internal/adapters/scheduler"
	"auction-marketplace-service/internal/app"
	"auction-marketplace-service/internal/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting auction lifecycle sweeper...")

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	log.Info().Msg("Database connection established")

	// Create repositories
	repoFactory := db.NewRepositoryFactory(dbConn)
	auctionRepo := repoFactory.GetAuctionRepository()
	itemRepo := repoFactory.GetItemRepository()

	// Create Redis client for the cross-process sweep lock. The sweeper
	// still runs without it, it just loses the multi-instance guard.
	redisClient := redis.NewClient(cfg)
	if err := redis.PingRedis(redisClient); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, sweeps run without distributed lock")
		redisClient = nil
	} else {
		log.Info().Msg("Redis connection established")
	}

	lifecycleService := app.NewLifecycleService(app.LifecycleServiceParams{
		AuctionRepo: auctionRepo,
		ItemRepo:    itemRepo,
		BatchSize:   cfg.Sweep.BatchSize,
		Logger:      log.Logger,
	})

	sweepScheduler := scheduler.NewSweepScheduler(scheduler.SweepSchedulerParams{
		RedisClient: redisClient,
		Lifecycle:   lifecycleService,
		OpenSpec:    cfg.Sweep.OpenSpec,
		CloseSpec:   cfg.Sweep.CloseSpec,
		Logger:      log.Logger,
	})

	if err := sweepScheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start sweep scheduler")
	}
	log.Info().
		Str("open_spec", cfg.Sweep.OpenSpec).
		Str("close_spec", cfg.Sweep.CloseSpec).
		Msg("Sweep scheduler started")

	// Catch up on anything missed while the sweeper was down
	sweepScheduler.OpenSweep()
	sweepScheduler.CloseSweep()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	sweepScheduler.Stop()
	log.Info().Msg("Sweep scheduler stopped")
}

func initLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	zerolog.DefaultContextLogger = &log.Logger
}
