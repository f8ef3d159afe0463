package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/quantfolio/signal-engine/internal/clients/yahoo"
	"github.com/quantfolio/signal-engine/internal/config"
	"github.com/quantfolio/signal-engine/internal/database"
	"github.com/quantfolio/signal-engine/internal/modules/history"
	historyjobs "github.com/quantfolio/signal-engine/internal/modules/history/jobs"
	"github.com/quantfolio/signal-engine/internal/modules/insights"
	"github.com/quantfolio/signal-engine/internal/modules/universe"
	"github.com/quantfolio/signal-engine/internal/scheduler"
	"github.com/quantfolio/signal-engine/internal/server"
	"github.com/quantfolio/signal-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; panic carries the message.
		panic(err)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting signal engine")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Connect to Redis for metric history
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
	}

	// Wire modules
	store := history.NewRedisStore(redisClient, log)
	tracker := history.NewTracker(store, 0, log)
	historyHandlers := history.NewHandlers(tracker, log)

	marketData := yahoo.NewClient(cfg.QuoteAPIBaseURL, log)
	securities := universe.NewSecurityRepository(db.Conn(), log)

	insightsService := insights.NewService(marketData, securities, log)
	insightsHandlers := insights.NewHandlers(insightsService, marketData, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	snapshotJob := historyjobs.NewMetricSnapshotJob(tracker, securities, marketData, log)
	if err := sched.AddJob(cfg.SnapshotSchedule, snapshotJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register snapshot job")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:     cfg.Port,
		Log:      log,
		DevMode:  cfg.DevMode,
		Insights: insightsHandlers,
		History:  historyHandlers,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
