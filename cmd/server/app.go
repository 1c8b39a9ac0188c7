package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dvdgamer2003/learntrack-api/internal/api/middleware"
	"github.com/dvdgamer2003/learntrack-api/internal/config"
	"github.com/dvdgamer2003/learntrack-api/internal/domain/progression"
	"github.com/dvdgamer2003/learntrack-api/internal/domain/streak"
	"github.com/dvdgamer2003/learntrack-api/internal/platform/postgres"
	"github.com/dvdgamer2003/learntrack-api/internal/platform/redis"
	"github.com/dvdgamer2003/learntrack-api/internal/service/auth"
	"github.com/dvdgamer2003/learntrack-api/internal/service/progress"
	"github.com/dvdgamer2003/learntrack-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	progressStore   store.ProgressStore
	gameResultStore store.GameResultStore

	// Leaderboard is nil when Redis is not configured.
	leaderboard store.Leaderboard
	redisClient *goredis.Client

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	streakService    streak.Service
	progressionSvc   progression.Service
	progressService  progress.ProgressService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	middleware.RegisterMetrics()

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"access_token_ttl_minutes", cfg.Auth.AccessTokenTTLMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewUserStore(db, logger)
	app.progressStore = postgres.NewProgressStore(db, logger)
	app.gameResultStore = postgres.NewGameResultStore(db, logger)

	streakParams, err := streak.NewParams(streak.ParamsConfig{
		HistoryLimit: cfg.Gamification.Streak.HistoryLimit,
		RecentWindow: cfg.Gamification.Streak.RecentWindow,
		Timezone:     cfg.Gamification.Streak.Timezone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create streak parameters: %w", err)
	}
	app.streakService = streak.NewServiceWithParams(streakParams)

	progressionParams := progression.NewParams(progression.ParamsConfig{
		XPPerLevel:            cfg.Gamification.Progression.XPPerLevel,
		GameXPEasy:            cfg.Gamification.Progression.GameXPEasy,
		GameXPMedium:          cfg.Gamification.Progression.GameXPMedium,
		GameXPHard:            cfg.Gamification.Progression.GameXPHard,
		FastMinAccuracy:       cfg.Gamification.Progression.FastMinAccuracy,
		FastMaxDurationEasy:   cfg.Gamification.Progression.FastMaxDurationEasy,
		FastMaxDurationMedium: cfg.Gamification.Progression.FastMaxDurationMedium,
		FastMaxDurationHard:   cfg.Gamification.Progression.FastMaxDurationHard,
		FastMinCompletedLevel: cfg.Gamification.Progression.FastMinCompletedLevel,
		SlowMaxAccuracy:       cfg.Gamification.Progression.SlowMaxAccuracy,
		SlowMinDuration:       cfg.Gamification.Progression.SlowMinDuration,
		SlowStreakGrace:       cfg.Gamification.Progression.SlowStreakGrace,
	})
	app.progressionSvc = progression.NewServiceWithParams(progressionParams)

	// The leaderboard cache is optional; the progress rows in Postgres
	// remain the source of truth either way.
	if cfg.Redis.Addr != "" {
		app.redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		app.leaderboard = redis.NewLeaderboard(
			app.redisClient,
			progressionParams.XPPerLevel,
			logger,
		)
		logger.Info("Redis leaderboard initialized", "addr", cfg.Redis.Addr)
	} else {
		logger.Info("Redis not configured, leaderboard disabled")
	}

	app.progressService = progress.NewProgressService(
		app.userStore,
		app.progressStore,
		app.gameResultStore,
		app.leaderboard,
		app.streakService,
		app.progressionSvc,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing redis client", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
