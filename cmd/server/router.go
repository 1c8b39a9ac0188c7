package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dvdgamer2003/learntrack-api/internal/api"
	apiMiddleware "github.com/dvdgamer2003/learntrack-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.Metrics)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.progressStore,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	progressHandler := api.NewProgressHandler(app.progressService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/progress/checkin", progressHandler.CheckIn)
			r.Get("/progress/streak", progressHandler.StreakStatus)
			r.Post("/progress/xp", progressHandler.AddXP)
			r.Post("/progress/xp/sync", progressHandler.SyncXP)

			r.Post("/games/results", progressHandler.SubmitGameResult)
			r.Get("/games/results", progressHandler.ListGameResults)

			if app.leaderboard != nil {
				leaderboardHandler := api.NewLeaderboardHandler(app.leaderboard, app.logger)
				r.Get("/leaderboard", leaderboardHandler.Top)
				r.Get("/leaderboard/rank", leaderboardHandler.Rank)
			}
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
