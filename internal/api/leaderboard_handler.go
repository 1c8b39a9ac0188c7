package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dvdgamer2003/learntrack-api/internal/api/middleware"
	"github.com/dvdgamer2003/learntrack-api/internal/api/shared"
	"github.com/dvdgamer2003/learntrack-api/internal/store"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// LeaderboardHandler handles XP ranking HTTP requests.
type LeaderboardHandler struct {
	leaderboard store.Leaderboard
	logger      *slog.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboard store.Leaderboard, logger *slog.Logger) *LeaderboardHandler {
	if leaderboard == nil {
		panic("leaderboard cannot be nil for LeaderboardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LeaderboardHandler{
		leaderboard: leaderboard,
		logger:      logger.With(slog.String("component", "leaderboard_handler")),
	}
}

// Top handles GET /api/leaderboard.
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := h.leaderboard.Top(r.Context(), limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LeaderboardResponse{Entries: entries})
}

// Rank handles GET /api/leaderboard/rank for the authenticated user.
func (h *LeaderboardHandler) Rank(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	rank, err := h.leaderboard.Rank(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RankResponse{
		UserID: userID,
		Rank:   rank,
	})
}
