package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dvdgamer2003/learntrack-api/internal/api/middleware"
	"github.com/dvdgamer2003/learntrack-api/internal/api/shared"
	"github.com/dvdgamer2003/learntrack-api/internal/domain"
	"github.com/dvdgamer2003/learntrack-api/internal/platform/logger"
	"github.com/dvdgamer2003/learntrack-api/internal/service/progress"
)

// ProgressHandler handles streak, XP and game-result HTTP requests.
type ProgressHandler struct {
	service progress.ProgressService
	logger  *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(service progress.ProgressService, logger *slog.Logger) *ProgressHandler {
	if service == nil {
		panic("service cannot be nil for ProgressHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProgressHandler{
		service: service,
		logger:  logger.With(slog.String("component", "progress_handler")),
	}
}

// CheckIn handles POST /api/progress/checkin.
func (h *ProgressHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	result, err := h.service.CheckIn(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	message := "Streak continued"
	switch {
	case result.AlreadyCheckedIn:
		message = "Already checked in today"
	case result.IsNewStreak:
		message = "New streak started"
	}

	log.Debug("check-in handled",
		slog.String("user_id", userID.String()),
		slog.Int("streak", result.Streak))
	shared.RespondWithJSON(w, r, http.StatusOK, CheckInResponse{
		Streak:           result.Streak,
		Message:          message,
		IsNewStreak:      result.IsNewStreak,
		AlreadyCheckedIn: result.AlreadyCheckedIn,
	})
}

// StreakStatus handles GET /api/progress/streak.
func (h *ProgressHandler) StreakStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	status, err := h.service.GetStreakStatus(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StreakStatusResponse{
		Streak:         status.Streak,
		LongestStreak:  status.LongestStreak,
		LastActiveDate: status.LastActiveDate,
		NeedsCheckin:   status.NeedsCheckIn,
		StreakHistory:  status.RecentHistory,
	})
}

// AddXP handles POST /api/progress/xp.
func (h *ProgressHandler) AddXP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req AddXPRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	result, err := h.service.AddXP(r.Context(), userID, *req.Amount, req.Source)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AddXPResponse{
		XP:      result.XP,
		Level:   result.Level,
		Message: fmt.Sprintf("Gained %d XP", *req.Amount),
	})
}

// SyncXP handles POST /api/progress/xp/sync.
func (h *ProgressHandler) SyncXP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SyncXPRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	result, err := h.service.SyncXP(r.Context(), userID, *req.XP, req.Level)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SyncXPResponse{
		XP:     result.XP,
		Level:  result.Level,
		Synced: result.Synced,
	})
}

// SubmitGameResult handles POST /api/games/results.
func (h *ProgressHandler) SubmitGameResult(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req GameResultRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	outcome, err := h.service.SubmitGameResult(r.Context(), userID, progress.GameResultInput{
		Score:           req.Score,
		MaxScore:        req.MaxScore,
		Accuracy:        req.Accuracy,
		DurationSeconds: req.DurationSeconds,
		CompletedLevel:  req.CompletedLevel,
		Difficulty:      domain.Difficulty(req.Difficulty),
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, GameResultResponse{
		LearnerCategory: string(outcome.LearnerCategory),
		XPAwarded:       outcome.XPAwarded,
		XP:              outcome.XP,
		Level:           outcome.Level,
	})
}

// ListGameResults handles GET /api/games/results.
func (h *ProgressHandler) ListGameResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	results, err := h.service.ListGameResults(r.Context(), userID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	items := make([]GameResultItem, 0, len(results))
	for _, result := range results {
		items = append(items, GameResultItem{
			ID:              result.ID,
			Score:           result.Score,
			MaxScore:        result.MaxScore,
			Accuracy:        result.Accuracy,
			DurationSeconds: result.DurationSeconds,
			CompletedLevel:  result.CompletedLevel,
			Difficulty:      string(result.Difficulty),
			CreatedAt:       result.CreatedAt,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}
