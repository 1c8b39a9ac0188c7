package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvdgamer2003/learntrack-api/internal/api/shared"
	"github.com/dvdgamer2003/learntrack-api/internal/domain"
	"github.com/dvdgamer2003/learntrack-api/internal/domain/progression"
	"github.com/dvdgamer2003/learntrack-api/internal/domain/streak"
	"github.com/dvdgamer2003/learntrack-api/internal/service/progress"
)

// stubProgressService returns canned values so handler tests exercise only
// HTTP decoding, status mapping and response shaping.
type stubProgressService struct {
	checkInResult streak.CheckInResult
	status        streak.Status
	xpResult      progress.XPResult
	syncResult    progression.SyncResult
	outcome       progress.GameResultOutcome
	results       []*domain.GameResult
	err           error

	gotAmount   int
	gotClientXP int
	gotLimit    int
}

func (s *stubProgressService) CheckIn(context.Context, uuid.UUID) (streak.CheckInResult, error) {
	return s.checkInResult, s.err
}

func (s *stubProgressService) GetStreakStatus(context.Context, uuid.UUID) (streak.Status, error) {
	return s.status, s.err
}

func (s *stubProgressService) AddXP(_ context.Context, _ uuid.UUID, amount int, _ string) (progress.XPResult, error) {
	s.gotAmount = amount
	return s.xpResult, s.err
}

func (s *stubProgressService) SyncXP(_ context.Context, _ uuid.UUID, clientXP, _ int) (progression.SyncResult, error) {
	s.gotClientXP = clientXP
	return s.syncResult, s.err
}

func (s *stubProgressService) SubmitGameResult(context.Context, uuid.UUID, progress.GameResultInput) (progress.GameResultOutcome, error) {
	return s.outcome, s.err
}

func (s *stubProgressService) ListGameResults(_ context.Context, _ uuid.UUID, limit int) ([]*domain.GameResult, error) {
	s.gotLimit = limit
	return s.results, s.err
}

// authedRequest builds a request with a user ID already injected, as the
// auth middleware would do.
func authedRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, uuid.New())
	return req.WithContext(ctx)
}

func TestProgressHandlerCheckIn(t *testing.T) {
	t.Parallel()

	t.Run("new streak", func(t *testing.T) {
		t.Parallel()
		svc := &stubProgressService{
			checkInResult: streak.CheckInResult{Streak: 1, IsNewStreak: true},
		}
		handler := NewProgressHandler(svc, nil)

		rec := httptest.NewRecorder()
		handler.CheckIn(rec, authedRequest(t, http.MethodPost, "/api/progress/checkin", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp CheckInResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 1, resp.Streak)
		assert.True(t, resp.IsNewStreak)
		assert.Equal(t, "New streak started", resp.Message)
	})

	t.Run("already checked in", func(t *testing.T) {
		t.Parallel()
		svc := &stubProgressService{
			checkInResult: streak.CheckInResult{Streak: 5, AlreadyCheckedIn: true},
		}
		handler := NewProgressHandler(svc, nil)

		rec := httptest.NewRecorder()
		handler.CheckIn(rec, authedRequest(t, http.MethodPost, "/api/progress/checkin", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp CheckInResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.AlreadyCheckedIn)
		assert.Equal(t, "Already checked in today", resp.Message)
	})

	t.Run("missing user context", func(t *testing.T) {
		t.Parallel()
		handler := NewProgressHandler(&stubProgressService{}, nil)

		rec := httptest.NewRecorder()
		handler.CheckIn(rec, httptest.NewRequest(http.MethodPost, "/api/progress/checkin", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		t.Parallel()
		handler := NewProgressHandler(&stubProgressService{err: progress.ErrConflict}, nil)

		rec := httptest.NewRecorder()
		handler.CheckIn(rec, authedRequest(t, http.MethodPost, "/api/progress/checkin", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestProgressHandlerStreakStatus(t *testing.T) {
	t.Parallel()

	lastActive := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	svc := &stubProgressService{
		status: streak.Status{
			Streak:         4,
			LongestStreak:  9,
			LastActiveDate: &lastActive,
			NeedsCheckIn:   true,
			RecentHistory:  []domain.StreakDay{{Date: lastActive, Active: true}},
		},
	}
	handler := NewProgressHandler(svc, nil)

	rec := httptest.NewRecorder()
	handler.StreakStatus(rec, authedRequest(t, http.MethodGet, "/api/progress/streak", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp StreakStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 4, resp.Streak)
	assert.Equal(t, 9, resp.LongestStreak)
	assert.True(t, resp.NeedsCheckin)
	require.Len(t, resp.StreakHistory, 1)
}

func TestProgressHandlerAddXP(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := &stubProgressService{xpResult: progress.XPResult{XP: 105, Level: 2}}
		handler := NewProgressHandler(svc, nil)

		rec := httptest.NewRecorder()
		handler.AddXP(rec, authedRequest(t, http.MethodPost, "/api/progress/xp",
			map[string]any{"amount": 10, "source": "lesson"}))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp AddXPResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 105, resp.XP)
		assert.Equal(t, 2, resp.Level)
		assert.Equal(t, 10, svc.gotAmount)
	})

	t.Run("missing amount rejected", func(t *testing.T) {
		t.Parallel()
		handler := NewProgressHandler(&stubProgressService{}, nil)

		rec := httptest.NewRecorder()
		handler.AddXP(rec, authedRequest(t, http.MethodPost, "/api/progress/xp",
			map[string]any{"source": "lesson"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative amount maps to 400", func(t *testing.T) {
		t.Parallel()
		handler := NewProgressHandler(&stubProgressService{err: progress.ErrInvalidAmount}, nil)

		rec := httptest.NewRecorder()
		handler.AddXP(rec, authedRequest(t, http.MethodPost, "/api/progress/xp",
			map[string]any{"amount": -5}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		t.Parallel()
		handler := NewProgressHandler(&stubProgressService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/progress/xp", bytes.NewBufferString("{"))
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, uuid.New())
		rec := httptest.NewRecorder()
		handler.AddXP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProgressHandlerSyncXP(t *testing.T) {
	t.Parallel()

	svc := &stubProgressService{
		syncResult: progression.SyncResult{XP: 250, Level: 3, Synced: true},
	}
	handler := NewProgressHandler(svc, nil)

	rec := httptest.NewRecorder()
	handler.SyncXP(rec, authedRequest(t, http.MethodPost, "/api/progress/xp/sync",
		map[string]any{"xp": 250, "level": 3}))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SyncXPResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Synced)
	assert.Equal(t, 250, resp.XP)
	assert.Equal(t, 250, svc.gotClientXP)
}

func TestProgressHandlerSubmitGameResult(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		svc := &stubProgressService{
			outcome: progress.GameResultOutcome{
				LearnerCategory: domain.LearnerCategoryFast,
				XPAwarded:       9,
				XP:              9,
				Level:           1,
			},
		}
		handler := NewProgressHandler(svc, nil)

		rec := httptest.NewRecorder()
		handler.SubmitGameResult(rec, authedRequest(t, http.MethodPost, "/api/games/results",
			map[string]any{
				"score": 9, "max_score": 10, "accuracy": 0.9,
				"duration_seconds": 45, "completed_level": 3, "difficulty": "easy",
			}))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp GameResultResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "fast", resp.LearnerCategory)
		assert.Equal(t, 9, resp.XPAwarded)
	})

	t.Run("unknown difficulty rejected by validation", func(t *testing.T) {
		t.Parallel()
		handler := NewProgressHandler(&stubProgressService{}, nil)

		rec := httptest.NewRecorder()
		handler.SubmitGameResult(rec, authedRequest(t, http.MethodPost, "/api/games/results",
			map[string]any{
				"score": 9, "max_score": 10, "difficulty": "nightmare",
			}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProgressHandlerListGameResults(t *testing.T) {
	t.Parallel()

	t.Run("custom limit passed through", func(t *testing.T) {
		t.Parallel()
		svc := &stubProgressService{}
		handler := NewProgressHandler(svc, nil)

		rec := httptest.NewRecorder()
		handler.ListGameResults(rec, authedRequest(t, http.MethodGet, "/api/games/results?limit=5", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 5, svc.gotLimit)
	})

	t.Run("invalid limit rejected", func(t *testing.T) {
		t.Parallel()
		handler := NewProgressHandler(&stubProgressService{}, nil)

		rec := httptest.NewRecorder()
		handler.ListGameResults(rec, authedRequest(t, http.MethodGet, "/api/games/results?limit=abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty history is an empty array", func(t *testing.T) {
		t.Parallel()
		handler := NewProgressHandler(&stubProgressService{}, nil)

		rec := httptest.NewRecorder()
		handler.ListGameResults(rec, authedRequest(t, http.MethodGet, "/api/games/results", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}
