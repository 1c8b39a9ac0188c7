package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
	"github.com/dvdgamer2003/learntrack-api/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=64"`
	Password    string `json:"password"     validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CheckInResponse defines the response for the streak check-in endpoint.
type CheckInResponse struct {
	Streak           int    `json:"streak"`
	Message          string `json:"message"`
	IsNewStreak      bool   `json:"is_new_streak"`
	AlreadyCheckedIn bool   `json:"already_checked_in"`
}

// StreakStatusResponse defines the response for the streak status endpoint.
type StreakStatusResponse struct {
	Streak         int                `json:"streak"`
	LongestStreak  int                `json:"longest_streak"`
	LastActiveDate *time.Time         `json:"last_active_date,omitempty"`
	NeedsCheckin   bool               `json:"needs_checkin"`
	StreakHistory  []domain.StreakDay `json:"streak_history"`
}

// AddXPRequest defines the payload for the XP grant endpoint.
// Amount is a pointer so that a missing field fails validation instead of
// silently reading as zero.
type AddXPRequest struct {
	Amount *int   `json:"amount" validate:"required"`
	Source string `json:"source" validate:"omitempty,max=64"`
}

// AddXPResponse defines the response for the XP grant endpoint.
type AddXPResponse struct {
	XP      int    `json:"xp"`
	Level   int    `json:"level"`
	Message string `json:"message"`
}

// SyncXPRequest defines the payload for the offline-progress sync endpoint.
type SyncXPRequest struct {
	XP    *int `json:"xp"    validate:"required"`
	Level int  `json:"level" validate:"omitempty,gte=0"`
}

// SyncXPResponse defines the response for the offline-progress sync endpoint.
type SyncXPResponse struct {
	XP     int  `json:"xp"`
	Level  int  `json:"level"`
	Synced bool `json:"synced"`
}

// GameResultRequest defines the payload for the game result endpoint.
type GameResultRequest struct {
	Score           int     `json:"score"            validate:"gte=0"`
	MaxScore        int     `json:"max_score"        validate:"required,gt=0"`
	Accuracy        float64 `json:"accuracy"         validate:"gte=0,lte=1"`
	DurationSeconds int     `json:"duration_seconds" validate:"gte=0"`
	CompletedLevel  int     `json:"completed_level"  validate:"gte=0"`
	Difficulty      string  `json:"difficulty"       validate:"required,oneof=easy medium hard"`
}

// GameResultResponse defines the response for the game result endpoint.
type GameResultResponse struct {
	LearnerCategory string `json:"learner_category"`
	XPAwarded       int    `json:"xp_awarded"`
	XP              int    `json:"xp"`
	Level           int    `json:"level"`
}

// LeaderboardResponse defines the response for the leaderboard endpoint.
type LeaderboardResponse struct {
	Entries []store.LeaderboardEntry `json:"entries"`
}

// RankResponse defines the response for the leaderboard rank endpoint.
type RankResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Rank   int64     `json:"rank"`
}

// GameResultItem is one entry of the game-result history response.
type GameResultItem struct {
	ID              uuid.UUID `json:"id"`
	Score           int       `json:"score"`
	MaxScore        int       `json:"max_score"`
	Accuracy        float64   `json:"accuracy"`
	DurationSeconds int       `json:"duration_seconds"`
	CompletedLevel  int       `json:"completed_level"`
	Difficulty      string    `json:"difficulty"`
	CreatedAt       time.Time `json:"created_at"`
}
