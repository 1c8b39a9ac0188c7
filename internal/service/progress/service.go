// Package progress orchestrates the streak and progression engines over
// the persistence layer.
package progress

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
	"github.com/dvdgamer2003/learntrack-api/internal/domain/progression"
	"github.com/dvdgamer2003/learntrack-api/internal/domain/streak"
)

// Common error types for ProgressService
var (
	// ErrProgressNotFound indicates that no progress record exists for the user.
	ErrProgressNotFound = errors.New("progress not found")

	// ErrInvalidAmount indicates a non-positive XP amount.
	ErrInvalidAmount = errors.New("xp amount must be positive")

	// ErrConflict indicates the operation lost a race against a concurrent
	// update for the same user and should be retried by the client.
	ErrConflict = errors.New("progress was modified concurrently")
)

// XPResult is the outcome of an XP mutation.
type XPResult struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

// GameResultInput carries a client-reported game outcome.
type GameResultInput struct {
	Score           int               `json:"score"`
	MaxScore        int               `json:"max_score"`
	Accuracy        float64           `json:"accuracy"`
	DurationSeconds int               `json:"duration_seconds"`
	CompletedLevel  int               `json:"completed_level"`
	Difficulty      domain.Difficulty `json:"difficulty"`
}

// GameResultOutcome reports what a submitted game result changed.
type GameResultOutcome struct {
	LearnerCategory domain.LearnerCategory `json:"learner_category"`
	XPAwarded       int                    `json:"xp_awarded"`
	XP              int                    `json:"xp"`
	Level           int                    `json:"level"`
}

// ProgressService exposes the gamification operations. Each method is
// request-scoped: one read of the user's progress row, a pure in-memory
// computation, and at most one guarded write back.
type ProgressService interface {
	// CheckIn records a day of activity toward the streak counter.
	// Checking in twice on the same calendar day is a no-op flagged with
	// AlreadyCheckedIn.
	CheckIn(ctx context.Context, userID uuid.UUID) (streak.CheckInResult, error)

	// GetStreakStatus answers "do I need to check in" without mutating.
	GetStreakStatus(ctx context.Context, userID uuid.UUID) (streak.Status, error)

	// AddXP applies a positive XP delta for an activity.
	// Returns ErrInvalidAmount when amount is not positive.
	AddXP(ctx context.Context, userID uuid.UUID, amount int, source string) (XPResult, error)

	// SyncXP reconciles offline client progress; server XP never decreases.
	SyncXP(ctx context.Context, userID uuid.UUID, clientXP, clientLevel int) (progression.SyncResult, error)

	// SubmitGameResult persists a game outcome, awards XP for it and
	// reclassifies the learner. A neutral classification leaves the stored
	// category untouched.
	SubmitGameResult(ctx context.Context, userID uuid.UUID, input GameResultInput) (GameResultOutcome, error)

	// ListGameResults returns the user's most recent game results, newest first.
	ListGameResults(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.GameResult, error)
}
