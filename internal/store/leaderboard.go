package store

import (
	"context"

	"github.com/google/uuid"
)

// LeaderboardEntry is one ranked row of the XP leaderboard.
type LeaderboardEntry struct {
	Rank        int64     `json:"rank"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	XP          int       `json:"xp"`
	Level       int       `json:"level"`
}

// Leaderboard defines the interface for the XP ranking cache.
//
// The leaderboard is advisory: implementations should be fast and callers
// must treat update failures as non-fatal, since the progress row in the
// primary store remains the source of truth.
type Leaderboard interface {
	// UpdateScore records a user's current XP and display name.
	UpdateScore(ctx context.Context, userID uuid.UUID, displayName string, xp int) error

	// Top returns the highest-XP entries with 1-based ranks, best first.
	Top(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// Rank returns the 1-based rank of a single user.
	// Returns ErrNotFound if the user is not on the board.
	Rank(ctx context.Context, userID uuid.UUID) (int64, error)
}
