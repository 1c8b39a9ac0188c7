package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
)

// GameResultStore defines the interface for the game-result feed.
type GameResultStore interface {
	// Create persists a reported game result.
	Create(ctx context.Context, result *domain.GameResult) error

	// GetLatestByUser retrieves the user's most recent game result.
	// Returns ErrGameResultNotFound if the user has none.
	GetLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.GameResult, error)

	// ListByUser retrieves the user's most recent results, newest first,
	// bounded by limit.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.GameResult, error)
}
