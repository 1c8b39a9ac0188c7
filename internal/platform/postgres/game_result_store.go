package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
	"github.com/dvdgamer2003/learntrack-api/internal/store"
)

// GameResultStore implements the store.GameResultStore interface using a
// PostgreSQL database as the storage backend.
type GameResultStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewGameResultStore creates a new PostgreSQL implementation of the
// GameResultStore interface. If logger is nil, the default logger is used.
func NewGameResultStore(db store.DBTX, logger *slog.Logger) *GameResultStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GameResultStore{
		db:     db,
		logger: logger.With(slog.String("component", "game_result_store")),
	}
}

// Ensure GameResultStore implements store.GameResultStore interface
var _ store.GameResultStore = (*GameResultStore)(nil)

// Create implements store.GameResultStore.Create.
func (s *GameResultStore) Create(ctx context.Context, result *domain.GameResult) error {
	if err := result.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO game_results (
			id, user_id, score, max_score, accuracy, duration_seconds,
			completed_level, difficulty, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		result.ID, result.UserID, result.Score, result.MaxScore,
		result.Accuracy, result.DurationSeconds, result.CompletedLevel,
		string(result.Difficulty), result.CreatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetLatestByUser implements store.GameResultStore.GetLatestByUser.
func (s *GameResultStore) GetLatestByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.GameResult, error) {
	query := selectGameResult + `
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var result domain.GameResult
	var difficulty string
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&result.ID, &result.UserID, &result.Score, &result.MaxScore,
		&result.Accuracy, &result.DurationSeconds, &result.CompletedLevel,
		&difficulty, &result.CreatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrGameResultNotFound
		}
		return nil, mapped
	}

	result.Difficulty = domain.Difficulty(difficulty)
	return &result, nil
}

// ListByUser implements store.GameResultStore.ListByUser.
func (s *GameResultStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.GameResult, error) {
	query := selectGameResult + `
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	results := []*domain.GameResult{}
	for rows.Next() {
		var result domain.GameResult
		var difficulty string
		err := rows.Scan(
			&result.ID, &result.UserID, &result.Score, &result.MaxScore,
			&result.Accuracy, &result.DurationSeconds, &result.CompletedLevel,
			&difficulty, &result.CreatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		result.Difficulty = domain.Difficulty(difficulty)
		results = append(results, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return results, nil
}

const selectGameResult = `
		SELECT id, user_id, score, max_score, accuracy, duration_seconds,
		       completed_level, difficulty, created_at
		FROM game_results`
