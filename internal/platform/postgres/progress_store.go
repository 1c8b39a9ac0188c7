package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
	"github.com/dvdgamer2003/learntrack-api/internal/store"
)

// ProgressStore implements the store.ProgressStore interface using a
// PostgreSQL database as the storage backend. The streak history is kept
// as a JSONB column on the row: it is a bounded append-only window that is
// always read and written with the rest of the record, never queried on
// its own.
type ProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. If logger is nil, the default logger is used.
func NewProgressStore(db store.DBTX, logger *slog.Logger) *ProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure ProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*ProgressStore)(nil)

// Create implements store.ProgressStore.Create.
func (s *ProgressStore) Create(ctx context.Context, progress *domain.Progress) error {
	if err := progress.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	history, err := json.Marshal(progress.StreakHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal streak history: %w", err)
	}

	query := `
		INSERT INTO progress (
			user_id, xp, level, streak, longest_streak, last_active_date,
			streak_history, learner_category, last_xp_update, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = s.db.ExecContext(ctx, query,
		progress.UserID, progress.XP, progress.Level,
		progress.Streak, progress.LongestStreak, progress.LastActiveDate,
		history, string(progress.LearnerCategory), progress.LastXPUpdate,
		progress.CreatedAt, progress.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByUserID implements store.ProgressStore.GetByUserID.
func (s *ProgressStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Progress, error) {
	query := `
		SELECT user_id, xp, level, streak, longest_streak, last_active_date,
		       streak_history, learner_category, last_xp_update, created_at, updated_at
		FROM progress
		WHERE user_id = $1`

	var (
		progress domain.Progress
		history  []byte
		category string
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&progress.UserID, &progress.XP, &progress.Level,
		&progress.Streak, &progress.LongestStreak, &progress.LastActiveDate,
		&history, &category, &progress.LastXPUpdate,
		&progress.CreatedAt, &progress.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrProgressNotFound
		}
		return nil, mapped
	}

	progress.LearnerCategory = domain.LearnerCategory(category)
	if err := json.Unmarshal(history, &progress.StreakHistory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal streak history: %w", err)
	}

	return &progress, nil
}

// Update implements store.ProgressStore.Update.
//
// The write is guarded by a compare-and-swap on the row's previous
// updated_at value: two concurrent read-modify-write cycles for the same
// user cannot silently overwrite each other, the second writer gets
// store.ErrConflict instead.
func (s *ProgressStore) Update(
	ctx context.Context,
	progress *domain.Progress,
	seen time.Time,
) error {
	if err := progress.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	history, err := json.Marshal(progress.StreakHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal streak history: %w", err)
	}

	query := `
		UPDATE progress
		SET xp = $2, level = $3, streak = $4, longest_streak = $5,
		    last_active_date = $6, streak_history = $7, learner_category = $8,
		    last_xp_update = $9, updated_at = $10
		WHERE user_id = $1 AND updated_at = $11`

	result, err := s.db.ExecContext(ctx, query,
		progress.UserID, progress.XP, progress.Level,
		progress.Streak, progress.LongestStreak, progress.LastActiveDate,
		history, string(progress.LearnerCategory), progress.LastXPUpdate,
		progress.UpdatedAt, seen,
	)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		// Distinguish a lost race from a missing row.
		var exists bool
		err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM progress WHERE user_id = $1)`,
			progress.UserID,
		).Scan(&exists)
		if err != nil {
			return MapError(err)
		}
		if exists {
			s.logger.Warn("progress update lost a concurrent race",
				slog.String("user_id", progress.UserID.String()))
			return store.ErrConflict
		}
		return store.ErrProgressNotFound
	}

	return nil
}
