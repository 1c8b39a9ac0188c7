package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
)

// ProgressStore defines the interface for per-user gamification state.
//
// Progress rows are whole-document: every update writes all engine-owned
// fields at once, computed in memory beforehand, so a row is never left
// half-updated by a failed operation.
type ProgressStore interface {
	// Create inserts the initial progress record for a user.
	// Returns ErrDuplicate if a record already exists for the user.
	Create(ctx context.Context, progress *domain.Progress) error

	// GetByUserID retrieves the progress record for a user.
	// Returns ErrProgressNotFound if no record exists.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Progress, error)

	// Update writes a progress record guarded by a compare-and-swap on the
	// row's previous UpdatedAt timestamp, which the caller passes as seen.
	// Returns ErrConflict when the row changed since it was read, and
	// ErrProgressNotFound when no row exists for the user.
	Update(ctx context.Context, progress *domain.Progress, seen time.Time) error
}
