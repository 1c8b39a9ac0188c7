package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
	"github.com/dvdgamer2003/learntrack-api/internal/domain/progression"
	"github.com/dvdgamer2003/learntrack-api/internal/domain/streak"
	"github.com/dvdgamer2003/learntrack-api/internal/platform/logger"
	"github.com/dvdgamer2003/learntrack-api/internal/store"
)

// Verify interface compliance at compile time
var _ ProgressService = (*progressServiceImpl)(nil)

// progressServiceImpl implements the ProgressService interface.
type progressServiceImpl struct {
	users       store.UserStore
	progresses  store.ProgressStore
	gameResults store.GameResultStore
	leaderboard store.Leaderboard // nil disables leaderboard updates
	streakSvc   streak.Service
	progSvc     progression.Service
	timeFunc    func() time.Time // Injectable for deterministic day-boundary tests
	logger      *slog.Logger
}

// NewProgressService creates a new ProgressService implementation.
// leaderboard may be nil when no Redis is configured; everything else is
// required. If logger is nil, the default logger is used.
func NewProgressService(
	users store.UserStore,
	progresses store.ProgressStore,
	gameResults store.GameResultStore,
	leaderboard store.Leaderboard,
	streakSvc streak.Service,
	progSvc progression.Service,
	logger *slog.Logger,
) ProgressService {
	if users == nil {
		panic("users store cannot be nil")
	}
	if progresses == nil {
		panic("progresses store cannot be nil")
	}
	if gameResults == nil {
		panic("gameResults store cannot be nil")
	}
	if streakSvc == nil {
		panic("streak service cannot be nil")
	}
	if progSvc == nil {
		panic("progression service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &progressServiceImpl{
		users:       users,
		progresses:  progresses,
		gameResults: gameResults,
		leaderboard: leaderboard,
		streakSvc:   streakSvc,
		progSvc:     progSvc,
		timeFunc:    time.Now,
		logger:      logger.With(slog.String("component", "progress_service")),
	}
}

// CheckIn implements ProgressService.CheckIn.
func (s *progressServiceImpl) CheckIn(
	ctx context.Context,
	userID uuid.UUID,
) (streak.CheckInResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	current, err := s.getProgress(ctx, userID)
	if err != nil {
		return streak.CheckInResult{}, err
	}

	updated, result, err := s.streakSvc.CheckIn(current, now)
	if err != nil {
		return streak.CheckInResult{}, fmt.Errorf("check-in failed: %w", err)
	}

	// Same-day and backdated check-ins mutate nothing; skip the write.
	if result.AlreadyCheckedIn {
		log.Debug("already checked in today",
			slog.String("user_id", userID.String()),
			slog.Int("streak", result.Streak))
		return result, nil
	}

	if err := s.persist(ctx, updated, current.UpdatedAt); err != nil {
		return streak.CheckInResult{}, err
	}

	log.Debug("check-in recorded",
		slog.String("user_id", userID.String()),
		slog.Int("streak", result.Streak),
		slog.Bool("is_new_streak", result.IsNewStreak))
	return result, nil
}

// GetStreakStatus implements ProgressService.GetStreakStatus.
func (s *progressServiceImpl) GetStreakStatus(
	ctx context.Context,
	userID uuid.UUID,
) (streak.Status, error) {
	current, err := s.getProgress(ctx, userID)
	if err != nil {
		return streak.Status{}, err
	}

	status, err := s.streakSvc.Status(current, s.timeFunc())
	if err != nil {
		return streak.Status{}, fmt.Errorf("streak status failed: %w", err)
	}
	return status, nil
}

// AddXP implements ProgressService.AddXP.
func (s *progressServiceImpl) AddXP(
	ctx context.Context,
	userID uuid.UUID,
	amount int,
	source string,
) (XPResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	current, err := s.getProgress(ctx, userID)
	if err != nil {
		return XPResult{}, err
	}

	updated, err := s.progSvc.AddXP(current, amount, now)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return XPResult{}, ErrInvalidAmount
		}
		return XPResult{}, fmt.Errorf("add xp failed: %w", err)
	}

	if err := s.persist(ctx, updated, current.UpdatedAt); err != nil {
		return XPResult{}, err
	}

	s.updateLeaderboard(ctx, updated)

	log.Debug("xp added",
		slog.String("user_id", userID.String()),
		slog.Int("amount", amount),
		slog.String("source", source),
		slog.Int("xp", updated.XP),
		slog.Int("level", updated.Level))
	return XPResult{XP: updated.XP, Level: updated.Level}, nil
}

// SyncXP implements ProgressService.SyncXP.
func (s *progressServiceImpl) SyncXP(
	ctx context.Context,
	userID uuid.UUID,
	clientXP, clientLevel int,
) (progression.SyncResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	current, err := s.getProgress(ctx, userID)
	if err != nil {
		return progression.SyncResult{}, err
	}

	updated, result, err := s.progSvc.SyncXP(current, clientXP, clientLevel, now)
	if err != nil {
		return progression.SyncResult{}, fmt.Errorf("sync xp failed: %w", err)
	}

	if !result.Synced {
		// Client is behind the server; nothing to write.
		return result, nil
	}

	if err := s.persist(ctx, updated, current.UpdatedAt); err != nil {
		return progression.SyncResult{}, err
	}

	s.updateLeaderboard(ctx, updated)

	log.Debug("xp synced from client",
		slog.String("user_id", userID.String()),
		slog.Int("client_xp", clientXP),
		slog.Int("xp", updated.XP))
	return result, nil
}

// SubmitGameResult implements ProgressService.SubmitGameResult.
func (s *progressServiceImpl) SubmitGameResult(
	ctx context.Context,
	userID uuid.UUID,
	input GameResultInput,
) (GameResultOutcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	current, err := s.getProgress(ctx, userID)
	if err != nil {
		return GameResultOutcome{}, err
	}

	result, err := domain.NewGameResult(
		userID,
		input.Score, input.MaxScore,
		input.Accuracy,
		input.DurationSeconds, input.CompletedLevel,
		input.Difficulty,
	)
	if err != nil {
		return GameResultOutcome{}, err
	}

	if err := s.gameResults.Create(ctx, result); err != nil {
		return GameResultOutcome{}, fmt.Errorf("failed to store game result: %w", err)
	}

	award, err := s.progSvc.AwardForResult(result)
	if err != nil {
		return GameResultOutcome{}, fmt.Errorf("failed to compute xp award: %w", err)
	}

	updated, err := s.progSvc.AddXP(current, award, now)
	if err != nil {
		return GameResultOutcome{}, fmt.Errorf("failed to award xp: %w", err)
	}

	// Classify against the pre-game aggregate stats. The category is
	// sticky: neutral means "no clear signal" and leaves it untouched.
	category, err := s.progSvc.Classify(result, current)
	if err != nil {
		return GameResultOutcome{}, fmt.Errorf("classification failed: %w", err)
	}
	if category != domain.LearnerCategoryNeutral {
		updated.LearnerCategory = category
	}

	if err := s.persist(ctx, updated, current.UpdatedAt); err != nil {
		return GameResultOutcome{}, err
	}

	s.updateLeaderboard(ctx, updated)

	log.Debug("game result processed",
		slog.String("user_id", userID.String()),
		slog.String("category", string(category)),
		slog.Int("xp_awarded", award))
	return GameResultOutcome{
		LearnerCategory: updated.LearnerCategory,
		XPAwarded:       award,
		XP:              updated.XP,
		Level:           updated.Level,
	}, nil
}

// ListGameResults implements ProgressService.ListGameResults.
func (s *progressServiceImpl) ListGameResults(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.GameResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	results, err := s.gameResults.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list game results: %w", err)
	}
	return results, nil
}

// getProgress loads the user's progress row, mapping the store's not-found
// to the service-level error.
func (s *progressServiceImpl) getProgress(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Progress, error) {
	current, err := s.progresses.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProgressNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	return current, nil
}

// persist writes the updated row under the compare-and-swap guard,
// mapping a lost race to the service-level conflict error.
func (s *progressServiceImpl) persist(
	ctx context.Context,
	updated *domain.Progress,
	seen time.Time,
) error {
	err := s.progresses.Update(ctx, updated, seen)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrConflict
		}
		if errors.Is(err, store.ErrProgressNotFound) {
			return ErrProgressNotFound
		}
		return fmt.Errorf("failed to persist progress: %w", err)
	}
	return nil
}

// updateLeaderboard pushes the user's new XP to the ranking cache.
// Failures are logged and swallowed: the progress row is the source of
// truth and a stale leaderboard must not fail the request.
func (s *progressServiceImpl) updateLeaderboard(ctx context.Context, progress *domain.Progress) {
	if s.leaderboard == nil {
		return
	}

	displayName := ""
	if user, err := s.users.GetByID(ctx, progress.UserID); err == nil {
		displayName = user.DisplayName
	}

	if err := s.leaderboard.UpdateScore(ctx, progress.UserID, displayName, progress.XP); err != nil {
		s.logger.Warn("failed to update leaderboard",
			slog.String("user_id", progress.UserID.String()),
			slog.String("error", err.Error()))
	}
}
