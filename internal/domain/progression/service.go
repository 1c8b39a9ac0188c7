package progression

import (
	"errors"
	"time"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
)

// Common errors
var (
	ErrNilProgress = errors.New("progress cannot be nil")
	ErrNilResult   = errors.New("game result cannot be nil")
)

// SyncResult describes the outcome of an offline-progress reconciliation.
type SyncResult struct {
	XP     int  `json:"xp"`
	Level  int  `json:"level"`
	Synced bool `json:"synced"`
}

// Service defines the interface for XP, leveling and classification
// operations. All methods operate on copies of the progress record; the
// caller persists the returned value.
type Service interface {
	// AddXP applies a positive XP delta and rederives the level.
	// Returns domain.ErrInvalidAmount when amount is not positive.
	AddXP(progress *domain.Progress, amount int, now time.Time) (*domain.Progress, error)

	// SyncXP merges client-reported offline progress using a
	// monotonic-max rule: server XP never decreases.
	SyncXP(
		progress *domain.Progress,
		clientXP, clientLevel int,
		now time.Time,
	) (*domain.Progress, SyncResult, error)

	// Classify labels a game result as fast, slow or neutral against the
	// user's aggregate stats. It does not touch the stored category; the
	// caller applies the sticky-overwrite rule.
	Classify(result *domain.GameResult, progress *domain.Progress) (domain.LearnerCategory, error)

	// AwardForResult computes the XP to grant for a game result.
	AwardForResult(result *domain.GameResult) (int, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new progression service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new progression service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// AddXP implements the Service interface.
func (s *defaultService) AddXP(
	progress *domain.Progress,
	amount int,
	now time.Time,
) (*domain.Progress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	return calculateAddXP(progress, amount, now, s.params), nil
}

// SyncXP implements the Service interface.
func (s *defaultService) SyncXP(
	progress *domain.Progress,
	clientXP, clientLevel int,
	now time.Time,
) (*domain.Progress, SyncResult, error) {
	if progress == nil {
		return nil, SyncResult{}, ErrNilProgress
	}

	updated, synced := calculateSyncXP(progress, clientXP, clientLevel, now, s.params)
	return updated, SyncResult{
		XP:     updated.XP,
		Level:  updated.Level,
		Synced: synced,
	}, nil
}

// Classify implements the Service interface.
func (s *defaultService) Classify(
	result *domain.GameResult,
	progress *domain.Progress,
) (domain.LearnerCategory, error) {
	if result == nil {
		return domain.LearnerCategoryUnset, ErrNilResult
	}
	if progress == nil {
		return domain.LearnerCategoryUnset, ErrNilProgress
	}

	return classifyResult(result, progress, s.params), nil
}

// AwardForResult implements the Service interface.
func (s *defaultService) AwardForResult(result *domain.GameResult) (int, error) {
	if result == nil {
		return 0, ErrNilResult
	}

	return awardForResult(result, s.params), nil
}
