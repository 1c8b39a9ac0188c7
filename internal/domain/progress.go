package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrNegativeXP     = errors.New("xp cannot be negative")
	ErrInvalidLevel   = errors.New("level must be at least 1")
	ErrNegativeStreak = errors.New("streak cannot be negative")
)

// LearnerCategory is a sticky classification label summarizing a user's
// recent performance trend. Once set to a non-neutral value it is only
// replaced by another non-neutral classification, never decayed back.
type LearnerCategory string

// Valid learner categories.
const (
	LearnerCategoryUnset   LearnerCategory = "unset"
	LearnerCategoryFast    LearnerCategory = "fast"
	LearnerCategorySlow    LearnerCategory = "slow"
	LearnerCategoryNeutral LearnerCategory = "neutral"
)

// IsValid reports whether the category is one of the known values.
func (c LearnerCategory) IsValid() bool {
	switch c {
	case LearnerCategoryUnset, LearnerCategoryFast, LearnerCategorySlow, LearnerCategoryNeutral:
		return true
	default:
		return false
	}
}

// StreakDay is one entry of a user's rolling activity history.
// Date is always truncated to midnight in the configured timezone.
type StreakDay struct {
	Date   time.Time `json:"date"`
	Active bool      `json:"active"`
}

// Progress holds all gamification state for a single user: experience
// points, the derived level, the consecutive-day check-in streak with its
// bounded history, and the learner classification.
//
// Progress is mutated only through the streak and progression engines,
// which operate on copies; callers persist the result as a single row.
type Progress struct {
	UserID          uuid.UUID       `json:"user_id"`
	XP              int             `json:"xp"`
	Level           int             `json:"level"`
	Streak          int             `json:"streak"`
	LongestStreak   int             `json:"longest_streak"`
	LastActiveDate  *time.Time      `json:"last_active_date,omitempty"`
	StreakHistory   []StreakDay     `json:"streak_history"`
	LearnerCategory LearnerCategory `json:"learner_category"`
	LastXPUpdate    *time.Time      `json:"last_xp_update,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewProgress creates the initial progress record for a freshly registered
// user: zero XP at level 1, no streak, empty history, category unset.
func NewProgress(userID uuid.UUID) (*Progress, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}

	now := time.Now().UTC()
	return &Progress{
		UserID:          userID,
		XP:              0,
		Level:           1,
		Streak:          0,
		LongestStreak:   0,
		LastActiveDate:  nil,
		StreakHistory:   []StreakDay{},
		LearnerCategory: LearnerCategoryUnset,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Validate checks if the Progress has valid data.
// Returns an error if any field fails validation.
func (p *Progress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if p.XP < 0 {
		return ErrNegativeXP
	}
	if p.Level < 1 {
		return ErrInvalidLevel
	}
	if p.Streak < 0 || p.LongestStreak < 0 {
		return ErrNegativeStreak
	}
	if !p.LearnerCategory.IsValid() {
		return ErrInvalidLearnerCategory
	}
	return nil
}

// Clone returns a deep copy of the progress record, including the streak
// history slice. The engines mutate clones so that a failed operation never
// leaves a half-updated record behind.
func (p *Progress) Clone() *Progress {
	clone := *p
	if p.LastActiveDate != nil {
		d := *p.LastActiveDate
		clone.LastActiveDate = &d
	}
	if p.LastXPUpdate != nil {
		d := *p.LastXPUpdate
		clone.LastXPUpdate = &d
	}
	clone.StreakHistory = make([]StreakDay, len(p.StreakHistory))
	copy(clone.StreakHistory, p.StreakHistory)
	return &clone
}
