package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Difficulty is the declared difficulty of a played game.
type Difficulty string

// Valid difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether the difficulty is one of the known values.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// GameResult is a single game outcome reported by a client. It is the raw
// signal consumed by the learner classifier and the basis for XP awards.
type GameResult struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	Score           int        `json:"score"`
	MaxScore        int        `json:"max_score"`
	Accuracy        float64    `json:"accuracy"` // fraction in [0,1]; derived from score/max_score when omitted
	DurationSeconds int        `json:"duration_seconds"`
	CompletedLevel  int        `json:"completed_level"`
	Difficulty      Difficulty `json:"difficulty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewGameResult creates a validated GameResult for the given user.
// A zero accuracy is filled in from score/maxScore.
func NewGameResult(
	userID uuid.UUID,
	score, maxScore int,
	accuracy float64,
	durationSeconds, completedLevel int,
	difficulty Difficulty,
) (*GameResult, error) {
	result := &GameResult{
		ID:              uuid.New(),
		UserID:          userID,
		Score:           score,
		MaxScore:        maxScore,
		Accuracy:        accuracy,
		DurationSeconds: durationSeconds,
		CompletedLevel:  completedLevel,
		Difficulty:      difficulty,
		CreatedAt:       time.Now().UTC(),
	}

	if result.Accuracy == 0 && maxScore > 0 {
		result.Accuracy = float64(score) / float64(maxScore)
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// Validate checks if the GameResult has valid data.
// Returns an error wrapping ErrInvalidGameResult if any field is out of range.
func (g *GameResult) Validate() error {
	if g.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if g.Score < 0 {
		return fmt.Errorf("%w: score cannot be negative", ErrInvalidGameResult)
	}
	if g.MaxScore <= 0 {
		return fmt.Errorf("%w: max score must be positive", ErrInvalidGameResult)
	}
	if g.Score > g.MaxScore {
		return fmt.Errorf("%w: score cannot exceed max score", ErrInvalidGameResult)
	}
	if g.Accuracy < 0 || g.Accuracy > 1 {
		return fmt.Errorf("%w: accuracy must be within [0,1]", ErrInvalidGameResult)
	}
	if g.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrInvalidGameResult)
	}
	if g.CompletedLevel < 0 {
		return fmt.Errorf("%w: completed level cannot be negative", ErrInvalidGameResult)
	}
	if !g.Difficulty.IsValid() {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidGameResult, g.Difficulty)
	}
	return nil
}
