// Package progression implements XP accumulation, level derivation and the
// rule-based learner classifier.
//
// The classifier thresholds encode pedagogical judgment calls rather than
// algorithmic necessity, so every one of them is a Params field that can be
// overridden from configuration instead of a hard constant.
package progression

import (
	"github.com/dvdgamer2003/learntrack-api/internal/domain"
)

// Params defines all configurable parameters for XP, leveling and
// classification.
type Params struct {
	// XPPerLevel is the fixed size of an XP band: level = xp/XPPerLevel + 1.
	XPPerLevel int

	// GameXPAward is the base XP award per game difficulty, scaled by the
	// result's accuracy before being applied.
	GameXPAward map[domain.Difficulty]int

	// FastMinAccuracy is the accuracy floor for a "fast" classification.
	FastMinAccuracy float64

	// FastMaxDuration is the per-difficulty duration ceiling (seconds)
	// under which an accurate game counts as fast.
	FastMaxDuration map[domain.Difficulty]int

	// FastMinCompletedLevel lets a deep completed level substitute for a
	// quick duration when accuracy is already high.
	FastMinCompletedLevel int

	// SlowMaxAccuracy is the accuracy ceiling at or under which a game
	// counts as slow.
	SlowMaxAccuracy float64

	// SlowMinDuration is the duration (seconds) at or over which a
	// non-accurate game counts as slow.
	SlowMinDuration int

	// SlowStreakGrace softens a slow signal to neutral when the user's
	// current streak is at least this long; one bad game should not
	// relabel a consistently practicing learner.
	SlowStreakGrace int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
type ParamsConfig struct {
	XPPerLevel int

	GameXPEasy   int
	GameXPMedium int
	GameXPHard   int

	FastMinAccuracy       float64
	FastMaxDurationEasy   int
	FastMaxDurationMedium int
	FastMaxDurationHard   int
	FastMinCompletedLevel int

	SlowMaxAccuracy float64
	SlowMinDuration int
	SlowStreakGrace int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		XPPerLevel: 100,

		GameXPAward: map[domain.Difficulty]int{
			domain.DifficultyEasy:   10,
			domain.DifficultyMedium: 20,
			domain.DifficultyHard:   35,
		},

		FastMinAccuracy: 0.85,
		FastMaxDuration: map[domain.Difficulty]int{
			domain.DifficultyEasy:   60,
			domain.DifficultyMedium: 120,
			domain.DifficultyHard:   240,
		},
		FastMinCompletedLevel: 5,

		SlowMaxAccuracy: 0.40,
		SlowMinDuration: 600,
		SlowStreakGrace: 7,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.XPPerLevel > 0 {
		params.XPPerLevel = config.XPPerLevel
	}

	if config.GameXPEasy > 0 {
		params.GameXPAward[domain.DifficultyEasy] = config.GameXPEasy
	}
	if config.GameXPMedium > 0 {
		params.GameXPAward[domain.DifficultyMedium] = config.GameXPMedium
	}
	if config.GameXPHard > 0 {
		params.GameXPAward[domain.DifficultyHard] = config.GameXPHard
	}

	if config.FastMinAccuracy > 0 {
		params.FastMinAccuracy = config.FastMinAccuracy
	}
	if config.FastMaxDurationEasy > 0 {
		params.FastMaxDuration[domain.DifficultyEasy] = config.FastMaxDurationEasy
	}
	if config.FastMaxDurationMedium > 0 {
		params.FastMaxDuration[domain.DifficultyMedium] = config.FastMaxDurationMedium
	}
	if config.FastMaxDurationHard > 0 {
		params.FastMaxDuration[domain.DifficultyHard] = config.FastMaxDurationHard
	}
	if config.FastMinCompletedLevel > 0 {
		params.FastMinCompletedLevel = config.FastMinCompletedLevel
	}

	if config.SlowMaxAccuracy > 0 {
		params.SlowMaxAccuracy = config.SlowMaxAccuracy
	}
	if config.SlowMinDuration > 0 {
		params.SlowMinDuration = config.SlowMinDuration
	}
	if config.SlowStreakGrace > 0 {
		params.SlowStreakGrace = config.SlowStreakGrace
	}

	return params
}
