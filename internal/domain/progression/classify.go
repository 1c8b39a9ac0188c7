package progression

import (
	"github.com/dvdgamer2003/learntrack-api/internal/domain"
)

// classifyResult labels a single game outcome as fast, slow or neutral.
//
// The rules, in order:
//   - fast: accuracy at or above FastMinAccuracy, combined with either a
//     duration under the per-difficulty budget or a completed level at or
//     beyond FastMinCompletedLevel
//   - slow: accuracy at or under SlowMaxAccuracy, or a sub-fast accuracy
//     paired with a duration at or over SlowMinDuration. A current streak
//     at or beyond SlowStreakGrace softens the signal to neutral
//   - neutral: everything in between
//
// Neutral means "no clear signal"; the caller treats it as no change, so
// a stored category only moves on fast or slow results.
func classifyResult(
	result *domain.GameResult,
	progress *domain.Progress,
	params *Params,
) domain.LearnerCategory {
	if result.Accuracy >= params.FastMinAccuracy {
		withinBudget := result.DurationSeconds <= params.FastMaxDuration[result.Difficulty]
		if withinBudget || result.CompletedLevel >= params.FastMinCompletedLevel {
			return domain.LearnerCategoryFast
		}
		return domain.LearnerCategoryNeutral
	}

	slow := result.Accuracy <= params.SlowMaxAccuracy ||
		result.DurationSeconds >= params.SlowMinDuration
	if slow {
		if progress.Streak >= params.SlowStreakGrace {
			return domain.LearnerCategoryNeutral
		}
		return domain.LearnerCategorySlow
	}

	return domain.LearnerCategoryNeutral
}
