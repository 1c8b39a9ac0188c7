package progression

import (
	"math"
	"time"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
)

// levelForXP derives the level from total XP using fixed-size XP bands.
// The invariant level == xp/XPPerLevel + 1 holds after every XP mutation.
func levelForXP(xp int, params *Params) int {
	return xp/params.XPPerLevel + 1
}

// calculateAddXP applies a positive XP delta to a copy of the progress
// record and rederives the level. The caller validates the amount.
func calculateAddXP(
	progress *domain.Progress,
	amount int,
	now time.Time,
	params *Params,
) *domain.Progress {
	updated := progress.Clone()
	updated.XP += amount
	updated.Level = levelForXP(updated.XP, params)
	updated.LastXPUpdate = &now
	updated.UpdatedAt = now
	return updated
}

// calculateSyncXP reconciles offline client progress with the server
// record using a monotonic-max merge: the server value only ever grows.
//
// When the client value wins, the client's level is trusted if it supplied
// one, otherwise the level is recomputed from the new XP. The client value
// is trusted without any plausibility check.
//
// The returned bool reports whether anything was mutated.
func calculateSyncXP(
	progress *domain.Progress,
	clientXP, clientLevel int,
	now time.Time,
	params *Params,
) (*domain.Progress, bool) {
	if clientXP <= progress.XP {
		return progress.Clone(), false
	}

	updated := progress.Clone()
	updated.XP = clientXP
	if clientLevel > 0 {
		updated.Level = clientLevel
	} else {
		updated.Level = levelForXP(clientXP, params)
	}
	updated.LastXPUpdate = &now
	updated.UpdatedAt = now
	return updated, true
}

// awardForResult computes the XP award for a game result: the
// per-difficulty base scaled by accuracy, with a floor of 1 so every
// completed game yields something.
func awardForResult(result *domain.GameResult, params *Params) int {
	base := params.GameXPAward[result.Difficulty]
	award := int(math.Round(float64(base) * result.Accuracy))
	if award < 1 {
		award = 1
	}
	return award
}
