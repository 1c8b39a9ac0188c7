package streak

import (
	"math"
	"time"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
)

// CheckInResult describes the outcome of a check-in attempt.
type CheckInResult struct {
	// Streak is the consecutive-day counter after the check-in.
	Streak int `json:"streak"`

	// AlreadyCheckedIn is true when the user had already checked in on the
	// same calendar day and nothing was mutated.
	AlreadyCheckedIn bool `json:"already_checked_in"`

	// IsNewStreak is true when this check-in started a streak from scratch,
	// either the first check-in ever or the first after a missed day.
	IsNewStreak bool `json:"is_new_streak"`
}

// Status is the read-only answer to "do I need to check in today".
type Status struct {
	Streak         int                `json:"streak"`
	LongestStreak  int                `json:"longest_streak"`
	LastActiveDate *time.Time         `json:"last_active_date,omitempty"`
	NeedsCheckIn   bool               `json:"needs_checkin"`
	RecentHistory  []domain.StreakDay `json:"streak_history"`
}

// normalizeDay truncates a timestamp to midnight of its calendar day in
// the given location.
func normalizeDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// daysBetween returns the number of calendar days from one normalized
// midnight to another. Rounding absorbs the one-hour drift of DST
// transitions between two local midnights.
func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// calculateCheckIn applies a check-in event to a copy of the progress
// record and reports what happened.
//
// The state machine over delta = daysBetween(lastActiveDate, today):
//   - no lastActiveDate: first check-in ever, streak becomes 1
//   - delta == 0: already checked in today, nothing changes
//   - delta == 1: consecutive day, streak increments
//   - delta > 1: one or more days missed, streak resets to 1
//   - delta < 0: clock skew or a backdated request; treated like "already
//     checked in" so lastActiveDate only ever moves forward
//
// Every mutating branch stamps lastActiveDate with today, appends an
// active entry to the history (evicting the oldest beyond
// params.HistoryLimit) and raises longestStreak when the new streak
// passes it.
func calculateCheckIn(
	progress *domain.Progress,
	now time.Time,
	params *Params,
) (*domain.Progress, CheckInResult) {
	today := normalizeDay(now, params.Location)

	updated := progress.Clone()

	if progress.LastActiveDate != nil {
		delta := daysBetween(normalizeDay(*progress.LastActiveDate, params.Location), today)
		switch {
		case delta == 0, delta < 0:
			return updated, CheckInResult{
				Streak:           updated.Streak,
				AlreadyCheckedIn: true,
			}
		case delta == 1:
			updated.Streak++
		default:
			updated.Streak = 1
		}
	} else {
		updated.Streak = 1
	}

	updated.LastActiveDate = &today
	if updated.Streak > updated.LongestStreak {
		updated.LongestStreak = updated.Streak
	}

	updated.StreakHistory = append(updated.StreakHistory, domain.StreakDay{
		Date:   today,
		Active: true,
	})
	if excess := len(updated.StreakHistory) - params.HistoryLimit; excess > 0 {
		updated.StreakHistory = updated.StreakHistory[excess:]
	}

	updated.UpdatedAt = now

	return updated, CheckInResult{
		Streak:      updated.Streak,
		IsNewStreak: updated.Streak == 1,
	}
}

// calculateStatus answers the read-only check-in query. It never mutates
// the progress record.
func calculateStatus(progress *domain.Progress, now time.Time, params *Params) Status {
	today := normalizeDay(now, params.Location)

	needsCheckIn := true
	if progress.LastActiveDate != nil {
		needsCheckIn = daysBetween(normalizeDay(*progress.LastActiveDate, params.Location), today) > 0
	}

	history := progress.StreakHistory
	if len(history) > params.RecentWindow {
		history = history[len(history)-params.RecentWindow:]
	}
	recent := make([]domain.StreakDay, len(history))
	copy(recent, history)

	return Status{
		Streak:         progress.Streak,
		LongestStreak:  progress.LongestStreak,
		LastActiveDate: progress.LastActiveDate,
		NeedsCheckIn:   needsCheckIn,
		RecentHistory:  recent,
	}
}
