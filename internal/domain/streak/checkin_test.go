package streak

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
)

// day builds a normalized UTC midnight for readable test fixtures.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newTestProgress(t *testing.T) *domain.Progress {
	t.Helper()
	progress, err := domain.NewProgress(uuid.New())
	require.NoError(t, err, "Failed to create progress")
	return progress
}

func TestCalculateCheckInFirstEver(t *testing.T) {
	t.Parallel()

	progress := newTestProgress(t)
	now := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)

	updated, result := calculateCheckIn(progress, now, NewDefaultParams())

	assert.Equal(t, 1, result.Streak)
	assert.True(t, result.IsNewStreak)
	assert.False(t, result.AlreadyCheckedIn)
	require.NotNil(t, updated.LastActiveDate)
	assert.Equal(t, day(2026, time.March, 10), *updated.LastActiveDate)
	assert.Equal(t, 1, updated.LongestStreak)
	require.Len(t, updated.StreakHistory, 1)
	assert.True(t, updated.StreakHistory[0].Active)

	// Input must not be mutated.
	assert.Equal(t, 0, progress.Streak)
	assert.Nil(t, progress.LastActiveDate)
}

func TestCalculateCheckInTransitions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name             string
		lastActive       time.Time
		startStreak      int
		now              time.Time
		wantStreak       int
		wantAlready      bool
		wantNewStreak    bool
		wantMutated      bool
		wantHistoryAdded bool
	}{
		{
			name:             "consecutive day increments streak",
			lastActive:       day(2026, time.March, 9),
			startStreak:      4,
			now:              time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC),
			wantStreak:       5,
			wantMutated:      true,
			wantHistoryAdded: true,
		},
		{
			name:        "same day is idempotent",
			lastActive:  day(2026, time.March, 10),
			startStreak: 5,
			now:         time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC),
			wantStreak:  5,
			wantAlready: true,
		},
		{
			name:             "one missed day resets to one",
			lastActive:       day(2026, time.March, 8),
			startStreak:      12,
			now:              time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC),
			wantStreak:       1,
			wantNewStreak:    true,
			wantMutated:      true,
			wantHistoryAdded: true,
		},
		{
			name:             "long gap resets to one",
			lastActive:       day(2026, time.January, 1),
			startStreak:      30,
			now:              time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC),
			wantStreak:       1,
			wantNewStreak:    true,
			wantMutated:      true,
			wantHistoryAdded: true,
		},
		{
			name:        "future last active date is treated as already checked in",
			lastActive:  day(2026, time.March, 12),
			startStreak: 3,
			now:         time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC),
			wantStreak:  3,
			wantAlready: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			progress := newTestProgress(t)
			lastActive := tc.lastActive
			progress.LastActiveDate = &lastActive
			progress.Streak = tc.startStreak
			progress.LongestStreak = tc.startStreak

			updated, result := calculateCheckIn(progress, tc.now, NewDefaultParams())

			assert.Equal(t, tc.wantStreak, result.Streak)
			assert.Equal(t, tc.wantAlready, result.AlreadyCheckedIn)
			assert.Equal(t, tc.wantNewStreak, result.IsNewStreak)
			assert.Equal(t, tc.wantStreak, updated.Streak)

			if tc.wantMutated {
				require.NotNil(t, updated.LastActiveDate)
				assert.Equal(t, normalizeDay(tc.now, time.UTC), *updated.LastActiveDate)
			} else {
				// lastActiveDate only ever moves forward.
				assert.Equal(t, tc.lastActive, *updated.LastActiveDate)
			}

			if tc.wantHistoryAdded {
				require.Len(t, updated.StreakHistory, 1)
			} else {
				assert.Empty(t, updated.StreakHistory)
			}
		})
	}
}

func TestCalculateCheckInLongestStreak(t *testing.T) {
	t.Parallel()

	progress := newTestProgress(t)
	lastActive := day(2026, time.March, 9)
	progress.LastActiveDate = &lastActive
	progress.Streak = 7
	progress.LongestStreak = 10

	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	updated, _ := calculateCheckIn(progress, now, NewDefaultParams())
	assert.Equal(t, 8, updated.Streak)
	assert.Equal(t, 10, updated.LongestStreak, "longest streak must not drop")

	// Push past the previous record.
	updated.Streak = 10
	next := now.AddDate(0, 0, 1)
	updated2, _ := calculateCheckIn(updated, next, NewDefaultParams())
	assert.Equal(t, 11, updated2.Streak)
	assert.Equal(t, 11, updated2.LongestStreak)
}

func TestCalculateCheckInHistoryEviction(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()
	progress := newTestProgress(t)

	start := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < params.HistoryLimit+5; i++ {
		progress, _ = calculateCheckIn(progress, start.AddDate(0, 0, i), params)
	}

	require.Len(t, progress.StreakHistory, params.HistoryLimit,
		"history must stay bounded")

	// Oldest entries evicted first: the window covers the last HistoryLimit days.
	wantOldest := day(2026, time.January, 6)
	assert.Equal(t, wantOldest, progress.StreakHistory[0].Date)
	wantNewest := day(2026, time.February, 4)
	assert.Equal(t, wantNewest, progress.StreakHistory[len(progress.StreakHistory)-1].Date)
	assert.Equal(t, params.HistoryLimit+5, progress.Streak)
}

func TestDaysBetweenAcrossDSTTransition(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 is the spring-forward date in the US: local midnights are
	// 23 real hours apart but still one calendar day.
	before := normalizeDay(time.Date(2026, time.March, 7, 12, 0, 0, 0, loc), loc)
	after := normalizeDay(time.Date(2026, time.March, 8, 12, 0, 0, 0, loc), loc)

	assert.Equal(t, 1, daysBetween(before, after))
}

func TestCalculateStatus(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()

	t.Run("fresh progress needs check-in", func(t *testing.T) {
		t.Parallel()
		progress := newTestProgress(t)

		status := calculateStatus(progress, time.Now().UTC(), params)

		assert.True(t, status.NeedsCheckIn)
		assert.Zero(t, status.Streak)
		assert.Empty(t, status.RecentHistory)
	})

	t.Run("checked in today does not need check-in", func(t *testing.T) {
		t.Parallel()
		progress := newTestProgress(t)
		now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
		progress, _ = calculateCheckIn(progress, now, params)

		status := calculateStatus(progress, now.Add(6*time.Hour), params)

		assert.False(t, status.NeedsCheckIn)
		assert.Equal(t, 1, status.Streak)
	})

	t.Run("recent history is capped at the window", func(t *testing.T) {
		t.Parallel()
		progress := newTestProgress(t)
		start := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
		for i := 0; i < 12; i++ {
			progress, _ = calculateCheckIn(progress, start.AddDate(0, 0, i), params)
		}

		status := calculateStatus(progress, start.AddDate(0, 0, 11), params)

		require.Len(t, status.RecentHistory, params.RecentWindow)
		assert.Equal(t, day(2026, time.March, 6), status.RecentHistory[0].Date)
		assert.Equal(t, day(2026, time.March, 12), status.RecentHistory[len(status.RecentHistory)-1].Date)

		// The returned slice is a copy; callers cannot corrupt stored history.
		status.RecentHistory[0].Active = false
		assert.True(t, progress.StreakHistory[len(progress.StreakHistory)-params.RecentWindow].Active)
	})
}

func TestServiceNilProgress(t *testing.T) {
	t.Parallel()

	service := NewDefaultService()

	_, _, err := service.CheckIn(nil, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNilProgress)

	_, err = service.Status(nil, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNilProgress)
}
