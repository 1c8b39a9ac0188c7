package progression

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
)

func newTestProgress(t *testing.T) *domain.Progress {
	t.Helper()
	progress, err := domain.NewProgress(uuid.New())
	require.NoError(t, err, "Failed to create progress")
	return progress
}

func TestLevelForXP(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()

	testCases := []struct {
		xp   int
		want int
	}{
		{xp: 0, want: 1},
		{xp: 99, want: 1},
		{xp: 100, want: 2},
		{xp: 105, want: 2},
		{xp: 199, want: 2},
		{xp: 200, want: 3},
		{xp: 1050, want: 11},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, levelForXP(tc.xp, params), "xp=%d", tc.xp)
	}
}

func TestAddXP(t *testing.T) {
	t.Parallel()

	service := NewDefaultService()
	now := time.Now().UTC()

	t.Run("crossing a level boundary", func(t *testing.T) {
		t.Parallel()
		progress := newTestProgress(t)
		progress.XP = 95

		updated, err := service.AddXP(progress, 10, now)
		require.NoError(t, err)

		assert.Equal(t, 105, updated.XP)
		assert.Equal(t, 2, updated.Level)
		require.NotNil(t, updated.LastXPUpdate)
		assert.Equal(t, now, *updated.LastXPUpdate)

		// Input untouched.
		assert.Equal(t, 95, progress.XP)
		assert.Equal(t, 1, progress.Level)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		t.Parallel()
		_, err := service.AddXP(newTestProgress(t), 0, now)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		t.Parallel()
		_, err := service.AddXP(newTestProgress(t), -50, now)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("nil progress rejected", func(t *testing.T) {
		t.Parallel()
		_, err := service.AddXP(nil, 10, now)
		assert.ErrorIs(t, err, ErrNilProgress)
	})
}

func TestSyncXP(t *testing.T) {
	t.Parallel()

	service := NewDefaultService()
	now := time.Now().UTC()

	testCases := []struct {
		name        string
		serverXP    int
		clientXP    int
		clientLevel int
		wantXP      int
		wantLevel   int
		wantSynced  bool
	}{
		{
			name:       "client behind server changes nothing",
			serverXP:   50,
			clientXP:   30,
			wantXP:     50,
			wantLevel:  1,
			wantSynced: false,
		},
		{
			name:       "client equal to server changes nothing",
			serverXP:   50,
			clientXP:   50,
			wantXP:     50,
			wantLevel:  1,
			wantSynced: false,
		},
		{
			name:        "client ahead with level wins",
			serverXP:    50,
			clientXP:    250,
			clientLevel: 3,
			wantXP:      250,
			wantLevel:   3,
			wantSynced:  true,
		},
		{
			name:       "client ahead without level recomputes it",
			serverXP:   50,
			clientXP:   250,
			wantXP:     250,
			wantLevel:  3,
			wantSynced: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			progress := newTestProgress(t)
			progress.XP = tc.serverXP
			progress.Level = levelForXP(tc.serverXP, NewDefaultParams())

			updated, result, err := service.SyncXP(progress, tc.clientXP, tc.clientLevel, now)
			require.NoError(t, err)

			assert.Equal(t, tc.wantXP, result.XP)
			assert.Equal(t, tc.wantLevel, result.Level)
			assert.Equal(t, tc.wantSynced, result.Synced)
			assert.Equal(t, tc.wantXP, updated.XP)

			// Monotonicity: the server value never decreases.
			assert.GreaterOrEqual(t, updated.XP, tc.serverXP)
			assert.Equal(t, tc.serverXP, progress.XP, "input must not be mutated")
		})
	}

	t.Run("nil progress rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := service.SyncXP(nil, 10, 0, now)
		assert.ErrorIs(t, err, ErrNilProgress)
	})
}

func TestAwardForResult(t *testing.T) {
	t.Parallel()

	service := NewDefaultService()
	userID := uuid.New()

	testCases := []struct {
		name       string
		difficulty domain.Difficulty
		accuracy   float64
		want       int
	}{
		{name: "easy perfect", difficulty: domain.DifficultyEasy, accuracy: 1.0, want: 10},
		{name: "medium perfect", difficulty: domain.DifficultyMedium, accuracy: 1.0, want: 20},
		{name: "hard perfect", difficulty: domain.DifficultyHard, accuracy: 1.0, want: 35},
		{name: "hard half accuracy rounds", difficulty: domain.DifficultyHard, accuracy: 0.5, want: 18},
		{name: "medium low accuracy", difficulty: domain.DifficultyMedium, accuracy: 0.25, want: 5},
		{name: "floor of one on near-zero accuracy", difficulty: domain.DifficultyEasy, accuracy: 0.01, want: 1},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := domain.NewGameResult(userID, 1, 100, tc.accuracy, 60, 1, tc.difficulty)
			require.NoError(t, err)

			award, err := service.AwardForResult(result)
			require.NoError(t, err)
			assert.Equal(t, tc.want, award)
		})
	}

	t.Run("nil result rejected", func(t *testing.T) {
		t.Parallel()
		_, err := service.AwardForResult(nil)
		assert.ErrorIs(t, err, ErrNilResult)
	})
}
