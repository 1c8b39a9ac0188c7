package progression

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
)

func TestClassifyResult(t *testing.T) {
	t.Parallel()

	service := NewDefaultService()
	userID := uuid.New()

	testCases := []struct {
		name            string
		accuracy        float64
		durationSeconds int
		completedLevel  int
		difficulty      domain.Difficulty
		streak          int
		want            domain.LearnerCategory
	}{
		{
			name:            "high accuracy within easy budget is fast",
			accuracy:        0.90,
			durationSeconds: 45,
			difficulty:      domain.DifficultyEasy,
			want:            domain.LearnerCategoryFast,
		},
		{
			name:            "high accuracy at the medium budget boundary is fast",
			accuracy:        0.85,
			durationSeconds: 120,
			difficulty:      domain.DifficultyMedium,
			want:            domain.LearnerCategoryFast,
		},
		{
			name:            "high accuracy over budget but deep level is fast",
			accuracy:        0.95,
			durationSeconds: 500,
			completedLevel:  6,
			difficulty:      domain.DifficultyHard,
			want:            domain.LearnerCategoryFast,
		},
		{
			name:            "high accuracy over budget shallow level is neutral",
			accuracy:        0.95,
			durationSeconds: 500,
			completedLevel:  2,
			difficulty:      domain.DifficultyHard,
			want:            domain.LearnerCategoryNeutral,
		},
		{
			name:            "low accuracy is slow",
			accuracy:        0.30,
			durationSeconds: 90,
			difficulty:      domain.DifficultyMedium,
			want:            domain.LearnerCategorySlow,
		},
		{
			name:            "accuracy at the slow boundary is slow",
			accuracy:        0.40,
			durationSeconds: 90,
			difficulty:      domain.DifficultyMedium,
			want:            domain.LearnerCategorySlow,
		},
		{
			name:            "long duration with middling accuracy is slow",
			accuracy:        0.60,
			durationSeconds: 700,
			difficulty:      domain.DifficultyMedium,
			want:            domain.LearnerCategorySlow,
		},
		{
			name:            "slow signal softened by a long streak",
			accuracy:        0.30,
			durationSeconds: 90,
			difficulty:      domain.DifficultyMedium,
			streak:          7,
			want:            domain.LearnerCategoryNeutral,
		},
		{
			name:            "streak below the grace threshold stays slow",
			accuracy:        0.30,
			durationSeconds: 90,
			difficulty:      domain.DifficultyMedium,
			streak:          6,
			want:            domain.LearnerCategorySlow,
		},
		{
			name:            "middling result is neutral",
			accuracy:        0.65,
			durationSeconds: 180,
			difficulty:      domain.DifficultyMedium,
			want:            domain.LearnerCategoryNeutral,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := domain.NewGameResult(
				userID, 1, 100, tc.accuracy, tc.durationSeconds, tc.completedLevel, tc.difficulty)
			require.NoError(t, err)

			progress := newTestProgress(t)
			progress.Streak = tc.streak

			category, err := service.Classify(result, progress)
			require.NoError(t, err)
			assert.Equal(t, tc.want, category)
		})
	}

	t.Run("nil inputs rejected", func(t *testing.T) {
		t.Parallel()

		progress := newTestProgress(t)
		result, err := domain.NewGameResult(userID, 1, 100, 0.5, 60, 1, domain.DifficultyEasy)
		require.NoError(t, err)

		_, err = service.Classify(nil, progress)
		assert.ErrorIs(t, err, ErrNilResult)

		_, err = service.Classify(result, nil)
		assert.ErrorIs(t, err, ErrNilProgress)
	})
}
