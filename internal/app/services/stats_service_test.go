package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/repositories"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
)

type fakeCourseStore struct {
	lockOK    bool
	lockErr   error
	gotStats  models.CourseStats
	gotCode   string
	updateErr error
}

func (f *fakeCourseStore) LockForStats(ctx context.Context, q repositories.Querier, code string) (bool, error) {
	return f.lockOK, f.lockErr
}

func (f *fakeCourseStore) UpdateStats(ctx context.Context, q repositories.Querier, code string, stats models.CourseStats) error {
	f.gotCode = code
	f.gotStats = stats
	return f.updateErr
}

type fakeRatingsStore struct {
	ratings []models.ReviewRatings
	err     error
}

func (f *fakeRatingsStore) RatingsByCourse(ctx context.Context, q repositories.Querier, courseCode string) ([]models.ReviewRatings, error) {
	return f.ratings, f.err
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name    string
		ratings []models.ReviewRatings
		want    models.CourseStats
	}{
		{
			name:    "empty set resets everything to zero",
			ratings: nil,
			want:    models.CourseStats{},
		},
		{
			name: "single review",
			ratings: []models.ReviewRatings{
				{Rating: 4, Difficulty: 3, Workload: 5},
			},
			want: models.CourseStats{
				AverageRating:     4,
				AverageDifficulty: 3,
				AverageWorkload:   5,
				ReviewCount:       1,
			},
		},
		{
			name: "means rounded to two decimals",
			ratings: []models.ReviewRatings{
				{Rating: 5, Difficulty: 2, Workload: 3},
				{Rating: 4, Difficulty: 3, Workload: 3},
				{Rating: 4, Difficulty: 2, Workload: 4},
			},
			want: models.CourseStats{
				AverageRating:     4.33,
				AverageDifficulty: 2.33,
				AverageWorkload:   3.33,
				ReviewCount:       3,
			},
		},
		{
			name: "half values round away from zero",
			ratings: []models.ReviewRatings{
				{Rating: 4, Difficulty: 4, Workload: 2},
				{Rating: 5, Difficulty: 3, Workload: 3},
			},
			want: models.CourseStats{
				AverageRating:     4.5,
				AverageDifficulty: 3.5,
				AverageWorkload:   2.5,
				ReviewCount:       2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStats(tt.ratings))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 4.33, Round2(13.0/3.0))
	assert.Equal(t, 4.67, Round2(14.0/3.0))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 2.5, Round2(2.5))
}

func TestStatsServiceRecompute(t *testing.T) {
	t.Run("writes computed stats for the locked course", func(t *testing.T) {
		courses := &fakeCourseStore{lockOK: true}
		reviews := &fakeRatingsStore{ratings: []models.ReviewRatings{
			{Rating: 5, Difficulty: 1, Workload: 2},
			{Rating: 3, Difficulty: 2, Workload: 4},
		}}
		svc := NewStatsService(courses, reviews)

		err := svc.Recompute(context.Background(), nil, "COMP3500SEF")
		require.NoError(t, err)

		assert.Equal(t, "COMP3500SEF", courses.gotCode)
		assert.Equal(t, models.CourseStats{
			AverageRating:     4,
			AverageDifficulty: 1.5,
			AverageWorkload:   3,
			ReviewCount:       2,
		}, courses.gotStats)
	})

	t.Run("zeroes stats when the last review is gone", func(t *testing.T) {
		courses := &fakeCourseStore{lockOK: true}
		svc := NewStatsService(courses, &fakeRatingsStore{})

		err := svc.Recompute(context.Background(), nil, "COMP3500SEF")
		require.NoError(t, err)
		assert.Equal(t, models.CourseStats{}, courses.gotStats)
	})

	t.Run("missing course surfaces as not found", func(t *testing.T) {
		svc := NewStatsService(&fakeCourseStore{lockOK: false}, &fakeRatingsStore{})

		err := svc.Recompute(context.Background(), nil, "NOPE99")
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})
}
