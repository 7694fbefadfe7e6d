package services

import (
	"context"
	"fmt"
	"math"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/repositories"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
)

// courseStatsStore is the slice of CourseRepository the recomputation needs.
type courseStatsStore interface {
	LockForStats(ctx context.Context, q repositories.Querier, code string) (bool, error)
	UpdateStats(ctx context.Context, q repositories.Querier, code string, stats models.CourseStats) error
}

// reviewRatingsStore is the slice of ReviewRepository the recomputation needs.
type reviewRatingsStore interface {
	RatingsByCourse(ctx context.Context, q repositories.Querier, courseCode string) ([]models.ReviewRatings, error)
}

// StatsService recomputes the derived aggregate fields of a course from its
// current review set. It always runs inside the transaction of the review
// mutation that triggered it, with the course row locked, so two concurrent
// submissions for the same course cannot interleave their reads.
type StatsService struct {
	courses courseStatsStore
	reviews reviewRatingsStore
}

// NewStatsService creates a new StatsService.
func NewStatsService(courses courseStatsStore, reviews reviewRatingsStore) *StatsService {
	return &StatsService{courses: courses, reviews: reviews}
}

// Recompute rewrites the four aggregate fields of a course from its reviews.
// The caller must pass the transaction the triggering mutation runs in.
func (s *StatsService) Recompute(ctx context.Context, q repositories.Querier, courseCode string) error {
	locked, err := s.courses.LockForStats(ctx, q, courseCode)
	if err != nil {
		return fmt.Errorf("error locking course for stats: %w", err)
	}
	if !locked {
		return apperrors.ErrCourseNotFound
	}

	ratings, err := s.reviews.RatingsByCourse(ctx, q, courseCode)
	if err != nil {
		return fmt.Errorf("error reading reviews for stats: %w", err)
	}

	return s.courses.UpdateStats(ctx, q, courseCode, ComputeStats(ratings))
}

// ComputeStats derives the aggregate fields from a review set: all zeros for
// an empty set, otherwise the arithmetic mean of each rating field rounded
// to two decimals.
func ComputeStats(ratings []models.ReviewRatings) models.CourseStats {
	if len(ratings) == 0 {
		return models.CourseStats{}
	}

	var sumRating, sumDifficulty, sumWorkload int
	for _, r := range ratings {
		sumRating += r.Rating
		sumDifficulty += r.Difficulty
		sumWorkload += r.Workload
	}

	n := float64(len(ratings))
	return models.CourseStats{
		AverageRating:     Round2(float64(sumRating) / n),
		AverageDifficulty: Round2(float64(sumDifficulty) / n),
		AverageWorkload:   Round2(float64(sumWorkload) / n),
		ReviewCount:       len(ratings),
	}
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
