package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/app/repositories"
	"github.com/hkmu/coursehub/internal/db"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
	"github.com/hkmu/coursehub/internal/pkg/dberrors"
	"github.com/hkmu/coursehub/internal/pkg/logger"
	"github.com/hkmu/coursehub/internal/pkg/validation"
)

// ReviewService handles review business rules. Every mutation runs in a
// transaction that also recomputes the affected course's aggregates, with
// the course row locked for the duration, so the aggregate invariant holds
// at commit.
type ReviewService struct {
	pool    *pgxpool.Pool
	reviews *repositories.ReviewRepository
	courses *repositories.CourseRepository
	stats   *StatsService
}

// NewReviewService creates a new ReviewService.
func NewReviewService(pool *pgxpool.Pool, repos *repositories.Repositories, stats *StatsService) *ReviewService {
	return &ReviewService{
		pool:    pool,
		reviews: repos.Reviews,
		courses: repos.Courses,
		stats:   stats,
	}
}

func validateReviewFields(semester string, grade string, pros, cons []string, tips string) error {
	if !models.IsValidSemester(semester) {
		return apperrors.NewValidationError("Invalid semester")
	}
	if !models.IsValidGrade(grade) {
		return apperrors.NewValidationError("Invalid grade")
	}
	if !validation.ValidateListItems(pros, validation.ProConMaxLength) {
		return apperrors.NewValidationError("Pros entries must be non-empty and at most 200 characters")
	}
	if !validation.ValidateListItems(cons, validation.ProConMaxLength) {
		return apperrors.NewValidationError("Cons entries must be non-empty and at most 200 characters")
	}
	if len(tips) > validation.TipsMaxLength {
		return apperrors.NewValidationError("Tips must not exceed 500 characters")
	}
	return nil
}

// Create inserts a review on behalf of user and recomputes the course
// aggregates in the same transaction. A second review for the same
// (course, user) pair is a conflict.
func (s *ReviewService) Create(ctx context.Context, user *models.User, req *dto.CreateReviewRequest) (*models.Review, error) {
	if err := validateReviewFields(req.Semester, req.Grade, req.Pros, req.Cons, req.Tips); err != nil {
		return nil, err
	}

	courseCode := strings.ToUpper(strings.TrimSpace(req.CourseCode))
	course, err := s.courses.GetByCode(ctx, courseCode)
	if err != nil {
		return nil, fmt.Errorf("error checking course: %w", err)
	}
	if course == nil {
		return nil, apperrors.NewNotFoundError(apperrors.ErrCourseNotFound,
			"Course "+courseCode+" does not exist")
	}

	review := &models.Review{
		CourseCode: courseCode,
		UserID:     user.ID,
		UserName:   user.Name,
		UserPhoto:  user.Photo,
		Semester:   req.Semester,
		Year:       req.Year,
		Instructor: strings.TrimSpace(req.Instructor),
		Rating:     req.Rating,
		Difficulty: req.Difficulty,
		Workload:   req.Workload,
		Grade:      req.Grade,
		ReviewText: strings.TrimSpace(req.ReviewText),
		Pros:       validation.TrimListItems(req.Pros),
		Cons:       validation.TrimListItems(req.Cons),
		Tips:       strings.TrimSpace(req.Tips),
	}

	var id int64
	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		// Lock the course row first: concurrent submissions for the same
		// course serialize here, before the insert.
		locked, err := s.courses.LockForStats(ctx, tx, courseCode)
		if err != nil {
			return err
		}
		if !locked {
			return apperrors.ErrCourseNotFound
		}

		id, err = s.reviews.Create(ctx, tx, review)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintReviewCourseUser) {
				return apperrors.ErrDuplicateReview
			}
			return fmt.Errorf("error creating review: %w", err)
		}

		return s.stats.Recompute(ctx, tx, courseCode)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("courseCode", courseCode).
		Int64("userId", user.ID).
		Msg("Review created")
	return s.GetByID(ctx, id)
}

// GetByID fetches a review, mapping absence to ErrReviewNotFound.
func (s *ReviewService) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding review: %w", err)
	}
	if review == nil {
		return nil, apperrors.ErrReviewNotFound
	}
	return review, nil
}

// List returns reviews matching the filter plus the total match count.
func (s *ReviewService) List(ctx context.Context, filter dto.ReviewFilter, page, pageSize int) ([]models.Review, int64, error) {
	if filter.CourseCode != "" {
		filter.CourseCode = strings.ToUpper(strings.TrimSpace(filter.CourseCode))
	}
	return s.reviews.List(ctx, filter, page, pageSize)
}

// Update edits a review owned by actor (or any review when actor is admin)
// and recomputes the course aggregates in the same transaction.
func (s *ReviewService) Update(ctx context.Context, actor *models.User, id int64, req *dto.UpdateReviewRequest) (*models.Review, error) {
	if err := validateReviewFields(req.Semester, req.Grade, req.Pros, req.Cons, req.Tips); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != actor.ID && !actor.IsAdmin {
		return nil, apperrors.NewForbiddenError("You can only edit your own reviews")
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		locked, err := s.courses.LockForStats(ctx, tx, existing.CourseCode)
		if err != nil {
			return err
		}
		if !locked {
			return apperrors.ErrCourseNotFound
		}

		updated, err := s.reviews.Update(ctx, tx, id, req)
		if err != nil {
			return err
		}
		if !updated {
			return apperrors.ErrReviewNotFound
		}

		return s.stats.Recompute(ctx, tx, existing.CourseCode)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("reviewId", id).Msg("Review updated")
	return s.GetByID(ctx, id)
}

// Delete removes a review owned by actor (or any review when actor is
// admin) and recomputes the course aggregates in the same transaction.
// Creating then deleting a review restores the aggregates exactly.
func (s *ReviewService) Delete(ctx context.Context, actor *models.User, id int64) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != actor.ID && !actor.IsAdmin {
		return apperrors.NewForbiddenError("You can only delete your own reviews")
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		locked, err := s.courses.LockForStats(ctx, tx, existing.CourseCode)
		if err != nil {
			return err
		}
		if !locked {
			return apperrors.ErrCourseNotFound
		}

		deleted, err := s.reviews.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperrors.ErrReviewNotFound
		}

		return s.stats.Recompute(ctx, tx, existing.CourseCode)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("reviewId", id).Msg("Review deleted")
	return nil
}

// MarkHelpful bumps the helpful counter. The increment is a single atomic
// statement, so the count always equals the number of successful calls.
func (s *ReviewService) MarkHelpful(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.reviews.IncrementHelpful(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error marking review helpful: %w", err)
	}
	if review == nil {
		return nil, apperrors.ErrReviewNotFound
	}
	return review, nil
}

// Recent returns the newest reviews across all courses.
func (s *ReviewService) Recent(ctx context.Context, limit int) ([]models.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.reviews.Recent(ctx, limit)
}

// ByInstructor returns reviews for a given instructor across all courses,
// matched case-insensitively by substring, newest first.
func (s *ReviewService) ByInstructor(ctx context.Context, instructor string, limit int) ([]models.Review, error) {
	instructor = strings.TrimSpace(instructor)
	if instructor == "" {
		return nil, apperrors.NewValidationError("Instructor name is required")
	}
	if limit <= 0 {
		limit = 50
	}
	reviews, _, err := s.reviews.List(ctx, dto.ReviewFilter{Instructor: instructor}, 1, limit)
	return reviews, err
}

// DifficultyDistribution counts reviews per difficulty value.
func (s *ReviewService) DifficultyDistribution(ctx context.Context) (map[int]int64, error) {
	return s.reviews.DifficultyDistribution(ctx)
}
