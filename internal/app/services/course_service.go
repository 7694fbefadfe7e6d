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

// CourseService handles course business rules: code/enum validation,
// uniqueness conflicts and the deletion cascade.
type CourseService struct {
	pool      *pgxpool.Pool
	courses   *repositories.CourseRepository
	reviews   *repositories.ReviewRepository
	materials *repositories.MaterialRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(pool *pgxpool.Pool, repos *repositories.Repositories) *CourseService {
	return &CourseService{
		pool:      pool,
		courses:   repos.Courses,
		reviews:   repos.Reviews,
		materials: repos.Materials,
	}
}

func validateCourseFields(name, program, description string, credits int) error {
	if l := len(strings.TrimSpace(name)); l < validation.CourseNameMinLength || l > validation.CourseNameMaxLength {
		return apperrors.NewValidationError("Course name must be between 3 and 200 characters")
	}
	if !models.IsValidProgram(program) {
		return apperrors.NewValidationError("Invalid program selected")
	}
	if credits < 1 || credits > 10 {
		return apperrors.NewValidationError("Credits must be between 1 and 10")
	}
	if l := len(strings.TrimSpace(description)); l < validation.DescriptionMinLength || l > validation.DescriptionMaxLength {
		return apperrors.NewValidationError("Description must be between 50 and 2000 characters")
	}
	return nil
}

// Create validates and inserts a new course. The course code is validated
// as submitted: lowercase or undersized codes are rejected, never coerced.
func (s *CourseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	code := strings.TrimSpace(req.CourseCode)
	if !validation.IsValidCourseCode(code) {
		return nil, apperrors.NewValidationError(
			"Course code must be 6-15 uppercase letters and numbers")
	}
	if err := validateCourseFields(req.CourseName, req.Program, req.Description, req.Credits); err != nil {
		return nil, err
	}

	course := &models.Course{
		Code:          code,
		Name:          strings.TrimSpace(req.CourseName),
		Program:       req.Program,
		Credits:       req.Credits,
		Description:   strings.TrimSpace(req.Description),
		Prerequisites: validation.TrimListItems(req.Prerequisites),
		Instructors:   validation.TrimListItems(req.Instructors),
	}

	if _, err := s.courses.Create(ctx, course); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintCourseCode) {
			return nil, apperrors.ErrCourseAlreadyExists
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().Str("courseCode", course.Code).Msg("Course created")
	return s.GetByCode(ctx, course.Code)
}

// GetByCode fetches a course, mapping absence to ErrCourseNotFound. Lookups
// accept any case; stored codes are uppercase.
func (s *CourseService) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	course, err := s.courses.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("error finding course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// List returns courses matching the filter plus the total match count.
func (s *CourseService) List(ctx context.Context, filter dto.CourseFilter, page, pageSize int) ([]models.Course, int64, error) {
	return s.courses.List(ctx, filter, page, pageSize)
}

// Update rewrites the writable course fields.
func (s *CourseService) Update(ctx context.Context, code string, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if err := validateCourseFields(req.CourseName, req.Program, req.Description, req.Credits); err != nil {
		return nil, err
	}

	normalized := strings.ToUpper(strings.TrimSpace(code))
	trimmed := *req
	trimmed.CourseName = strings.TrimSpace(req.CourseName)
	trimmed.Description = strings.TrimSpace(req.Description)
	trimmed.Prerequisites = validation.TrimListItems(req.Prerequisites)
	trimmed.Instructors = validation.TrimListItems(req.Instructors)

	updated, err := s.courses.Update(ctx, normalized, &trimmed)
	if err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	if !updated {
		return nil, apperrors.ErrCourseNotFound
	}

	logger.Info().Str("courseCode", normalized).Msg("Course updated")
	return s.GetByCode(ctx, normalized)
}

// Delete removes a course and, in the same transaction, every review and
// material referencing it. Soft references would otherwise orphan.
func (s *CourseService) Delete(ctx context.Context, code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		reviewCount, err := s.reviews.DeleteByCourse(ctx, tx, normalized)
		if err != nil {
			return err
		}
		materialCount, err := s.materials.DeleteByCourse(ctx, tx, normalized)
		if err != nil {
			return err
		}

		deleted, err := s.courses.Delete(ctx, tx, normalized)
		if err != nil {
			return err
		}
		if !deleted {
			return apperrors.ErrCourseNotFound
		}

		logger.Info().
			Str("courseCode", normalized).
			Int64("reviews", reviewCount).
			Int64("materials", materialCount).
			Msg("Course deleted with cascade")
		return nil
	})
	return err
}

// TopRated returns the highest rated courses with at least one review.
func (s *CourseService) TopRated(ctx context.Context, limit int) ([]models.Course, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.courses.TopRated(ctx, limit)
}
