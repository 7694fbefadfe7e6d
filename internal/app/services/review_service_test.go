package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/app/repositories"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
)

func validReviewRequest() *dto.CreateReviewRequest {
	return &dto.CreateReviewRequest{
		CourseCode: "COMP3500SEF",
		Semester:   "Autumn",
		Year:       2025,
		Instructor: "Dr. Chan",
		Rating:     4,
		Difficulty: 3,
		Workload:   3,
		Grade:      "B+",
		ReviewText: strings.Repeat("Solid course with practical assignments. ", 3),
	}
}

// Field validation fires before the course lookup, so no repositories are
// needed for these paths.
func validationOnlyReviewService() *ReviewService {
	return NewReviewService(nil, &repositories.Repositories{}, nil)
}

func TestReviewCreateValidation(t *testing.T) {
	svc := validationOnlyReviewService()
	ctx := context.Background()
	user := &models.User{ID: 1, Name: "Student"}

	t.Run("unknown semester rejected", func(t *testing.T) {
		req := validReviewRequest()
		req.Semester = "Winter"
		_, err := svc.Create(ctx, user, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown grade rejected", func(t *testing.T) {
		req := validReviewRequest()
		req.Grade = "Z"
		_, err := svc.Create(ctx, user, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("omitted grade accepted", func(t *testing.T) {
		err := validateReviewFields("Autumn", "", nil, nil, "")
		assert.NoError(t, err)
	})

	t.Run("oversized pros entry rejected", func(t *testing.T) {
		req := validReviewRequest()
		req.Pros = []string{strings.Repeat("x", 201)}
		_, err := svc.Create(ctx, user, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("blank cons entry rejected", func(t *testing.T) {
		req := validReviewRequest()
		req.Cons = []string{"   "}
		_, err := svc.Create(ctx, user, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("oversized tips rejected", func(t *testing.T) {
		req := validReviewRequest()
		req.Tips = strings.Repeat("x", 501)
		_, err := svc.Create(ctx, user, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}
