package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/app/repositories"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
)

func validCourseRequest() *dto.CreateCourseRequest {
	return &dto.CreateCourseRequest{
		CourseCode:  "COMP3500SEF",
		CourseName:  "Software Engineering",
		Program:     "Computer Science",
		Credits:     3,
		Description: strings.Repeat("A thorough introduction to software engineering. ", 3),
	}
}

// Validation rejections fire before any repository call, so a zero-value
// repository bundle is enough here.
func validationOnlyCourseService() *CourseService {
	return NewCourseService(nil, &repositories.Repositories{})
}

func TestCourseCreateValidation(t *testing.T) {
	svc := validationOnlyCourseService()
	ctx := context.Background()

	t.Run("lowercase code rejected, not coerced", func(t *testing.T) {
		req := validCourseRequest()
		req.CourseCode = "comp3500sef"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("short code rejected", func(t *testing.T) {
		req := validCourseRequest()
		req.CourseCode = "COMP1"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown program rejected", func(t *testing.T) {
		req := validCourseRequest()
		req.Program = "Quantum Basket Weaving"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("credits out of range rejected", func(t *testing.T) {
		for _, credits := range []int{0, 11, -3} {
			req := validCourseRequest()
			req.Credits = credits
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "credits %d", credits)
		}
	})

	t.Run("short description rejected", func(t *testing.T) {
		req := validCourseRequest()
		req.Description = strings.Repeat("x", 49)
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("whitespace-padded description measured after trimming", func(t *testing.T) {
		req := validCourseRequest()
		req.Description = "   " + strings.Repeat("x", 49) + "   "
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}
