package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
)

func runHandleAPIError(t *testing.T, err error) (int, dto.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/api/v1/test", nil)

	HandleAPIError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "course not found", err: apperrors.ErrCourseNotFound, wantStatus: 404},
		{name: "review not found", err: apperrors.ErrReviewNotFound, wantStatus: 404},
		{name: "material not found", err: apperrors.ErrMaterialNotFound, wantStatus: 404},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: 403},
		{name: "unauthenticated", err: apperrors.ErrUnauthenticated, wantStatus: 401},
		{name: "expired token", err: apperrors.ErrTokenExpired, wantStatus: 401},
		{name: "duplicate course", err: apperrors.ErrCourseAlreadyExists, wantStatus: 409},
		{name: "duplicate review", err: apperrors.ErrDuplicateReview, wantStatus: 409},
		{name: "validation failure", err: apperrors.ErrValidationFailed, wantStatus: 400},
		{name: "bad file type", err: apperrors.ErrFileTypeInvalid, wantStatus: 400},
		{name: "oversized file", err: apperrors.ErrFileTooLarge, wantStatus: 413},
		{name: "unknown error", err: errors.New("pool exhausted"), wantStatus: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := runHandleAPIError(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHandleAPIErrorMessages(t *testing.T) {
	t.Run("sentinel keeps its message", func(t *testing.T) {
		_, body := runHandleAPIError(t, apperrors.ErrDuplicateReview)
		assert.Equal(t, "you have already reviewed this course", body.Error)
	})

	t.Run("wrapped sentinel drops the wrapping context", func(t *testing.T) {
		wrapped := fmt.Errorf("error creating review: %w", apperrors.ErrCourseNotFound)
		status, body := runHandleAPIError(t, wrapped)
		assert.Equal(t, 404, status)
		assert.Equal(t, "course not found", body.Error)
	})

	t.Run("specific not-found message rides a 404", func(t *testing.T) {
		err := apperrors.NewNotFoundError(apperrors.ErrCourseNotFound, "Course COMP9999SEF does not exist")
		status, body := runHandleAPIError(t, err)
		assert.Equal(t, 404, status)
		assert.Equal(t, "Course COMP9999SEF does not exist", body.Error)
	})

	t.Run("custom error surfaces its message", func(t *testing.T) {
		err := apperrors.NewValidationError("Invalid semester")
		status, body := runHandleAPIError(t, err)
		assert.Equal(t, 400, status)
		assert.Equal(t, "Invalid semester", body.Error)
	})

	t.Run("internal errors stay opaque", func(t *testing.T) {
		_, body := runHandleAPIError(t, errors.New("dial tcp 10.0.0.3:5432: connection refused"))
		assert.Equal(t, "Internal server error", body.Error)
		assert.NotContains(t, body.Error, "10.0.0.3")
	})
}
