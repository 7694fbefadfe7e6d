package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
	"github.com/hkmu/coursehub/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the JSON error envelope. Sentinel
// and wrapped errors keep their user-facing message; anything unrecognized
// becomes an opaque 500.
func HandleAPIError(c *gin.Context, err error) {
	status := statusFor(err)
	message := messageFor(err, status)

	if status == 500 {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled API error")
	}

	c.JSON(status, dto.NewErrorResponse(message))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrReviewNotFound),
		errors.Is(err, apperrors.ErrMaterialNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		return 404
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return 403
	case errors.Is(err, apperrors.ErrUnauthenticated),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrSessionNotFound):
		return 401
	case errors.Is(err, apperrors.ErrCourseAlreadyExists),
		errors.Is(err, apperrors.ErrDuplicateReview):
		return 409
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrFileTypeInvalid),
		errors.Is(err, apperrors.ErrFileMissing):
		return 400
	case errors.Is(err, apperrors.ErrFileTooLarge):
		return 413
	default:
		return 500
	}
}

func messageFor(err error, status int) string {
	if status == 500 {
		return "Internal server error"
	}

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		return custom.Error()
	}

	// Walk down to the sentinel so wrapping context stays out of responses.
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
