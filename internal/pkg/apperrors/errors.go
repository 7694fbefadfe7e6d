package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrCourseNotFound   = errors.New("course not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrMaterialNotFound = errors.New("material not found")
	ErrUserNotFound     = errors.New("user not found")

	// Conflict errors
	ErrCourseAlreadyExists = errors.New("course with this code already exists")
	ErrDuplicateReview     = errors.New("you have already reviewed this course")

	// Authentication / authorization errors
	ErrUnauthenticated  = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrSessionNotFound  = errors.New("session not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Upload errors
	ErrFileTooLarge    = errors.New("file size exceeds 10MB limit")
	ErrFileTypeInvalid = errors.New("invalid file type. Only PDF, DOC, DOCX, PPT, PPTX are allowed")
	ErrFileMissing     = errors.New("please select a file to upload")
)

// CustomError wraps a sentinel error with a user-facing message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation failure with a field-level message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewNotFoundError wraps a not-found sentinel with a specific message.
func NewNotFoundError(sentinel error, message string) error {
	return &CustomError{Err: sentinel, Message: message}
}
