package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names from migrations/001_init.sql. Kept here so services can
// translate unique violations into domain conflicts without string matching.
const (
	ConstraintCourseCode       = "courses_code_key"
	ConstraintReviewCourseUser = "reviews_course_code_user_id_key"
	ConstraintUserGoogleID     = "users_google_id_key"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique
// violation (23505) on a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
}
