package repositories

import (
	"github.com/Masterminds/squirrel"

	"github.com/hkmu/coursehub/internal/app/models/dto"
)

// This file is the query/filter/sort composer: it turns the optional filter
// keys of a listing request into a squirrel predicate plus an ordering
// clause. Absent keys impose no constraint. The composer never mutates its
// input and the builders are pure, which keeps them testable without a
// database.

var courseColumns = []string{
	"id", "code", "name", "program", "credits", "description",
	"prerequisites", "instructors",
	"average_rating", "review_count", "average_difficulty", "average_workload",
	"created_at", "updated_at",
}

var reviewColumns = []string{
	"id", "course_code", "user_id", "user_name", "user_photo",
	"semester", "year", "instructor",
	"rating", "difficulty", "workload", "grade",
	"review_text", "pros", "cons", "tips",
	"helpful_count", "created_at", "updated_at",
}

// materialListColumns deliberately excludes file_data; listings never carry
// the blob.
var materialListColumns = []string{
	"id", "course_code", "uploaded_by", "uploader_name",
	"title", "description", "type", "semester", "year",
	"file_type", "file_name", "file_size",
	"download_count", "created_at", "updated_at",
}

// courseSortKeys maps the symbolic sort names of the course listing to SQL
// ordering clauses. Unknown or empty keys fall back to code ascending.
var courseSortKeys = map[string]string{
	"rating-high":     "average_rating DESC, code ASC",
	"rating-low":      "average_rating ASC, code ASC",
	"reviews-most":    "review_count DESC, code ASC",
	"difficulty-easy": "average_difficulty ASC, code ASC",
	"difficulty-hard": "average_difficulty DESC, code ASC",
}

// reviewSortKeys maps the symbolic sort names of the review listing to SQL
// ordering clauses. Creation time descending is both the default and the
// tiebreak.
var reviewSortKeys = map[string]string{
	"rating-high": "rating DESC, created_at DESC",
	"rating-low":  "rating ASC, created_at DESC",
	"helpful":     "helpful_count DESC, created_at DESC",
}

// buildCourseListQuery composes the course listing query from a filter.
//
// The difficulty buckets keep the tie-inclusive boundaries of the original
// classification: easy is <= 2, medium is 2..4 inclusive, hard is >= 4. A
// course sitting exactly on a boundary therefore appears in two buckets.
func buildCourseListQuery(filter dto.CourseFilter) squirrel.SelectBuilder {
	query := squirrel.Select(courseColumns...).
		From("courses").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"name": pattern},
		})
	}
	if filter.Program != "" {
		query = query.Where(squirrel.Eq{"program": filter.Program})
	}
	if filter.MinRating != nil {
		query = query.Where(squirrel.GtOrEq{"average_rating": *filter.MinRating})
	}
	switch filter.Difficulty {
	case "easy":
		query = query.Where(squirrel.LtOrEq{"average_difficulty": 2})
	case "medium":
		query = query.Where(squirrel.And{
			squirrel.GtOrEq{"average_difficulty": 2},
			squirrel.LtOrEq{"average_difficulty": 4},
		})
	case "hard":
		query = query.Where(squirrel.GtOrEq{"average_difficulty": 4})
	}
	if filter.Instructor != "" {
		pattern := "%" + filter.Instructor + "%"
		query = query.Where(
			squirrel.Expr("EXISTS (SELECT 1 FROM unnest(instructors) AS i WHERE i ILIKE ?)", pattern),
		)
	}

	orderBy, ok := courseSortKeys[filter.Sort]
	if !ok {
		orderBy = "code ASC"
	}
	return query.OrderBy(orderBy)
}

// buildReviewListQuery composes the review listing query from a filter.
func buildReviewListQuery(filter dto.ReviewFilter) squirrel.SelectBuilder {
	query := squirrel.Select(reviewColumns...).
		From("reviews").
		PlaceholderFormat(squirrel.Dollar)

	if filter.CourseCode != "" {
		query = query.Where(squirrel.Eq{"course_code": filter.CourseCode})
	}
	if filter.UserID != nil {
		query = query.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Semester != "" {
		query = query.Where(squirrel.Eq{"semester": filter.Semester})
	}
	if filter.Year != nil {
		query = query.Where(squirrel.Eq{"year": *filter.Year})
	}
	if filter.Instructor != "" {
		query = query.Where(squirrel.ILike{"instructor": "%" + filter.Instructor + "%"})
	}
	if filter.MinRating != nil {
		query = query.Where(squirrel.GtOrEq{"rating": *filter.MinRating})
	}

	orderBy, ok := reviewSortKeys[filter.Sort]
	if !ok {
		orderBy = "created_at DESC"
	}
	return query.OrderBy(orderBy)
}

// buildMaterialListQuery composes the material listing query from a filter.
func buildMaterialListQuery(filter dto.MaterialFilter) squirrel.SelectBuilder {
	query := squirrel.Select(materialListColumns...).
		From("materials").
		PlaceholderFormat(squirrel.Dollar)

	if filter.CourseCode != "" {
		query = query.Where(squirrel.Eq{"course_code": filter.CourseCode})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.Semester != "" {
		query = query.Where(squirrel.Eq{"semester": filter.Semester})
	}
	if filter.Year != nil {
		query = query.Where(squirrel.Eq{"year": *filter.Year})
	}
	if filter.UploadedBy != nil {
		query = query.Where(squirrel.Eq{"uploaded_by": *filter.UploadedBy})
	}

	return query.OrderBy("created_at DESC")
}
