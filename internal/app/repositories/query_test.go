package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkmu/coursehub/internal/app/models/dto"
)

func TestBuildCourseListQuery(t *testing.T) {
	t.Run("no filter selects everything ordered by code", func(t *testing.T) {
		sql, args, err := buildCourseListQuery(dto.CourseFilter{}).ToSql()
		require.NoError(t, err)
		assert.NotContains(t, sql, "WHERE")
		assert.Contains(t, sql, "ORDER BY code ASC")
		assert.Empty(t, args)
	})

	t.Run("search matches code or name case-insensitively", func(t *testing.T) {
		sql, args, err := buildCourseListQuery(dto.CourseFilter{Search: "comp"}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "code ILIKE")
		assert.Contains(t, sql, "name ILIKE")
		assert.Equal(t, []interface{}{"%comp%", "%comp%"}, args)
	})

	t.Run("min rating uses inclusive lower bound", func(t *testing.T) {
		minRating := 4.0
		sql, args, err := buildCourseListQuery(dto.CourseFilter{MinRating: &minRating}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "average_rating >=")
		assert.Equal(t, []interface{}{4.0}, args)
	})

	t.Run("difficulty buckets are tie-inclusive", func(t *testing.T) {
		tests := []struct {
			bucket string
			want   string
			args   []interface{}
		}{
			{bucket: "easy", want: "average_difficulty <=", args: []interface{}{2}},
			{bucket: "hard", want: "average_difficulty >=", args: []interface{}{4}},
		}
		for _, tt := range tests {
			sql, args, err := buildCourseListQuery(dto.CourseFilter{Difficulty: tt.bucket}).ToSql()
			require.NoError(t, err)
			assert.Contains(t, sql, tt.want)
			assert.Equal(t, tt.args, args)
		}

		sql, args, err := buildCourseListQuery(dto.CourseFilter{Difficulty: "medium"}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "average_difficulty >=")
		assert.Contains(t, sql, "average_difficulty <=")
		assert.Equal(t, []interface{}{2, 4}, args)
	})

	t.Run("unknown difficulty imposes no constraint", func(t *testing.T) {
		sql, _, err := buildCourseListQuery(dto.CourseFilter{Difficulty: "brutal"}).ToSql()
		require.NoError(t, err)
		assert.NotContains(t, sql, "WHERE")
	})

	t.Run("instructor searches the array elements", func(t *testing.T) {
		sql, args, err := buildCourseListQuery(dto.CourseFilter{Instructor: "chan"}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "unnest(instructors)")
		assert.Equal(t, []interface{}{"%chan%"}, args)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		minRating := 3.5
		sql, args, err := buildCourseListQuery(dto.CourseFilter{
			Program:   "Computer Science",
			MinRating: &minRating,
		}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "program =")
		assert.Contains(t, sql, "average_rating >=")
		assert.Len(t, args, 2)
	})

	t.Run("sort keys map to stable orderings", func(t *testing.T) {
		tests := map[string]string{
			"rating-high":     "ORDER BY average_rating DESC, code ASC",
			"rating-low":      "ORDER BY average_rating ASC, code ASC",
			"reviews-most":    "ORDER BY review_count DESC, code ASC",
			"difficulty-easy": "ORDER BY average_difficulty ASC, code ASC",
			"difficulty-hard": "ORDER BY average_difficulty DESC, code ASC",
			"bogus":           "ORDER BY code ASC",
		}
		for key, want := range tests {
			sql, _, err := buildCourseListQuery(dto.CourseFilter{Sort: key}).ToSql()
			require.NoError(t, err)
			assert.Contains(t, sql, want, "sort key %q", key)
		}
	})
}

func TestBuildReviewListQuery(t *testing.T) {
	t.Run("defaults to newest first", func(t *testing.T) {
		sql, _, err := buildReviewListQuery(dto.ReviewFilter{}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "ORDER BY created_at DESC")
	})

	t.Run("course and user filters", func(t *testing.T) {
		userID := int64(7)
		sql, args, err := buildReviewListQuery(dto.ReviewFilter{
			CourseCode: "COMP3500SEF",
			UserID:     &userID,
		}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "course_code =")
		assert.Contains(t, sql, "user_id =")
		assert.Equal(t, []interface{}{"COMP3500SEF", int64(7)}, args)
	})

	t.Run("helpful sort breaks ties by recency", func(t *testing.T) {
		sql, _, err := buildReviewListQuery(dto.ReviewFilter{Sort: "helpful"}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "ORDER BY helpful_count DESC, created_at DESC")
	})
}

func TestBuildMaterialListQuery(t *testing.T) {
	t.Run("never selects the file blob", func(t *testing.T) {
		sql, _, err := buildMaterialListQuery(dto.MaterialFilter{}).ToSql()
		require.NoError(t, err)
		assert.NotContains(t, sql, "file_data")
	})

	t.Run("type and semester filters", func(t *testing.T) {
		year := 2025
		sql, args, err := buildMaterialListQuery(dto.MaterialFilter{
			Type:     "Past Paper",
			Semester: "Autumn",
			Year:     &year,
		}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "type =")
		assert.Contains(t, sql, "semester =")
		assert.Contains(t, sql, "year =")
		assert.Len(t, args, 3)
	})
}
