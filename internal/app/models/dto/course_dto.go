package dto

// CreateCourseRequest carries the writable course fields. Aggregates are
// derived server-side and deliberately absent.
type CreateCourseRequest struct {
	CourseCode    string   `json:"courseCode" form:"courseCode" binding:"required"`
	CourseName    string   `json:"courseName" form:"courseName" binding:"required,min=3,max=200"`
	Program       string   `json:"program" form:"program" binding:"required"`
	Credits       int      `json:"credits" form:"credits" binding:"required,min=1,max=10"`
	Description   string   `json:"description" form:"description" binding:"required,min=50,max=2000"`
	Prerequisites []string `json:"prerequisites" form:"prerequisites"`
	Instructors   []string `json:"instructors" form:"instructors"`
}

// UpdateCourseRequest carries the writable fields for a course update. The
// course code itself is taken from the URL and cannot be changed.
type UpdateCourseRequest struct {
	CourseName    string   `json:"courseName" form:"courseName" binding:"required,min=3,max=200"`
	Program       string   `json:"program" form:"program" binding:"required"`
	Credits       int      `json:"credits" form:"credits" binding:"required,min=1,max=10"`
	Description   string   `json:"description" form:"description" binding:"required,min=50,max=2000"`
	Prerequisites []string `json:"prerequisites" form:"prerequisites"`
	Instructors   []string `json:"instructors" form:"instructors"`
}

// CourseFilter is the parsed query-string filter for course listings.
// Nil/zero fields impose no constraint.
type CourseFilter struct {
	Search     string   // case-insensitive substring on code OR name
	Program    string   // exact match
	MinRating  *float64 // averageRating >= MinRating
	Difficulty string   // "easy" | "medium" | "hard"
	Instructor string   // case-insensitive substring on any instructor
	Sort       string   // symbolic sort key, see repositories.courseSortKeys
}
