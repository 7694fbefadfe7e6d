package dto

// CreateReviewRequest carries a new review submission. The reviewer identity
// comes from the authenticated session or token, never from the payload.
type CreateReviewRequest struct {
	CourseCode string   `json:"courseCode" form:"courseCode" binding:"required"`
	Semester   string   `json:"semester" form:"semester" binding:"required"`
	Year       int      `json:"year" form:"year" binding:"required,min=2020,max=2030"`
	Instructor string   `json:"instructor" form:"instructor" binding:"required,min=2,max=100"`
	Rating     int      `json:"rating" form:"rating" binding:"required,min=1,max=5"`
	Difficulty int      `json:"difficulty" form:"difficulty" binding:"required,min=1,max=5"`
	Workload   int      `json:"workload" form:"workload" binding:"required,min=1,max=5"`
	Grade      string   `json:"grade" form:"grade"`
	ReviewText string   `json:"reviewText" form:"reviewText" binding:"required,min=50,max=2000"`
	Pros       []string `json:"pros" form:"pros" binding:"omitempty,dive,max=200"`
	Cons       []string `json:"cons" form:"cons" binding:"omitempty,dive,max=200"`
	Tips       string   `json:"tips" form:"tips" binding:"omitempty,max=500"`
}

// UpdateReviewRequest carries the editable fields of an existing review.
// The course code and reviewer are fixed at creation.
type UpdateReviewRequest struct {
	Semester   string   `json:"semester" form:"semester" binding:"required"`
	Year       int      `json:"year" form:"year" binding:"required,min=2020,max=2030"`
	Instructor string   `json:"instructor" form:"instructor" binding:"required,min=2,max=100"`
	Rating     int      `json:"rating" form:"rating" binding:"required,min=1,max=5"`
	Difficulty int      `json:"difficulty" form:"difficulty" binding:"required,min=1,max=5"`
	Workload   int      `json:"workload" form:"workload" binding:"required,min=1,max=5"`
	Grade      string   `json:"grade" form:"grade"`
	ReviewText string   `json:"reviewText" form:"reviewText" binding:"required,min=50,max=2000"`
	Pros       []string `json:"pros" form:"pros" binding:"omitempty,dive,max=200"`
	Cons       []string `json:"cons" form:"cons" binding:"omitempty,dive,max=200"`
	Tips       string   `json:"tips" form:"tips" binding:"omitempty,max=500"`
}

// ReviewFilter is the parsed query-string filter for review listings.
type ReviewFilter struct {
	CourseCode string
	UserID     *int64
	Semester   string
	Year       *int
	Instructor string   // case-insensitive substring
	MinRating  *float64 // rating >= MinRating
	Sort       string   // "rating-high" | "rating-low" | "helpful" | default newest
}
