package models

import "time"

// Review is a single student's rated assessment of a course instance
// (course + semester + year + instructor). A user may review a course at
// most once; the (course_code, user_id) pair is unique.
type Review struct {
	ID           int64     `json:"id" db:"id"`
	CourseCode   string    `json:"courseCode" db:"course_code"`
	UserID       int64     `json:"userId" db:"user_id"`
	UserName     string    `json:"userName" db:"user_name"`
	UserPhoto    string    `json:"userPhoto" db:"user_photo"`
	Semester     string    `json:"semester" db:"semester"`
	Year         int       `json:"year" db:"year"`
	Instructor   string    `json:"instructor" db:"instructor"`
	Rating       int       `json:"rating" db:"rating"`
	Difficulty   int       `json:"difficulty" db:"difficulty"`
	Workload     int       `json:"workload" db:"workload"`
	Grade        string    `json:"grade" db:"grade"`
	ReviewText   string    `json:"reviewText" db:"review_text"`
	Pros         []string  `json:"pros" db:"pros"`
	Cons         []string  `json:"cons" db:"cons"`
	Tips         string    `json:"tips" db:"tips"`
	HelpfulCount int       `json:"helpfulCount" db:"helpful_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// ReviewRatings is the projection of a review read by the stats
// recomputation: just the three 1-5 rating fields.
type ReviewRatings struct {
	Rating     int
	Difficulty int
	Workload   int
}
