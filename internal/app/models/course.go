package models

import "time"

// Course represents a catalogued academic unit students can review.
// The four aggregate fields are derived from the course's reviews and are
// only ever written by the stats recomputation; they are never accepted
// from a client.
type Course struct {
	ID                int64     `json:"id" db:"id"`
	Code              string    `json:"courseCode" db:"code"`
	Name              string    `json:"courseName" db:"name"`
	Program           string    `json:"program" db:"program"`
	Credits           int       `json:"credits" db:"credits"`
	Description       string    `json:"description" db:"description"`
	Prerequisites     []string  `json:"prerequisites" db:"prerequisites"`
	Instructors       []string  `json:"instructors" db:"instructors"`
	AverageRating     float64   `json:"averageRating" db:"average_rating"`
	ReviewCount       int       `json:"reviewCount" db:"review_count"`
	AverageDifficulty float64   `json:"averageDifficulty" db:"average_difficulty"`
	AverageWorkload   float64   `json:"averageWorkload" db:"average_workload"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// CourseStats carries the derived aggregate fields written back onto a
// course row by the recomputation routine.
type CourseStats struct {
	AverageRating     float64
	AverageDifficulty float64
	AverageWorkload   float64
	ReviewCount       int
}
