package models

import "time"

// Material is an uploaded binary study resource attached to a course. The
// file bytes live inline on the row; listing queries must never select
// FileData.
type Material struct {
	ID            int64     `json:"id" db:"id"`
	CourseCode    string    `json:"courseCode" db:"course_code"`
	UploadedBy    int64     `json:"uploadedBy" db:"uploaded_by"`
	UploaderName  string    `json:"uploaderName" db:"uploader_name"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Type          string    `json:"type" db:"type"`
	Semester      string    `json:"semester" db:"semester"`
	Year          int       `json:"year" db:"year"`
	FileType      string    `json:"fileType" db:"file_type"`
	FileName      string    `json:"fileName" db:"file_name"`
	FileSize      int64     `json:"fileSize" db:"file_size"`
	FileData      []byte    `json:"-" db:"file_data"`
	DownloadCount int       `json:"downloadCount" db:"download_count"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
