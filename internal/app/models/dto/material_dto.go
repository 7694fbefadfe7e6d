package dto

// UploadMaterialRequest carries the metadata half of a material upload; the
// file itself arrives as a multipart part and is validated separately.
type UploadMaterialRequest struct {
	CourseCode  string `form:"courseCode" binding:"required"`
	Title       string `form:"title" binding:"required,min=3,max=200"`
	Description string `form:"description" binding:"omitempty,max=500"`
	Type        string `form:"type" binding:"required"`
	Semester    string `form:"semester" binding:"required"`
	Year        int    `form:"year" binding:"required,min=2020,max=2030"`
}

// MaterialFilter is the parsed query-string filter for material listings.
type MaterialFilter struct {
	CourseCode string
	Type       string
	Semester   string
	Year       *int
	UploadedBy *int64
}
