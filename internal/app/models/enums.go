package models

// Programs is the fixed catalogue of degree programmes a course can belong to.
// The list mirrors the institution's published programme catalogue and is
// part of the external contract; do not reorder or rename entries.
var Programs = []string{
	"Animation and Visual Effects",
	"Chinese",
	"Creative Advertising and Media Design",
	"Creative Writing and Film Arts",
	"English Language and Culture",
	"Imaging Design and Digital Art",
	"Language Studies and Translation",
	"New Music and Interactive Entertainment",
	"Psychology",
	"Social Sciences",
	"Applied Psychology, Business Management",
	"Aviation Services Management",
	"Business Management",
	"Finance and Financial Technology",
	"Global Business",
	"Global Marketing and Supply Chain Management",
	"Human Resource Management",
	"International Hospitality and Attractions Management",
	"Marketing",
	"Professional Accounting",
	"Real Estate and Surveying",
	"Sports and Recreation Management",
	"Sports and eSports Management",
	"Sustainable Tourism and Hospitality Management",
	"Applied Chinese Language Studies",
	"Chinese Language Teaching and Applied Chinese Language Studies",
	"Early Childhood Education (Leadership and Special Educational Needs)",
	"English Language Studies",
	"English Language Teaching and English Language Studies",
	"Putonghua and Chinese Language Education and Chinese Linguistic Studies",
	"Diagnostic Radiography",
	"Medical Laboratory Science",
	"Nursing (General Health Care)",
	"Nursing (Mental Health Care)",
	"Physiotherapy",
	"Analytical Testing Science",
	"Biomedical Sciences and Biotechnology",
	"Building Engineering and Management",
	"Building Services Engineering and Sustainable Development",
	"Civil Engineering",
	"Computer Engineering",
	"Computer Science",
	"Computing",
	"Construction Management and Quantity Surveying",
	"Cyber and Computer Security",
	"Data Science and Artificial Intelligence",
	"Electronic and Computer Engineering",
	"Environmental Science and Green Management",
	"Food Testing Science",
	"Integrated Testing, Inspection and Certification",
	"Robotics and Automation Engineering",
	"Science (STEAM)",
}

// Semesters a course instance can run in.
var Semesters = []string{"Autumn", "Spring", "Summer"}

// MaterialTypes classifies uploaded study materials.
var MaterialTypes = []string{"Notes", "Past Paper", "Solution", "Summary", "Others"}

// Grades is the institution's grade scale, best to worst.
var Grades = []string{
	"A+", "A", "A-",
	"B+", "B", "B-",
	"C+", "C", "C-",
	"D+", "D",
	"Pass1", "Pass2", "Pass3", "Pass4",
	"Fail",
}

// AllowedFileTypes lists the MIME types accepted for material uploads.
var AllowedFileTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// Fixed numeric bounds shared by the web and API surfaces.
const (
	MaxFileSize  = 10 * 1024 * 1024 // 10MB upload ceiling
	ItemsPerPage = 12
	MinRating    = 1
	MaxRating    = 5
	MinYear      = 2020
	MaxYear      = 2030
)

// IsValidProgram reports whether p is in the programme catalogue.
func IsValidProgram(p string) bool {
	return contains(Programs, p)
}

// IsValidSemester reports whether s is a known semester.
func IsValidSemester(s string) bool {
	return contains(Semesters, s)
}

// IsValidMaterialType reports whether t is a known material type.
func IsValidMaterialType(t string) bool {
	return contains(MaterialTypes, t)
}

// IsValidGrade reports whether g is on the grade scale. The empty string is
// accepted because the grade field is optional on reviews.
func IsValidGrade(g string) bool {
	return g == "" || contains(Grades, g)
}

// IsAllowedFileType reports whether mime is on the upload allow-list.
func IsAllowedFileType(mime string) bool {
	return contains(AllowedFileTypes, mime)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
