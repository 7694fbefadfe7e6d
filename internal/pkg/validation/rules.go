package validation

import (
	"regexp"
	"strings"
)

// Course code: uppercase letters and digits only, 6 to 15 characters.
// "comp123" fails both the case rule and the length bound; codes are never
// silently uppercased on the way in.
var CourseCodePattern = `^[A-Z0-9]{6,15}$`

// CompiledPatterns caches compiled regex patterns.
var CompiledPatterns = struct {
	CourseCode *regexp.Regexp
}{
	CourseCode: regexp.MustCompile(CourseCodePattern),
}

const (
	CourseNameMinLength  = 3
	CourseNameMaxLength  = 200
	DescriptionMinLength = 50
	DescriptionMaxLength = 2000
	ReviewTextMinLength  = 50
	ReviewTextMaxLength  = 2000
	ProConMaxLength      = 200
	TipsMaxLength        = 500
	InstructorMinLength  = 2
	InstructorMaxLength  = 100
	TitleMinLength       = 3
	TitleMaxLength       = 200
	MaterialDescMaxLen   = 500
)

// IsValidCourseCode reports whether code satisfies the course code rule.
func IsValidCourseCode(code string) bool {
	return CompiledPatterns.CourseCode.MatchString(code)
}

// ValidateListItems reports whether every item in a pros/cons list is
// non-blank after trimming and within the per-item length cap.
func ValidateListItems(items []string, maxLen int) bool {
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" || len(trimmed) > maxLen {
			return false
		}
	}
	return true
}

// TrimListItems returns a copy of items with surrounding whitespace removed
// and empty entries dropped. Inputs are never mutated.
func TrimListItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
