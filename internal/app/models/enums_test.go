package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramCatalogue(t *testing.T) {
	assert.Len(t, Programs, 52)
	assert.True(t, IsValidProgram("Computer Science"))
	assert.False(t, IsValidProgram("Astrology"))
	assert.False(t, IsValidProgram(""))
}

func TestSemesters(t *testing.T) {
	assert.Equal(t, []string{"Autumn", "Spring", "Summer"}, Semesters)
	assert.True(t, IsValidSemester("Autumn"))
	assert.False(t, IsValidSemester("autumn"))
	assert.False(t, IsValidSemester("Winter"))
}

func TestGrades(t *testing.T) {
	assert.Len(t, Grades, 16)
	assert.True(t, IsValidGrade("A+"))
	assert.True(t, IsValidGrade("Pass1"))
	assert.True(t, IsValidGrade("Fail"))

	// Grade is optional; an empty value is always accepted.
	assert.True(t, IsValidGrade(""))
	assert.False(t, IsValidGrade("S"))
}

func TestMaterialTypes(t *testing.T) {
	assert.Equal(t, []string{"Notes", "Past Paper", "Solution", "Summary", "Others"}, MaterialTypes)
	assert.True(t, IsValidMaterialType("Past Paper"))
	assert.False(t, IsValidMaterialType("Cheatsheet"))
}

func TestAllowedFileTypes(t *testing.T) {
	allowed := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	}
	for _, mime := range allowed {
		assert.True(t, IsAllowedFileType(mime), mime)
	}

	assert.False(t, IsAllowedFileType("image/png"))
	assert.False(t, IsAllowedFileType("application/zip"))
	assert.False(t, IsAllowedFileType(""))
}

func TestBounds(t *testing.T) {
	assert.Equal(t, int64(10*1024*1024), int64(MaxFileSize))
	assert.Equal(t, 12, ItemsPerPage)
	assert.Equal(t, 1, MinRating)
	assert.Equal(t, 5, MaxRating)
	assert.Equal(t, 2020, MinYear)
	assert.Equal(t, 2030, MaxYear)
}
