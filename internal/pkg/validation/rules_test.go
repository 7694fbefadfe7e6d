package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCourseCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"COMP3500SEF", true},
		{"COMP50", true},
		{"A1B2C3", true},
		{"ABCDEF123456789", true},  // 15 chars, upper bound
		{"ABCDEF1234567890", false}, // 16 chars
		{"COMP1", false},            // too short
		{"comp123", false},          // lowercase never accepted
		{"COMP 3500", false},        // no spaces
		{"COMP-3500SEF", false},     // no punctuation
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidCourseCode(tt.code))
		})
	}
}

func TestValidateListItems(t *testing.T) {
	longItem := strings.Repeat("x", ProConMaxLength+1)

	assert.True(t, ValidateListItems(nil, ProConMaxLength))
	assert.True(t, ValidateListItems([]string{"good lecturer", "clear notes"}, ProConMaxLength))
	assert.True(t, ValidateListItems([]string{strings.Repeat("x", ProConMaxLength)}, ProConMaxLength))
	assert.False(t, ValidateListItems([]string{longItem}, ProConMaxLength))
	assert.False(t, ValidateListItems([]string{"ok", "   "}, ProConMaxLength))
}

func TestTrimListItems(t *testing.T) {
	in := []string{"  a  ", "", "b", "   "}
	out := TrimListItems(in)

	assert.Equal(t, []string{"a", "b"}, out)
	assert.Equal(t, []string{"  a  ", "", "b", "   "}, in)
	assert.NotNil(t, TrimListItems(nil))
}
