package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{name: "first page", page: 1, size: 12, wantOffset: 0, wantLimit: 12},
		{name: "third page", page: 3, size: 12, wantOffset: 24, wantLimit: 12},
		{name: "zero page clamps to first", page: 0, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "negative page clamps to first", page: -5, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "zero size falls back to default", page: 2, size: 0, wantOffset: 12, wantLimit: 12},
		{name: "oversized page size falls back", page: 1, size: 500, wantOffset: 0, wantLimit: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	t.Run("partial last page rounds up", func(t *testing.T) {
		info := NewPaginationInfo(25, 1, 12)
		assert.Equal(t, 3, info.TotalPages)
		assert.Equal(t, int64(25), info.TotalItems)
	})

	t.Run("empty result keeps one page", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 12)
		assert.Equal(t, 1, info.TotalPages)
		assert.Equal(t, 1, info.CurrentPage)
	})

	t.Run("page beyond the end clamps", func(t *testing.T) {
		info := NewPaginationInfo(5, 9, 12)
		assert.Equal(t, 1, info.CurrentPage)
	})
}

func TestPaginationNavigation(t *testing.T) {
	info := NewPaginationInfo(60, 3, 12)
	assert.Equal(t, 2, info.PrevPage())
	assert.Equal(t, 4, info.NextPage())

	first := NewPaginationInfo(60, 1, 12)
	assert.Equal(t, 1, first.PrevPage())

	last := NewPaginationInfo(60, 5, 12)
	assert.Equal(t, 5, last.NextPage())
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{name: "defaults", query: "", wantPage: 1, wantSize: 12},
		{name: "explicit values", query: "?page=3&size=24", wantPage: 3, wantSize: 24},
		{name: "garbage falls back", query: "?page=abc&size=xyz", wantPage: 1, wantSize: 12},
		{name: "size over the cap falls back", query: "?size=9999", wantPage: 1, wantSize: 12},
		{name: "negative page falls back", query: "?page=-2", wantPage: 1, wantSize: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/courses"+tt.query, nil)

			page, size := ParsePaginationParams(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}
