// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/listings"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsFor(t, "")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
	assert.False(t, params.Append)
}

func TestGetPaginationParamsClamping(t *testing.T) {
	params := paramsFor(t, "?page=0&page_size=-5")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)

	params = paramsFor(t, "?page=3&page_size=500")
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)

	params = paramsFor(t, "?page=2&page_size=50&append=true")
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 50, params.PageSize)
	assert.True(t, params.Append)
}

func TestHasMore(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		total    int64
		want     bool
	}{
		{"first of many", 1, 20, 45, true},
		{"middle page", 2, 20, 45, true},
		{"last partial page", 3, 20, 45, false},
		{"exact boundary", 2, 20, 40, false},
		{"single page", 1, 20, 5, false},
		{"empty result", 1, 20, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasMore(tt.page, tt.pageSize, tt.total))
		})
	}
}
