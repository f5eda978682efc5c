// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginationParams struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Append   bool `json:"append"`
}

// GetPaginationParams reads 1-based page and positive page_size from the
// query string, clamping out-of-range values to the defaults.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	append, _ := strconv.ParseBool(c.DefaultQuery("append", "false"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Append:   append,
	}
}

// HasMore is the shared page-boundary rule: further pages exist iff
// page*pageSize < total.
func HasMore(page, pageSize int, total int64) bool {
	return int64(page*pageSize) < total
}

func SetPaginationHeaders(c *gin.Context, page, pageSize int, total int64) {
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.Header("X-Page", strconv.Itoa(page))
	c.Header("X-Per-Page", strconv.Itoa(pageSize))
}
