package helpers

import (
	"strconv"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
	DefaultPage     = 1
)

// normalizePage clamps a 1-based page and its size to the supported range
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// CalculateOffsetLimit converts a 1-based page into an SQL offset and limit
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	page, limit = normalizePage(page, size)
	return uint64(page-1) * uint64(limit), limit
}

// NewPaginationInfo describes the page that was served. An empty listing has one page;
// a page past the end is reported as the last one.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	page, size = normalizePage(page, size)

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams reads ?page= and ?size=. Values that are missing or out of
// range fall back to the defaults.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page"))
	size, _ = strconv.Atoi(c.Query("size"))
	return normalizePage(page, size)
}
