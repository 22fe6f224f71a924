package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// CalculateOffsetLimit converts a 1-based page and a page size into OFFSET/LIMIT values.
func CalculateOffsetLimit(page, size int) (offset, limit int) {
	limit = size
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	if page-1 > math.MaxInt32/limit {
		// Far past any table; keeps OFFSET positive and within int32
		return math.MaxInt32 / limit * limit, limit
	}
	return (page - 1) * limit, limit
}

// TotalPages is ceil(totalItems / size), never less than 1.
func TotalPages(totalItems int64, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := int((totalItems + int64(size) - 1) / int64(size))
	if pages < 1 {
		return 1
	}
	return pages
}

// NewPaginationInfo creates the pagination block of a list response.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems int64, page, size int) *dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	return &dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  TotalPages(totalItems, size),
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams reads ?page= and ?size= from the request.
// Invalid or missing values fall back to page 1 and defaultSize.
func ParsePaginationParams(c *gin.Context, defaultSize int) (page, size int) {
	if defaultSize <= 0 || defaultSize > MaxPageSize {
		defaultSize = DefaultPageSize
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err = strconv.Atoi(c.Query("size"))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = defaultSize
	}

	return page, size
}

// CalculateSliceIndices returns the [start:end) bounds of a page within totalItems elements.
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	if page-1 > totalItems/size {
		return totalItems, totalItems
	}
	start = (page - 1) * size
	if start > totalItems {
		start = totalItems
	}
	end = start + size
	if end > totalItems {
		end = totalItems
	}
	return start, end
}
