package helpers

import (
	"math"
	"net/http"
	"strconv"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams is a validated page request.
type PaginationParams struct {
	Page     int
	PageSize int
}

// ParsePagination reads page and page_size from the request query string,
// clamps them to valid ranges, and returns PaginationParams.
// Invalid or missing values fall back to defaults.
func ParsePagination(r *http.Request) PaginationParams {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	pageSize := DefaultPageSize
	if s := r.URL.Query().Get("page_size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			pageSize = min(v, MaxPageSize)
		}
	}
	// Keep (page-1)*pageSize within int range.
	page = min(page, math.MaxInt/pageSize)
	return PaginationParams{Page: page, PageSize: pageSize}
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta from the current page, page size, and total count.
// TotalPages is computed as ceiling(total / pageSize); if pageSize is 0, TotalPages is 0.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Paginate returns the slice of items on the requested page. Pages past the
// end yield an empty, non-nil slice.
func Paginate[T any](items []T, p PaginationParams) []T {
	if len(items) == 0 || p.Page < 1 || p.PageSize < 1 || p.Page-1 > (len(items)-1)/p.PageSize {
		return []T{}
	}
	start := (p.Page - 1) * p.PageSize
	end := min(start+p.PageSize, len(items))
	return items[start:end]
}
