// Package paging holds the paginated result envelope shared by every listing
// operation, and the page arithmetic behind it.
package paging

import (
	"github.com/rpupo63/unified-blog-backend/errs"
)

// Request is a validated, 1-based page request.
type Request struct {
	Page     int
	PageSize int
}

// Normalize validates a caller supplied page request. Pages below 1 are
// clamped to 1; a non-positive page size is rejected.
func Normalize(page, pageSize int) (Request, error) {
	if pageSize <= 0 {
		return Request{}, errs.NewInvalidPageSizeError(pageSize)
	}
	if page < 1 {
		page = 1
	}
	return Request{Page: page, PageSize: pageSize}, nil
}

func (r Request) Offset() int {
	return (r.Page - 1) * r.PageSize
}

func (r Request) Limit() int {
	return r.PageSize
}

// Result is the paginated result envelope. It is a view, never persisted.
type Result[T any] struct {
	Items           []T   `json:"items"`
	TotalCount      int64 `json:"totalCount"`
	CurrentPage     int   `json:"currentPage"`
	PageSize        int   `json:"pageSize"`
	TotalPages      int   `json:"totalPages"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// NewResult computes the envelope for one page of items out of totalCount.
func NewResult[T any](items []T, totalCount int64, req Request) Result[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := TotalPages(totalCount, req.PageSize)
	return Result[T]{
		Items:           items,
		TotalCount:      totalCount,
		CurrentPage:     req.Page,
		PageSize:        req.PageSize,
		TotalPages:      totalPages,
		HasPreviousPage: req.Page > 1,
		HasNextPage:     req.Page < totalPages,
	}
}

// TotalPages is ceil(totalCount / pageSize), or 0 when pageSize is not positive.
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((totalCount + size - 1) / size)
}

// Slice returns the requested page of an in-memory collection together with
// the collection size.
func Slice[T any](items []T, req Request) ([]T, int64) {
	total := int64(len(items))
	start := req.Offset()
	if start >= len(items) {
		return []T{}, total
	}
	end := start + req.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

// Map converts the items of a result while keeping its page metadata.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	items := make([]U, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, fn(item))
	}
	return Result[U]{
		Items:           items,
		TotalCount:      r.TotalCount,
		CurrentPage:     r.CurrentPage,
		PageSize:        r.PageSize,
		TotalPages:      r.TotalPages,
		HasPreviousPage: r.HasPreviousPage,
		HasNextPage:     r.HasNextPage,
	}
}
