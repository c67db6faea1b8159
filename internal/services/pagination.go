package services

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*MaxPageSize inside an int
	MaxPage = math.MaxInt / MaxPageSize
)

// PageRequest selects one page of a listing. Out-of-range values are
// normalized rather than rejected: page is clamped to [1, MaxPage], a
// non-positive size falls back to DefaultPageSize and sizes above
// MaxPageSize are clamped.
type PageRequest struct {
	Page     int
	PageSize int
}

func NewPageRequest(page, pageSize int) PageRequest {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

func (p PageRequest) Limit() int {
	return p.PageSize
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageMeta is the pagination envelope sent beside every listing
type PageMeta struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// Page is one slice of an ordered listing
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

func newPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(req.PageSize) - 1) / int64(req.PageSize))
	return Page[T]{
		Items: items,
		Meta: PageMeta{
			CurrentPage:     req.Page,
			TotalPages:      totalPages,
			TotalItems:      total,
			ItemsPerPage:    req.PageSize,
			HasNextPage:     req.Page < totalPages,
			HasPreviousPage: req.Page > 1,
		},
	}
}
