package repository

import (
	"strings"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

const (
	DefaultOrderBy  = "name"
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Sortable user fields, by their API name.
var SortableFields = []string{"name", "email", "telephone", "status", "createdAt", "updatedAt"}

// PageRequest selects a zero-based page of a sorted listing.
type PageRequest struct {
	Page      int
	Size      int
	OrderBy   string
	Direction Direction
}

// NewPageRequest validates raw listing parameters and fills defaults for
// empty ones: size 10, order by name, ascending.
func NewPageRequest(page, size int, orderBy, direction string) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, domainerr.NewValidation("page", domainerr.Generic,
			"page must not be negative", map[string]any{"actualValue": page})
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if size < 1 || size > MaxPageSize {
		return PageRequest{}, domainerr.NewValidation("size", domainerr.Generic,
			"size must be between 1 and 100", map[string]any{"min": 1, "max": MaxPageSize, "actualValue": size})
	}
	if orderBy == "" {
		orderBy = DefaultOrderBy
	}
	if !isSortable(orderBy) {
		return PageRequest{}, domainerr.NewValidation("orderBy", domainerr.Generic,
			"orderBy is not a sortable field", map[string]any{"allowed": SortableFields, "actualValue": orderBy})
	}
	dir := Direction(strings.ToUpper(strings.TrimSpace(direction)))
	switch dir {
	case "":
		dir = Asc
	case Asc, Desc:
	default:
		return PageRequest{}, domainerr.NewValidation("direction", domainerr.Generic,
			"direction must be ASC or DESC", map[string]any{"actualValue": direction})
	}
	return PageRequest{Page: page, Size: size, OrderBy: orderBy, Direction: dir}, nil
}

func isSortable(field string) bool {
	for _, f := range SortableFields {
		if f == field {
			return true
		}
	}
	return false
}

// Offset is the number of rows skipped before this page.
func (r PageRequest) Offset() int { return r.Page * r.Size }

// Page is one slice of a sorted listing plus its metadata.
type Page[T any] struct {
	Items      []T
	TotalItems int64
	TotalPages int
	PageNumber int
	PageSize   int
	IsFirst    bool
	IsLast     bool
}

// NewPage computes the page metadata for items out of total.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalItems: total,
		TotalPages: totalPages,
		PageNumber: req.Page,
		PageSize:   req.Size,
		IsFirst:    req.Page == 0,
		IsLast:     req.Page >= totalPages-1,
	}
}

// MapPage converts the items of p and keeps its metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return Page[U]{
		Items:      out,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		IsFirst:    p.IsFirst,
		IsLast:     p.IsLast,
	}
}
