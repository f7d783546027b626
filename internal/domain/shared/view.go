package shared

import (
	"context"

	"github.com/google/uuid"
)

// DefaultPageSize is applied when a criteria omits pagination
const DefaultPageSize = 20

// SortDirection is the direction of one sort clause
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort is one ordering clause of a read-store query
type Sort struct {
	Field     string
	Direction SortDirection
}

// Criteria describes a read-store query: equality filters, ordering
// and pagination. A zero Page or PageSize falls back to page 1 and
// DefaultPageSize.
type Criteria struct {
	Filters  map[string]any
	Sorts    []Sort
	Page     int
	PageSize int
}

// NewCriteria returns an empty criteria with default pagination
func NewCriteria() Criteria {
	return Criteria{
		Filters:  make(map[string]any),
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// WithFilter adds an equality filter and returns the criteria
func (c Criteria) WithFilter(field string, value any) Criteria {
	if c.Filters == nil {
		c.Filters = make(map[string]any)
	}
	c.Filters[field] = value
	return c
}

// WithSort appends a sort clause and returns the criteria
func (c Criteria) WithSort(field string, dir SortDirection) Criteria {
	c.Sorts = append(c.Sorts, Sort{Field: field, Direction: dir})
	return c
}

// WithPage sets pagination and returns the criteria
func (c Criteria) WithPage(page, pageSize int) Criteria {
	c.Page = page
	c.PageSize = pageSize
	return c
}

// Normalize clamps pagination to valid values
func (c Criteria) Normalize() Criteria {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.PageSize < 1 {
		c.PageSize = DefaultPageSize
	}
	return c
}

// Paginated is a page of read-store results
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ViewRepository is the read-side store for one view model type.
//
// Views are written only by projectors. FindByID returns (nil, nil)
// when the view does not exist; projectors turn that into
// ErrViewModelNotFound so write/read drift surfaces instead of being
// silently absorbed.
type ViewRepository[V any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*V, error)
	FindByCriteria(ctx context.Context, criteria Criteria) (Paginated[V], error)
	Save(ctx context.Context, view *V) error
	Delete(ctx context.Context, id uuid.UUID) error
}
