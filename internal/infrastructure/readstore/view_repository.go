package readstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptdeck/backend/internal/domain/shared"
)

// GormViewRepository is a generic gorm-backed implementation of
// shared.ViewRepository. One instance serves one view model type; the
// table is inferred from the view's TableName method.
//
// Filter and sort fields are validated against a whitelist. Unknown
// filter fields are ignored and unknown sort fields fall back to the
// default sort, so criteria built from user input cannot inject SQL.
type GormViewRepository[V any] struct {
	db            *gorm.DB
	allowedFields map[string]bool
	defaultSort   string
}

// NewGormViewRepository creates a view repository for one view type
func NewGormViewRepository[V any](db *gorm.DB, allowedFields map[string]bool, defaultSort string) *GormViewRepository[V] {
	if defaultSort == "" {
		defaultSort = "created_at"
	}
	return &GormViewRepository[V]{
		db:            db,
		allowedFields: allowedFields,
		defaultSort:   defaultSort,
	}
}

// FindByID finds a view by ID. Returns (nil, nil) when the view does
// not exist; callers decide whether absence is an error.
func (r *GormViewRepository[V]) FindByID(ctx context.Context, id uuid.UUID) (*V, error) {
	var view V
	if err := r.db.WithContext(ctx).First(&view, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &view, nil
}

// FindByCriteria returns one page of views matching the criteria
func (r *GormViewRepository[V]) FindByCriteria(ctx context.Context, criteria shared.Criteria) (shared.Paginated[V], error) {
	criteria = criteria.Normalize()

	query := r.db.WithContext(ctx).Model(new(V))
	query = r.applyFilters(query, criteria)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[V]{}, err
	}

	query = r.applySorts(query, criteria)
	offset := (criteria.Page - 1) * criteria.PageSize
	query = query.Offset(offset).Limit(criteria.PageSize)

	var views []V
	if err := query.Find(&views).Error; err != nil {
		return shared.Paginated[V]{}, err
	}

	return shared.NewPaginated(views, total, criteria.Page, criteria.PageSize), nil
}

// Save creates or updates a view
func (r *GormViewRepository[V]) Save(ctx context.Context, view *V) error {
	return r.db.WithContext(ctx).Save(view).Error
}

// Delete deletes a view. Deleting an absent view is not an error;
// existence checks belong to the projector.
func (r *GormViewRepository[V]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(new(V), "id = ?", id).Error
}

func (r *GormViewRepository[V]) applyFilters(query *gorm.DB, criteria shared.Criteria) *gorm.DB {
	for field, value := range criteria.Filters {
		if !r.allowedFields[field] {
			continue
		}
		query = query.Where(fmt.Sprintf("%s = ?", field), value)
	}
	return query
}

func (r *GormViewRepository[V]) applySorts(query *gorm.DB, criteria shared.Criteria) *gorm.DB {
	applied := false
	for _, sort := range criteria.Sorts {
		field := ValidateSortField(sort.Field, r.allowedFields, "")
		if field == "" {
			continue
		}
		query = query.Order(field + " " + ValidateSortOrder(string(sort.Direction)))
		applied = true
	}
	if !applied {
		query = query.Order(r.defaultSort + " ASC")
	}
	return query
}

var _ shared.ViewRepository[struct{}] = (*GormViewRepository[struct{}])(nil)
