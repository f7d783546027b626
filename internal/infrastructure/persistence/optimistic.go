package persistence

import (
	"gorm.io/gorm"

	"github.com/promptdeck/backend/internal/domain/shared"
)

// saveWithVersion persists an aggregate model with an optimistic
// concurrency check. Aggregates at version 1 are fresh and insert;
// anything newer updates the stored row only while it still holds the
// prior version. No matching row means another writer committed first
// and the caller's copy is stale.
func saveWithVersion(db *gorm.DB, model any, version int) error {
	if version <= 1 {
		return db.Create(model).Error
	}

	result := db.Model(model).
		Where("version = ?", version-1).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrVersionConflict
	}
	return nil
}
