// Package lifecycle implements the trash-then-purge-or-restore policy
// shared by several entities. It is a capability object composed into each
// entity's library rather than behavior inherited from the models.
package lifecycle

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the target row does not exist, including
// rows that were hard-deleted earlier.
var ErrNotFound = errors.New("record not found")

// Lifecycle applies soft-delete, restore and hard-delete operations to one
// model's table.
type Lifecycle struct {
	db    *gorm.DB
	model interface{}
}

// New binds a lifecycle to a model, e.g. lifecycle.New(db, &model.Board{})
func New(db *gorm.DB, model interface{}) *Lifecycle {
	return &Lifecycle{db: db, model: model}
}

// SoftDelete marks the row with a deletion timestamp. The row disappears
// from default queries but stays recoverable via Restore.
func (l *Lifecycle) SoftDelete(id uint) error {
	result := l.db.Where("id = ?", id).Delete(l.model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore clears the deletion timestamp. The lookup bypasses the default
// soft-delete exclusion so trashed rows are reachable.
func (l *Lifecycle) Restore(id uint) error {
	result := l.db.Unscoped().Model(l.model).Where("id = ?", id).Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HardDelete permanently removes the row regardless of soft-delete state
func (l *Lifecycle) HardDelete(id uint) error {
	result := l.db.Unscoped().Where("id = ?", id).Delete(l.model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsTrashed reports whether the row currently carries a deletion marker
func (l *Lifecycle) IsTrashed(id uint) (bool, error) {
	var total int64
	if err := l.db.Unscoped().Model(l.model).Where("id = ?", id).Count(&total).Error; err != nil {
		return false, err
	}
	if total == 0 {
		return false, ErrNotFound
	}

	var trashed int64
	err := l.db.Unscoped().Model(l.model).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Count(&trashed).Error
	if err != nil {
		return false, err
	}
	return trashed > 0, nil
}
