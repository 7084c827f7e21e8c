package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound signals that an ID-based read or delete had no target row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals a uniqueness violation on create. Callers treat a
	// conflicting product insert as "already exists" and re-read.
	ErrConflict = errors.New("record already exists")
)

// translate maps gorm's sentinel errors onto the repository taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
