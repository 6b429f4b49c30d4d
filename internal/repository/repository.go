// Package repository defines the persistence ports of the board and their
// GORM implementations. A JSON-file implementation of the same interfaces
// lives in the filestore subpackage.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by every implementation when the requested record
// does not exist, regardless of backend. Services translate it into the
// resource-specific wire error.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
