// Package store is the restaurant-scoped data access layer. Every accessor
// for menu items, tables and orders takes the session's restaurant id; a
// record that belongs to another restaurant is reported as ErrNotFound.
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrTableNumberTaken = errors.New("table number already exists")
	ErrStatusConflict   = errors.New("status changed concurrently")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// NewID returns a fresh identifier such as "item-6f1c...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
