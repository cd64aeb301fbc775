// Package store exposes the dashboard's persistent key/value substrate.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skylight/models"
)

// Store reads and writes named string values. It has no expiry and enforces no
// size limits of its own.
type Store struct {
	db *gorm.DB
}

// New builds a Store on top of the provided database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the value stored under key. The second return is false when the
// key has never been written.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s.db == nil {
		return "", false, gorm.ErrInvalidDB
	}

	var row models.Setting
	err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: get %q: %w", key, err)
	}
	return row.Value, true, nil
}

// Set writes value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.db == nil {
		return gorm.ErrInvalidDB
	}

	row := models.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("store: set %q: %w", key, err)
	}
	return nil
}
