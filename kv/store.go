// store.go - Key-value namespace backed by a single SQL table
//
// Values are JSON documents stored whole under string keys. Writes overwrite the
// previous value (last write wins); reads by prefix replace a query language.

package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-task-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("kv: key not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get decodes the value stored under key into out.
func (s *Store) Get(ctx context.Context, key string, out any) error {
	var entry models.KVEntry
	err := s.db.WithContext(ctx).Where(`"key" = ?`, key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("kv get %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(entry.Value), out); err != nil {
		return fmt.Errorf("kv decode %q: %w", key, err)
	}
	return nil
}

// Set stores value under key, replacing whatever was there.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv encode %q: %w", key, err)
	}
	entry := models.KVEntry{Key: key, Value: string(raw)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Del removes key. It returns ErrNotFound when nothing was stored under it.
func (s *Store) Del(ctx context.Context, key string) error {
	res := s.db.WithContext(ctx).Where(`"key" = ?`, key).Delete(&models.KVEntry{})
	if res.Error != nil {
		return fmt.Errorf("kv del %q: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByPrefix returns every value whose key starts with prefix, ordered by key.
// The comparison is exact and case-sensitive, unlike SQLite's LIKE.
func (s *Store) GetByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error) {
	var entries []models.KVEntry
	err := s.db.WithContext(ctx).
		Where(`substr("key", 1, length(?)) = ?`, prefix, prefix).
		Order(`"key"`).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("kv scan %q: %w", prefix, err)
	}

	values := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		values = append(values, json.RawMessage(e.Value))
	}
	return values, nil
}
