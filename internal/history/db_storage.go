package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DBStorage keeps keys in the history_entries table.
type DBStorage struct {
	db *sqlx.DB
}

func NewDBStorage(db *sqlx.DB) *DBStorage {
	return &DBStorage{db: db}
}

func (s *DBStorage) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys, "SELECT `key` FROM history_entries ORDER BY `key`"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(history_entries keys) > %w", err)
	}
	return keys, nil
}

func (s *DBStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, "SELECT value FROM history_entries WHERE `key` = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(history_entry) > %w", err)
	}
	return value, nil
}

// Set inserts value under key, overwriting an existing value.
func (s *DBStorage) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO history_entries (`key`, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)",
		key, value); err != nil {
		return fmt.Errorf("db.ExecContext(upsert history_entry) > %w", err)
	}
	return nil
}
