package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type KVStore struct {
	db *sql.DB
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const q = `select value from preferences where key = ?;`

	var value string
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to select preference %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	const q = `
		insert into preferences(key, value, updated_at) values (?, ?, current_timestamp)
		on conflict (key) do update
		set value = excluded.value, updated_at = current_timestamp;
	`

	if _, err := s.db.ExecContext(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("failed to upsert preference %q: %w", key, err)
	}
	return nil
}

func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}
