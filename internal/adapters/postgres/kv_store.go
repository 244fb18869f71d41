package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type KVStore struct {
	pool *pgxpool.Pool
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const q = `select value from preferences where key = $1;`

	var value string
	if err := s.pool.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to select preference %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	const q = `
		insert into preferences(key, value, updated_at) values ($1, $2, now())
		on conflict (key) do update
		set value = excluded.value, updated_at = now();
	`

	if _, err := s.pool.Exec(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("failed to upsert preference %q: %w", key, err)
	}
	return nil
}

func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return &KVStore{pool: pool}
}
