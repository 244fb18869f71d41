package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "fxconvert:preferences:"

// KVStore keeps each preference as a plain string key without expiration.
type KVStore struct {
	client *redis.Client
	prefix string
}

func (s *KVStore) key(key string) string {
	return s.prefix + key
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get preference %q: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set preference %q: %w", key, err)
	}
	return nil
}

func NewKVStore(client *redis.Client, prefix string) *KVStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &KVStore{client: client, prefix: prefix}
}
