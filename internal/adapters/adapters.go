package adapters

import (
	"context"
	"fxconvert/internal/domain"
)

type RateClient interface {
	GetExchangeRates(ctx context.Context, base string) (domain.RateTable, error)
}

// KVStore is the durable key-value port preferences are persisted through.
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
