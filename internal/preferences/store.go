// Package preferences persists the user's selected target currencies and the time of the
// last successful rates update through a key-value port.
package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"fxconvert/internal/adapters"
	"slices"
	"time"
)

const (
	keyPreferredCurrencies = "preferredCurrencies"
	keyLastUpdateTime      = "lastUpdateTime"
)

// DefaultTargets is returned when no target list was ever persisted.
var DefaultTargets = []string{"EUR", "GBP", "JPY", "AUD"}

type Store struct {
	kv             adapters.KVStore
	defaultTargets []string
}

// LoadTargets returns the persisted target list, or the defaults when absent.
func (s *Store) LoadTargets(ctx context.Context) ([]string, error) {
	raw, found, err := s.kv.Get(ctx, keyPreferredCurrencies)
	if err != nil {
		return nil, fmt.Errorf("failed to load target currencies: %w", err)
	}
	if !found {
		return slices.Clone(s.defaultTargets), nil
	}

	var targets []string
	if err = json.Unmarshal(raw, &targets); err != nil {
		return nil, fmt.Errorf("failed to decode target currencies: %w", err)
	}
	return targets, nil
}

func (s *Store) SaveTargets(ctx context.Context, targets []string) error {
	if targets == nil {
		targets = []string{}
	}
	raw, err := json.Marshal(targets)
	if err != nil {
		return fmt.Errorf("failed to encode target currencies: %w", err)
	}
	if err = s.kv.Set(ctx, keyPreferredCurrencies, raw); err != nil {
		return fmt.Errorf("failed to save target currencies: %w", err)
	}
	return nil
}

// LoadLastUpdated returns nil when no update was ever recorded.
func (s *Store) LoadLastUpdated(ctx context.Context) (*time.Time, error) {
	raw, found, err := s.kv.Get(ctx, keyLastUpdateTime)
	if err != nil {
		return nil, fmt.Errorf("failed to load last update time: %w", err)
	}
	if !found {
		return nil, nil
	}

	var ts time.Time
	if err = json.Unmarshal(raw, &ts); err != nil {
		return nil, fmt.Errorf("failed to decode last update time: %w", err)
	}
	return &ts, nil
}

func (s *Store) SaveLastUpdated(ctx context.Context, ts time.Time) error {
	raw, err := json.Marshal(ts.UTC())
	if err != nil {
		return fmt.Errorf("failed to encode last update time: %w", err)
	}
	if err = s.kv.Set(ctx, keyLastUpdateTime, raw); err != nil {
		return fmt.Errorf("failed to save last update time: %w", err)
	}
	return nil
}

// NewStore builds a Store; an empty defaultTargets falls back to DefaultTargets.
func NewStore(kv adapters.KVStore, defaultTargets []string) *Store {
	if len(defaultTargets) == 0 {
		defaultTargets = DefaultTargets
	}
	return &Store{kv: kv, defaultTargets: slices.Clone(defaultTargets)}
}
