package conversion

import (
	"context"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const persistTimeout = 5 * time.Second

// Preferences is the durable record of targets and last update time.
type Preferences interface {
	LoadTargets(ctx context.Context) ([]string, error)
	SaveTargets(ctx context.Context, targets []string) error
	LoadLastUpdated(ctx context.Context) (*time.Time, error)
	SaveLastUpdated(ctx context.Context, ts time.Time) error
}

// State is the single conversion state holder of a running instance.
// All mutations are serialized by mu; the network call in Refresh runs without it.
type State struct {
	catalog *Catalog
	client  adapters.RateClient
	prefs   Preferences
	now     func() time.Time

	mu          sync.Mutex
	targets     []string
	rates       domain.RateTable
	inFlight    int
	fetchErr    *domain.FetchError
	lastUpdated *time.Time
	writeSeq    uint64 // guarded by mu, bumped for every pending store write
	targetsSeq  uint64 // writeSeq of the latest local targets change

	persistMu sync.Mutex
	settled   map[string]uint64 // seq of the last attempted write per key, guarded by persistMu

	listenersMu sync.Mutex
	listeners   map[int]func(Snapshot)
	nextID      int
}

// NewState loads persisted targets and last update time. Persisted targets outside the catalog
// or repeated are dropped so the holder starts with a valid list.
func NewState(ctx context.Context, catalog *Catalog, client adapters.RateClient, prefs Preferences) (*State, error) {
	targets, err := prefs.LoadTargets(ctx)
	if err != nil {
		return nil, err
	}
	lastUpdated, err := prefs.LoadLastUpdated(ctx)
	if err != nil {
		return nil, err
	}

	s := &State{
		catalog:     catalog,
		client:      client,
		prefs:       prefs,
		now:         time.Now,
		rates:       domain.RateTable{},
		lastUpdated: lastUpdated,
		settled:     make(map[string]uint64),
		listeners:   make(map[int]func(Snapshot)),
	}
	s.targets = s.validTargets(targets)
	return s, nil
}

// validTargets normalizes persisted targets and drops codes outside the catalog or repeated.
func (s *State) validTargets(persisted []string) []string {
	targets := make([]string, 0, len(persisted))
	for _, code := range persisted {
		code = domain.NormalizeCode(code)
		if !s.catalog.Contains(code) || slices.Contains(targets, code) {
			logrus.WithField("code", code).Warn("Ignoring invalid persisted target currency")
			continue
		}
		targets = append(targets, code)
	}
	return targets
}

// SyncTargets reloads the target list from the store so instances sharing one store converge.
// Local changes win: the reload is skipped while a local write is pending and discarded when a
// local change lands during the read. It reports whether the list changed.
func (s *State) SyncTargets(ctx context.Context) (bool, error) {
	s.mu.Lock()
	seq := s.targetsSeq
	s.mu.Unlock()

	s.persistMu.Lock()
	if s.settled[writeKeyTargets] < seq {
		s.persistMu.Unlock()
		return false, nil
	}
	stored, err := s.prefs.LoadTargets(ctx)
	s.persistMu.Unlock()
	if err != nil {
		return false, err
	}
	targets := s.validTargets(stored)

	s.mu.Lock()
	if s.targetsSeq != seq || slices.Equal(s.targets, targets) {
		s.mu.Unlock()
		return false, nil
	}
	s.targets = targets
	s.mu.Unlock()

	s.notify()
	return true, nil
}

// Refresh fetches base-currency rates. On failure the previous rates stay in place and the error
// is exposed through the snapshot; it is also returned. Concurrent calls are allowed and the
// last one to complete wins.
func (s *State) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.inFlight++
	s.fetchErr = nil
	s.mu.Unlock()
	s.notify()

	rates, err := s.client.GetExchangeRates(ctx, domain.BaseCurrency)

	var write *pendingWrite
	s.mu.Lock()
	s.inFlight--
	if err != nil {
		s.fetchErr = domain.AsFetchError(err)
	} else {
		now := s.now()
		s.rates = rates.Clone()
		s.fetchErr = nil
		s.lastUpdated = &now
		write = s.lastUpdatedWriteLocked(now)
	}
	s.mu.Unlock()

	s.persist(ctx, write)
	s.notify()

	if err != nil {
		return fmt.Errorf("failed to refresh rates: %w", domain.AsFetchError(err))
	}
	return nil
}

// AddTargetCurrency appends code unless it is already selected or not in the catalog.
// It reports whether the list changed.
func (s *State) AddTargetCurrency(ctx context.Context, code string) bool {
	s.mu.Lock()
	if !s.catalog.Contains(code) || slices.Contains(s.targets, code) {
		s.mu.Unlock()
		return false
	}
	s.targets = append(s.targets, code)
	write := s.targetsWriteLocked()
	s.mu.Unlock()

	s.persist(ctx, write)
	s.notify()
	return true
}

// RemoveTargetCurrency removes code; a missing code is a no-op.
func (s *State) RemoveTargetCurrency(ctx context.Context, code string) bool {
	s.mu.Lock()
	idx := slices.Index(s.targets, code)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.targets = slices.Delete(s.targets, idx, idx+1)
	write := s.targetsWriteLocked()
	s.mu.Unlock()

	s.persist(ctx, write)
	s.notify()
	return true
}

// Convert applies Convert to the current rate table.
func (s *State) Convert(amount float64, from, to string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Convert(s.rates, amount, from, to)
}

// Conversions returns one row per selected target currency, in selection order.
func (s *State) Conversions(amount float64, from string) []ConversionRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]ConversionRow, 0, len(s.targets))
	for _, target := range s.targets {
		rows = append(rows, ConversionRow{
			Target: target,
			Rate:   Convert(s.rates, 1, from, target),
			Amount: Convert(s.rates, amount, from, target),
		})
	}
	return rows
}

// Subscribe registers fn to receive a snapshot after every change. fn runs on the goroutine that
// made the change and must not block.
func (s *State) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *State) notify() {
	s.listenersMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	if len(fns) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}

const (
	writeKeyTargets     = "targets"
	writeKeyLastUpdated = "lastUpdated"
)

// pendingWrite is a store write captured under mu and performed after it is released.
type pendingWrite struct {
	key   string
	seq   uint64
	write func(context.Context) error
}

// targetsWriteLocked must be called with mu held.
func (s *State) targetsWriteLocked() *pendingWrite {
	s.writeSeq++
	s.targetsSeq = s.writeSeq
	targets := slices.Clone(s.targets)
	return &pendingWrite{
		key:   writeKeyTargets,
		seq:   s.writeSeq,
		write: func(ctx context.Context) error { return s.prefs.SaveTargets(ctx, targets) },
	}
}

// lastUpdatedWriteLocked must be called with mu held.
func (s *State) lastUpdatedWriteLocked(ts time.Time) *pendingWrite {
	s.writeSeq++
	return &pendingWrite{
		key:   writeKeyLastUpdated,
		seq:   s.writeSeq,
		write: func(ctx context.Context) error { return s.prefs.SaveLastUpdated(ctx, ts) },
	}
}

// persist runs w detached from the caller's cancellation, skipping it when a newer write for the
// same key was already attempted. Failures are only logged.
func (s *State) persist(ctx context.Context, w *pendingWrite) {
	if w == nil {
		return
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if w.seq <= s.settled[w.key] {
		return
	}
	s.settled[w.key] = w.seq

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := w.write(pctx); err != nil {
		logrus.WithError(err).WithField("key", w.key).Error("Failed to persist preferences")
	}
}
