package conversion

import (
	"fxconvert/internal/domain"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
)

type ErrorView struct {
	Kind       domain.ErrorKind
	Message    string
	StatusCode int
}

// Snapshot is a read-only copy of the state for rendering.
type Snapshot struct {
	AvailableCurrencies []string
	TargetCurrencies    []string
	Rates               domain.RateTable
	IsLoading           bool
	Error               *ErrorView
	LastUpdated         *time.Time
	TimeSinceUpdate     string
}

type ConversionRow struct {
	Target string
	Rate   float64 // one unit of the source currency in Target
	Amount float64
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		AvailableCurrencies: s.catalog.Codes(),
		TargetCurrencies:    slices.Clone(s.targets),
		Rates:               s.rates.Clone(),
		IsLoading:           s.inFlight > 0,
		TimeSinceUpdate:     s.timeSinceUpdateLocked(),
	}
	if snap.TargetCurrencies == nil {
		snap.TargetCurrencies = []string{}
	}
	if s.fetchErr != nil {
		snap.Error = &ErrorView{
			Kind:       s.fetchErr.Kind,
			Message:    s.fetchErr.Message(),
			StatusCode: s.fetchErr.StatusCode,
		}
	}
	if s.lastUpdated != nil {
		ts := *s.lastUpdated
		snap.LastUpdated = &ts
	}
	return snap
}

// TimeSinceUpdate renders the age of the rates, e.g. "5 minutes ago" or "never".
func (s *State) TimeSinceUpdate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeSinceUpdateLocked()
}

func (s *State) timeSinceUpdateLocked() string {
	if s.lastUpdated == nil {
		return "never"
	}
	return humanize.RelTime(*s.lastUpdated, s.now(), "ago", "from now")
}
