package dashboard

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"logview/models"
)

// DefaultPollInterval is how often Run refetches the full set.
const DefaultPollInterval = 60 * time.Second

// ErrClosed is returned by Refresh once the view has been closed.
var ErrClosed = errors.New("view closed")

// Source provides the full log set.
type Source interface {
	FetchLogs(ctx context.Context) ([]models.LogEntry, error)
}

// Update describes a fetch that replaced the full set.
type Update struct {
	Generation uint64    `json:"generation"`
	Count      int       `json:"count"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// Dashboard is a Summary plus the state of the view it was computed from.
type Dashboard struct {
	Summary
	Generation uint64    `json:"generation"`
	FetchedAt  time.Time `json:"fetched_at,omitzero"`
	Loading    bool      `json:"loading"`
}

// View owns the full log set and the bookkeeping around refreshing it.
// Filtered sets and aggregates are never stored; they are derived on read.
//
// Every Refresh takes a generation number. A result is applied only when its
// generation is still the latest one issued, so a slow fetch can never
// overwrite the result of a fetch started after it.
type View struct {
	source   Source
	interval time.Duration
	location *time.Location
	now      func() time.Time
	onUpdate func(Update)

	mu        sync.RWMutex
	entries   []models.LogEntry
	fetchedAt time.Time
	issued    uint64
	applied   uint64
	inflight  int
	closed    bool
}

// Option configures a View.
type Option func(*View)

// WithInterval sets the poll period used by Run.
func WithInterval(d time.Duration) Option {
	return func(v *View) {
		if d > 0 {
			v.interval = d
		}
	}
}

// WithLocation sets the zone timeline dates are computed in.
func WithLocation(loc *time.Location) Option {
	return func(v *View) {
		if loc != nil {
			v.location = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(v *View) {
		if now != nil {
			v.now = now
		}
	}
}

// WithUpdateHook registers fn to be called after every applied fetch.
func WithUpdateHook(fn func(Update)) Option {
	return func(v *View) {
		v.onUpdate = fn
	}
}

// NewView creates a view with an empty full set.
func NewView(source Source, opts ...Option) *View {
	v := &View{
		source:   source,
		interval: DefaultPollInterval,
		location: time.Local,
		now:      time.Now,
		entries:  []models.LogEntry{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Refresh fetches the full set once. It reports whether the result replaced
// the current set. A failed fetch is logged and returned, and leaves the
// current set untouched. A superseded fetch is dropped without error.
func (v *View) Refresh(ctx context.Context) (bool, error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return false, ErrClosed
	}
	v.issued++
	generation := v.issued
	v.inflight++
	v.mu.Unlock()

	start := time.Now()
	entries, err := v.source.FetchLogs(ctx)

	v.mu.Lock()
	v.inflight--

	if err != nil {
		v.mu.Unlock()
		log.Error().Err(err).Uint64("generation", generation).Msg("Could not fetch logs")
		return false, err
	}

	if v.closed {
		v.mu.Unlock()
		return false, ErrClosed
	}

	if generation != v.issued {
		latest := v.issued
		v.mu.Unlock()
		log.Debug().Uint64("generation", generation).Uint64("latest", latest).Msg("Discarding superseded fetch")
		return false, nil
	}

	v.entries = entries
	v.fetchedAt = v.now()
	v.applied = generation
	update := Update{Generation: generation, Count: len(entries), FetchedAt: v.fetchedAt}
	hook := v.onUpdate
	v.mu.Unlock()

	log.Info().
		Uint64("generation", generation).
		Int("count", len(entries)).
		Dur("duration", time.Since(start)).
		Msg("Logs refreshed")

	if hook != nil {
		hook(update)
	}
	return true, nil
}

// Run refreshes immediately and then once per interval until ctx is done.
// The ticker is stopped on return and in-flight fetches see ctx cancelled.
func (v *View) Run(ctx context.Context) error {
	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	_, _ = v.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_, _ = v.Refresh(ctx)
		}
	}
}

// Close discards the full set. Later refreshes fail with ErrClosed and fetches
// still in flight are not applied.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.entries = []models.LogEntry{}
}

// Entries returns a copy of the full set.
func (v *View) Entries() []models.LogEntry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.entries)
}

// Loading reports whether any fetch is in flight.
func (v *View) Loading() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inflight > 0
}

// Generation returns the generation of the fetch currently displayed, 0 if none.
func (v *View) Generation() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.applied
}

// Filtered returns the full set narrowed by c.
func (v *View) Filtered(c models.FilterCriteria) []models.LogEntry {
	v.mu.RLock()
	entries := v.entries
	v.mu.RUnlock()

	return Filter(entries, c, v.now())
}

// Dashboard derives everything the dashboard shows for c.
func (v *View) Dashboard(c models.FilterCriteria) Dashboard {
	v.mu.RLock()
	entries := v.entries
	d := Dashboard{
		Generation: v.applied,
		FetchedAt:  v.fetchedAt,
		Loading:    v.inflight > 0,
	}
	v.mu.RUnlock()

	d.Summary = Summarize(entries, c, v.now(), v.location)
	return d
}

// Location returns the zone timeline dates are computed in.
func (v *View) Location() *time.Location {
	return v.location
}
