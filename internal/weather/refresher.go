package weather

import (
	"context"
	"sync"
	"time"

	"skylight/internal/apperr"
	applog "skylight/internal/log"
	"skylight/internal/settings"
)

// mockDelay simulates the latency of a real lookup so mock mode does not feel
// artificially instant.
const mockDelay = 300 * time.Millisecond

// Refresher caches the latest snapshot and recomputes it on demand. Every
// refresh takes a monotonic sequence number; a slow fetch whose number is no
// longer the latest is dropped so it can never overwrite a newer result.
type Refresher struct {
	client  *Client
	manager *settings.Manager
	sleep   func(time.Duration)

	mu       sync.Mutex
	seq      uint64
	snapshot Snapshot
	loaded   bool
}

// NewRefresher wires the refresher to the settings controller it derives its
// inputs from.
func NewRefresher(client *Client, manager *settings.Manager) *Refresher {
	return &Refresher{
		client:  client,
		manager: manager,
		sleep:   time.Sleep,
	}
}

// SetSleep replaces the mock-mode delay, from tests.
func (r *Refresher) SetSleep(sleep func(time.Duration)) {
	r.sleep = sleep
}

// Snapshot returns the latest computed snapshot. Before the first refresh
// completes it returns a mock snapshot so the dashboard never renders empty.
func (r *Refresher) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		record := r.manager.Record()
		return MockSnapshot(record.Unit, record.Location)
	}
	return r.snapshot
}

// Refresh recomputes the snapshot from the current settings and returns it.
// The result is committed to the cache only if no newer refresh started while
// this one was in flight.
func (r *Refresher) Refresh(ctx context.Context) Snapshot {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	snapshot := r.compute(ctx)
	r.commit(ctx, seq, snapshot)
	return snapshot
}

func (r *Refresher) compute(ctx context.Context) Snapshot {
	record := r.manager.Record()

	if record.APIKey == "" {
		r.sleep(mockDelay)
		return MockSnapshot(record.Unit, record.Location)
	}

	query := Query{APIKey: record.APIKey, Unit: record.Unit}
	if record.IsAutoLocation {
		lat, lon, ok := r.manager.LocationFix()
		if !ok {
			applog.Warn(ctx, "weather refresh failed", "error", apperr.CapabilityDenied("geolocation"))
			return ErrorSnapshot()
		}
		query.ByCoords = true
		query.Lat, query.Lon = lat, lon
	} else {
		query.City = record.Location
	}

	snapshot, err := r.client.Current(ctx, query)
	if err != nil {
		applog.Warn(ctx, "weather refresh failed", "error", err)
		return ErrorSnapshot()
	}
	return snapshot
}

func (r *Refresher) commit(ctx context.Context, seq uint64, snapshot Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.seq {
		applog.Debug(ctx, "dropping stale weather refresh", "seq", seq, "latest", r.seq)
		return
	}
	r.snapshot = snapshot
	r.loaded = true
}

// RefreshAsync runs a refresh on its own goroutine. It is the callback handed
// to the settings controller for qualifying field changes.
func (r *Refresher) RefreshAsync() {
	go r.Refresh(context.Background())
}
