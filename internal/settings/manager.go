package settings

import (
	"context"
	"encoding/json"
	"sync"

	applog "skylight/internal/log"
	"skylight/internal/store"
	"skylight/models"
)

// Manager is the single owner of the settings record. All reads and writes go
// through it: every mutation is written through to the store immediately, and
// mutations touching the weather-relevant fields notify the registered
// listener so the weather snapshot can be refreshed.
type Manager struct {
	mu      sync.Mutex
	store   *store.Store
	record  Record
	weather func()

	fixSet   bool
	fixLat   float64
	fixLon   float64
}

// NewManager loads the persisted record (or the defaults) and returns the
// controller for it.
func NewManager(ctx context.Context, st *store.Store) *Manager {
	return &Manager{
		store:  st,
		record: Load(ctx, st),
	}
}

// Load reads the "settings" store key. An absent key, a store failure, or a
// value that is not a JSON object yields the full default record. A JSON
// object is merged field-by-field over the defaults, so records written by
// older versions of the dashboard keep working.
func Load(ctx context.Context, st *store.Store) Record {
	record := Defaults()

	raw, ok, err := st.Get(ctx, models.SettingKeySettings)
	if err != nil {
		applog.Error(ctx, "failed to read settings, using defaults", "error", err)
		return record
	}
	if !ok {
		return record
	}

	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		applog.Warn(ctx, "stored settings unparseable, using defaults", "error", err)
		return Defaults()
	}

	record.Normalize()
	return record
}

// OnWeatherChange registers the callback fired (on its own goroutine) after a
// mutation to any of location, apiKey, unit, or isAutoLocation.
func (m *Manager) OnWeatherChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.weather = fn
}

// Record returns a copy of the current settings.
func (m *Manager) Record() Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record
}

// Update applies mutate to a copy of the record, normalizes it, persists it
// write-through, and triggers the weather listener when a qualifying field
// changed. The in-memory record is replaced even when persistence fails; the
// error reports the failed write of this one mutation.
func (m *Manager) Update(ctx context.Context, mutate func(*Record)) (Record, error) {
	m.mu.Lock()
	previous := m.record
	next := m.record
	mutate(&next)
	next.Normalize()
	m.record = next
	listener := m.weather
	m.mu.Unlock()

	err := m.save(ctx, next)

	if listener != nil && weatherFieldsChanged(previous, next) {
		applog.Debug(ctx, "weather-relevant settings changed, scheduling refresh")
		go listener()
	}

	return next, err
}

func (m *Manager) save(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, models.SettingKeySettings, string(payload))
}

func weatherFieldsChanged(a, b Record) bool {
	return a.Location != b.Location ||
		a.APIKey != b.APIKey ||
		a.Unit != b.Unit ||
		a.IsAutoLocation != b.IsAutoLocation
}

// SetLocationFix stores the browser-reported geolocation coordinates. The fix
// lives in memory only; it is a capability result, not a setting.
func (m *Manager) SetLocationFix(lat, lon float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixSet = true
	m.fixLat = lat
	m.fixLon = lon
}

// LocationFix returns the last reported coordinates, if any.
func (m *Manager) LocationFix() (lat, lon float64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fixLat, m.fixLon, m.fixSet
}
