package testkit

import (
	"context"
	"fmt"
	"sync"

	"gridpulse/domain/core"
	"gridpulse/domain/series"
	"gridpulse/ports"
)

// MemoryStore is an in-memory ports.Store for tests. It applies the same
// range filtering the Postgres store does, so service-level tests exercise
// real query semantics without a database.
type MemoryStore struct {
	mu          sync.RWMutex
	loadRows    []series.LoadRow
	weatherRows []series.WeatherRow
	zones       map[string]series.Region
	comparisons map[series.Model][]series.ComparisonRow
	pingErr     error
}

var _ ports.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		zones:       make(map[string]series.Region),
		comparisons: make(map[series.Model][]series.ComparisonRow),
	}
}

// SetLoad replaces the hourly load rows.
func (m *MemoryStore) SetLoad(rows []series.LoadRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadRows = rows
}

// SetWeather replaces the hourly weather rows.
func (m *MemoryStore) SetWeather(rows []series.WeatherRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.weatherRows = rows
}

// SetStationZones replaces the station-to-zone mapping.
func (m *MemoryStore) SetStationZones(zones map[string]series.Region) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zones = zones
}

// SetComparison installs a comparison dataset for one model. Models never
// installed report ErrDatasetUnavailable, mirroring a missing table.
func (m *MemoryStore) SetComparison(model series.Model, rows []series.ComparisonRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comparisons[model] = rows
}

// FailPing makes Ping return err, for health-check tests.
func (m *MemoryStore) FailPing(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingErr = err
}

func (m *MemoryStore) HourlyLoad(ctx context.Context, tr core.TimeRange) ([]series.LoadRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []series.LoadRow
	for _, row := range m.loadRows {
		if tr.Contains(row.HourEnd) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *MemoryStore) HourlyWeather(ctx context.Context, tr core.TimeRange) ([]series.WeatherRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []series.WeatherRow
	for _, row := range m.weatherRows {
		if tr.Contains(row.Time) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *MemoryStore) StationZones(ctx context.Context) (map[string]series.Region, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]series.Region, len(m.zones))
	for k, v := range m.zones {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) Comparison(ctx context.Context, model series.Model, tr core.TimeRange) ([]series.ComparisonRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.comparisons[model]
	if !ok {
		return nil, fmt.Errorf("model %s: %w", model, ports.ErrDatasetUnavailable)
	}
	var out []series.ComparisonRow
	for _, row := range rows {
		if tr.Contains(row.HourEnd) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingErr
}
