package ports

import (
	"context"
	"errors"

	"gridpulse/domain/core"
	"gridpulse/domain/series"
)

// ErrDatasetUnavailable reports that a requested comparison dataset does
// not exist yet. It is distinct from an empty result: no rows matched is
// a success, a missing dataset is not.
var ErrDatasetUnavailable = errors.New("comparison dataset not yet available")

// LoadStore supplies raw hourly load rows. Implementations apply the time
// range; all derived computation happens in the engine.
type LoadStore interface {
	HourlyLoad(ctx context.Context, r core.TimeRange) ([]series.LoadRow, error)
}

// WeatherStore supplies raw hourly weather rows and the station-to-zone
// mapping.
type WeatherStore interface {
	HourlyWeather(ctx context.Context, r core.TimeRange) ([]series.WeatherRow, error)
	StationZones(ctx context.Context) (map[string]series.Region, error)
}

// ComparisonStore supplies precomputed forecast-comparison rows for one
// model. Returns ErrDatasetUnavailable when the model's dataset has not
// been produced yet.
type ComparisonStore interface {
	Comparison(ctx context.Context, model series.Model, r core.TimeRange) ([]series.ComparisonRow, error)
}

// Store is the full Data Store collaborator.
type Store interface {
	LoadStore
	WeatherStore
	ComparisonStore
	Ping(ctx context.Context) error
}
