package testkit

import (
	"gridpulse/app"
	"gridpulse/domain/series"
	"gridpulse/internal"
	"gridpulse/internal/config"
)

// Kit wires a seeded in-memory store to an analytics service so tests can
// exercise the full operation path without a database.
type Kit struct {
	Store  *MemoryStore
	Config config.AnalyticsConfig
}

// NewKit creates a kit populated with the default synthetic fortnight:
// load, weather, station zones and a statistical comparison dataset. The
// xgb dataset is deliberately absent.
func NewKit() *Kit {
	g := NewGenerator(DefaultGeneratorConfig())
	store := NewMemoryStore()

	loads := g.GenerateLoad()
	store.SetLoad(loads)
	zones := DefaultStationZones()
	store.SetStationZones(zones)
	store.SetWeather(g.GenerateWeather(zones))
	store.SetComparison(series.ModelStatistical, g.GenerateComparison(loads))

	return &Kit{
		Store:  store,
		Config: defaultAnalyticsConfig(),
	}
}

// NewEmptyKit creates a kit with an empty store, for tests that install
// their own fixtures.
func NewEmptyKit() *Kit {
	return &Kit{
		Store:  NewMemoryStore(),
		Config: defaultAnalyticsConfig(),
	}
}

// Service builds an analytics service over the kit's store.
func (k *Kit) Service() *app.AnalyticsService {
	return app.NewAnalyticsService(k.Store, k.Config, internal.NewLogger(internal.LogLevelError))
}

func defaultAnalyticsConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		DefaultStdDevThreshold: 3.0,
		DefaultHeatwaveTempF:   100.0,
		DefaultHeatwaveMinDays: 3,
		DefaultHeatPercentile:  99.0,
		DefaultOutlierLimit:    1000,
	}
}
