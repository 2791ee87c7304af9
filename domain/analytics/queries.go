package analytics

import (
	"fmt"

	"gridpulse/domain/core"
	"gridpulse/domain/series"
)

// Parameter bounds documented by the query contract.
const (
	MinStdDevThreshold  = 1.0
	MaxStdDevThreshold  = 5.0
	MinOutlierLimit     = 1
	MaxOutlierLimit     = 10000
	DefaultOutlierLimit = 1000
)

// HourlyLoadQuery selects hourly wide load rows.
type HourlyLoadQuery struct {
	Range   core.TimeRange
	Regions []series.Region // empty means all
}

// ComparisonQuery selects wide actual/expected rows for one model.
type ComparisonQuery struct {
	Range   core.TimeRange
	Regions []series.Region // empty means all
	Model   series.Model
}

// ForecastMetricsQuery scores one model's forecast per region.
type ForecastMetricsQuery struct {
	Range   core.TimeRange
	Regions []series.Region // empty means all
	Model   series.Model
}

// HeatwaveQuery detects consecutive hot-day streaks per zone.
type HeatwaveQuery struct {
	Zones    []series.Region // empty means all zones
	MinTempF float64
	MinDays  int
	Start    core.Day // zero means open
	End      core.Day // zero means open
}

// Validate checks documented bounds.
func (q HeatwaveQuery) Validate() error {
	if q.MinDays < 1 {
		return fmt.Errorf("min_days must be >= 1, got %d", q.MinDays)
	}
	return nil
}

// PrecipImpactQuery compares rainy-day vs dry-day load per zone.
type PrecipImpactQuery struct {
	Zones []series.Region // empty means all zones
	Start core.Day
	End   core.Day
}

// ExtremeHeatQuery computes median peak load over extreme-heat days.
type ExtremeHeatQuery struct {
	Zones      []series.Region // empty means all zones
	Start      core.Day
	End        core.Day
	Percentile float64
}

// Validate checks documented bounds.
func (q ExtremeHeatQuery) Validate() error {
	if q.Percentile < 0 || q.Percentile > 100 {
		return fmt.Errorf("threshold percentile must be in [0, 100], got %g", q.Percentile)
	}
	return nil
}

// OutlierQuery classifies hourly load values per region.
type OutlierQuery struct {
	Range           core.TimeRange
	Regions         []series.Region // empty means all
	Class           OutlierClass    // empty means both
	StdDevThreshold float64
	Limit           int
}

// Validate checks documented bounds.
func (q OutlierQuery) Validate() error {
	if q.StdDevThreshold < MinStdDevThreshold || q.StdDevThreshold > MaxStdDevThreshold {
		return fmt.Errorf("std_dev_threshold must be in [%g, %g], got %g",
			MinStdDevThreshold, MaxStdDevThreshold, q.StdDevThreshold)
	}
	if q.Limit < MinOutlierLimit || q.Limit > MaxOutlierLimit {
		return fmt.Errorf("limit must be in [%d, %d], got %d", MinOutlierLimit, MaxOutlierLimit, q.Limit)
	}
	return nil
}

// MonthlyOutlierWeatherQuery joins monthly load outliers to weather.
type MonthlyOutlierWeatherQuery struct {
	Start           core.Day
	End             core.Day
	Months          []core.Day // month starts; empty means all
	Class           OutlierClass
	StdDevThreshold float64
}

// Validate checks documented bounds.
func (q MonthlyOutlierWeatherQuery) Validate() error {
	if q.StdDevThreshold < MinStdDevThreshold || q.StdDevThreshold > MaxStdDevThreshold {
		return fmt.Errorf("std_dev_threshold must be in [%g, %g], got %g",
			MinStdDevThreshold, MaxStdDevThreshold, q.StdDevThreshold)
	}
	return nil
}
