package analytics

import (
	"fmt"
	"time"

	"gridpulse/domain/core"
	"gridpulse/domain/series"
)

// OutlierClass labels a classified observation. Unclassified observations
// never appear in results.
type OutlierClass string

const (
	OutlierHigh OutlierClass = "high"
	OutlierLow  OutlierClass = "low"
)

// ParseOutlierClass validates an optional outlier-class filter. Empty
// input means no filter.
func ParseOutlierClass(s string) (OutlierClass, error) {
	switch OutlierClass(s) {
	case "", OutlierHigh, OutlierLow:
		return OutlierClass(s), nil
	}
	return "", fmt.Errorf("invalid outlier_type: %s. Valid options are: high, low", s)
}

// Streak is a maximal run of consecutive qualifying calendar days for one
// zone. AvgPeakLoadMW is the mean of daily peak load over [Start, End],
// nil when no load data overlaps the window.
type Streak struct {
	Zone          series.Region `json:"zone"`
	Start         core.Day      `json:"streak_start"`
	End           core.Day      `json:"streak_end"`
	Days          int           `json:"streak_days"`
	AvgPeakLoadMW *float64      `json:"avg_peak_load_mw"`
}

// DispersionStats summarizes one group's filtered population. StdDev is
// the sample standard deviation (divisor n-1) and is nil when n < 2.
type DispersionStats struct {
	Mean   float64
	StdDev *float64
	N      int
}

// OutlierRow is one hourly load value classified as an outlier against
// its region's dispersion over the same filtered population.
type OutlierRow struct {
	HourEnd     time.Time     `json:"hour_end"`
	Region      series.Region `json:"region"`
	LoadMW      float64       `json:"load_mw"`
	Mean        float64       `json:"mean"`
	StdDev      float64       `json:"std_dev"`
	ZScore      float64       `json:"z_score"`
	OutlierType OutlierClass  `json:"outlier_type"`
}

// ForecastMetricsRow scores one region's forecast against actuals.
// N counts pairs with both sides present. MAPEPct is nil when no pair has
// a nonzero actual; R2 is nil when the actuals have zero total variance.
type ForecastMetricsRow struct {
	Region  series.Region `json:"region"`
	N       int           `json:"n"`
	MSE     *float64      `json:"mse"`
	MAE     *float64      `json:"mae"`
	MAPEPct *float64      `json:"mape_pct"`
	R2      *float64      `json:"r2"`
}

// PrecipImpactRow compares mean daily load between rainy and dry days for
// one zone.
type PrecipImpactRow struct {
	Zone      series.Region `json:"zone"`
	RainyDay  bool          `json:"rainy_day"`
	AvgLoadMW float64       `json:"avg_load_mw"`
	NumDays   int           `json:"num_days"`
}

// ExtremeHeatRow reports the median daily peak load over one zone's
// extreme-heat days, with the percentile threshold that defined them.
type ExtremeHeatRow struct {
	Zone                series.Region `json:"zone"`
	MedianPeakLoadMW    float64       `json:"median_peak_load_mw"`
	NumExtremeHeatDays  int           `json:"num_extreme_heat_days"`
	ThresholdPercentile float64       `json:"threshold_percentile"`
	ThresholdTempF      float64       `json:"threshold_temp_f"`
}

// MonthlyOutlierWeatherRow aggregates weather conditions across the days
// of one month classified into one outlier group. AvgPrecipMM averages
// daily precipitation totals; the other figures average daily means. A
// figure is nil when every contributing reading was absent.
type MonthlyOutlierWeatherRow struct {
	MonthStart       core.Day     `json:"month_start"`
	OutlierGroup     OutlierClass `json:"outlier_group"`
	NumDays          int          `json:"num_days"`
	AvgTempC         *float64     `json:"avg_temp_c"`
	AvgRHPct         *float64     `json:"avg_rh_pct"`
	AvgPrecipMM      *float64     `json:"avg_precip_mm"`
	AvgWindKMH       *float64     `json:"avg_wind_kmh"`
	AvgPressureHPA   *float64     `json:"avg_pressure_hpa"`
	AvgCloudCoverPct *float64     `json:"avg_cloud_cover_pct"`
}

// OutlierDay is one classified calendar day from the monthly joiner, with
// the month whose statistics classified it.
type OutlierDay struct {
	Day        core.Day
	MonthStart core.Day
	Class      OutlierClass
}

// Metadata echoes the effective parameters of an analytic computation.
type Metadata map[string]interface{}
