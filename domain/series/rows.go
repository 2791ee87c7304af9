package series

import (
	"time"
)

// LoadRow is one hourly load record in wide form: an hour-ending timestamp
// and one optional megawatt value per group key. A nil value means the
// source cell was unset; it is never coerced to zero.
type LoadRow struct {
	HourEnd time.Time           `json:"hour_end"`
	MW      map[Region]*float64 `json:"-"`
}

// Value returns the megawatt reading for a region, nil when absent.
func (r LoadRow) Value(key Region) *float64 {
	return r.MW[key]
}

// ComparisonRow is one hourly forecast-comparison record: actual and
// expected megawatts per group key, either side optional.
type ComparisonRow struct {
	HourEnd  time.Time
	Actual   map[Region]*float64
	Expected map[Region]*float64
}

// WeatherRow is one hourly weather observation from a monitoring station.
// All measurements are optional.
type WeatherRow struct {
	Time        time.Time
	StationID   string
	TempC       *float64
	RHPct       *float64
	PrecipMM    *float64
	WindKMH     *float64
	PressureHPA *float64
	CloudPct    *float64
}

// CToF converts a Celsius temperature to Fahrenheit. Heatwave thresholds
// are expressed in °F while stations report °C.
func CToF(c float64) float64 {
	return c*9.0/5.0 + 32.0
}
