package analytics

import (
	"github.com/montanaflynn/stats"

	"gridpulse/domain/analytics"
)

// Describe computes the arithmetic mean and sample standard deviation
// (Bessel-corrected, divisor n-1) of a population. StdDev is nil for
// populations smaller than two, where the estimator is undefined.
//
// The caller must pass exactly the population it intends to classify:
// filters apply before dispersion is computed, never after.
func Describe(values []float64) analytics.DispersionStats {
	n := len(values)
	if n == 0 {
		return analytics.DispersionStats{}
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return analytics.DispersionStats{}
	}
	ds := analytics.DispersionStats{Mean: mean, N: n}
	if n >= 2 {
		sd, err := stats.StandardDeviationSample(values)
		if err == nil {
			ds.StdDev = &sd
		}
	}
	return ds
}

// Classify labels one value against its group's dispersion: high when
// value > mean + k*std, low when value < mean - k*std, strict on both
// sides so a value exactly on the boundary stays unlabeled. When the
// standard deviation is zero or undefined both the z-score and the class
// are undefined -- a zero-variance group contains no outliers.
func Classify(value float64, ds analytics.DispersionStats, k float64) (analytics.OutlierClass, *float64) {
	if ds.StdDev == nil || *ds.StdDev == 0 {
		return "", nil
	}
	sd := *ds.StdDev
	z := (value - ds.Mean) / sd
	switch {
	case value > ds.Mean+k*sd:
		return analytics.OutlierHigh, &z
	case value < ds.Mean-k*sd:
		return analytics.OutlierLow, &z
	}
	return "", &z
}
