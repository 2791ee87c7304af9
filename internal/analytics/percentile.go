package analytics

import (
	"math"
	"sort"

	"gridpulse/domain/series"
)

// PercentileCont computes the continuous percentile of a population:
// for fractional rank r = p/100*(n-1) the result interpolates linearly
// between the order statistics at floor(r) and ceil(r). This matches
// SQL's percentile_cont, not the nearest-rank method. p must be in
// [0, 100]; p=0 yields the minimum and p=100 the maximum. Returns false
// for an empty population.
func PercentileCont(values []float64, p float64) (float64, bool) {
	n := len(values)
	if n == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n == 1 {
		return sorted[0], true
	}

	r := p / 100 * float64(n-1)
	lo := int(math.Floor(r))
	hi := int(math.Ceil(r))
	if hi > n-1 {
		hi = n - 1
	}
	frac := r - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), true
}

// Median is the continuous 50th percentile.
func Median(values []float64) (float64, bool) {
	return PercentileCont(values, 50)
}

// Thresholds computes one continuous percentile threshold per group key
// over a daily aggregate set. Keys with no data are absent from the map.
func Thresholds(aggs []series.DailyAggregate, p float64) map[series.Region]float64 {
	byKey := make(map[series.Region][]float64)
	for _, a := range aggs {
		byKey[a.Key] = append(byKey[a.Key], a.Value)
	}
	out := make(map[series.Region]float64, len(byKey))
	for key, values := range byKey {
		if t, ok := PercentileCont(values, p); ok {
			out[key] = t
		}
	}
	return out
}
