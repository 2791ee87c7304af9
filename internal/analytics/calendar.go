package analytics

import (
	"sort"

	"gridpulse/domain/core"
	"gridpulse/domain/series"
)

// Reducer folds the non-null observations of one (day, group key) bucket
// into a single value. Reducers must be associative and commutative over
// sets of floats; the aggregator gives no ordering guarantee within a day.
type Reducer struct {
	Name string
	fold func(values []float64) float64
}

var (
	// ReduceMax keeps the daily maximum (peak load, max temperature).
	ReduceMax = Reducer{Name: "max", fold: foldMax}
	// ReduceMean keeps the daily arithmetic mean.
	ReduceMean = Reducer{Name: "avg", fold: foldMean}
	// ReduceSum keeps the daily total (precipitation).
	ReduceSum = Reducer{Name: "sum", fold: foldSum}
)

// AggregateDaily reduces observations to one value per (UTC calendar day,
// group key). Null values are dropped before reduction; a bucket with no
// surviving values is omitted entirely, never emitted as zero. Output is
// ordered by group key then day.
func AggregateDaily(obs []series.Observation, r Reducer) []series.DailyAggregate {
	type bucketKey struct {
		key series.Region
		day core.Day
	}
	buckets := make(map[bucketKey][]float64)
	for _, o := range obs {
		if o.Value == nil {
			continue
		}
		bk := bucketKey{key: o.Key, day: core.DayOf(o.At)}
		buckets[bk] = append(buckets[bk], *o.Value)
	}

	out := make([]series.DailyAggregate, 0, len(buckets))
	for bk, values := range buckets {
		out = append(out, series.DailyAggregate{
			Day:   bk.day,
			Key:   bk.key,
			Value: r.fold(values),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Day.Before(out[j].Day)
	})
	return out
}

func foldMax(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func foldMean(values []float64) float64 {
	return foldSum(values) / float64(len(values))
}

func foldSum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}
