package series

import (
	"sort"
	"time"
)

// Unpivot reshapes wide load rows into long observations, one per
// (row, key) pair. Row order is preserved, keys emit in the order given.
// Absent cells produce observations with a nil value so the inverse can
// reconstruct the row shape.
func Unpivot(rows []LoadRow, keys []Region) []Observation {
	obs := make([]Observation, 0, len(rows)*len(keys))
	for _, row := range rows {
		for _, key := range keys {
			obs = append(obs, Observation{At: row.HourEnd, Key: key, Value: row.Value(key)})
		}
	}
	return obs
}

// Pivot is the inverse of Unpivot: it groups observations by timestamp and
// emits one wide row per distinct timestamp, ordered chronologically.
// Combinations never observed stay nil.
func Pivot(obs []Observation) []LoadRow {
	byTime := make(map[time.Time]map[Region]*float64)
	order := make([]time.Time, 0)
	for _, o := range obs {
		cells, ok := byTime[o.At]
		if !ok {
			cells = make(map[Region]*float64)
			byTime[o.At] = cells
			order = append(order, o.At)
		}
		cells[o.Key] = o.Value
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	rows := make([]LoadRow, 0, len(order))
	for _, ts := range order {
		rows = append(rows, LoadRow{HourEnd: ts, MW: byTime[ts]})
	}
	return rows
}

// UnpivotComparison reshapes wide comparison rows into paired long
// observations: for each (row, key) one actual/expected pair.
func UnpivotComparison(rows []ComparisonRow, keys []Region) []ComparisonObservation {
	obs := make([]ComparisonObservation, 0, len(rows)*len(keys))
	for _, row := range rows {
		for _, key := range keys {
			obs = append(obs, ComparisonObservation{
				At:       row.HourEnd,
				Key:      key,
				Actual:   row.Actual[key],
				Expected: row.Expected[key],
			})
		}
	}
	return obs
}

// ComparisonObservation is one actual/expected pair for one group key at
// one instant. Either side may be nil.
type ComparisonObservation struct {
	At       time.Time
	Key      Region
	Actual   *float64
	Expected *float64
}
