package analytics

import (
	"sort"

	"github.com/montanaflynn/stats"

	"gridpulse/domain/analytics"
	"gridpulse/domain/core"
	"gridpulse/domain/series"
)

// DetectStreaks finds, per group key, every maximal run of consecutive
// qualifying calendar days of length >= minDays. A run extends only when
// the previous qualifying day is exactly one calendar day earlier;
// duplicate or regressing days break the run, so duplicated source rows
// cannot inflate a streak. Output is ordered by group key then start day.
func DetectStreaks(aggs []series.DailyAggregate, qualifies func(series.DailyAggregate) bool, minDays int) []analytics.Streak {
	byKey := make(map[series.Region][]core.Day)
	for _, a := range aggs {
		if qualifies(a) {
			byKey[a.Key] = append(byKey[a.Key], a.Day)
		}
	}

	keys := make([]series.Region, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var streaks []analytics.Streak
	for _, key := range keys {
		days := byKey[key]
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

		start := days[0]
		prev := days[0]
		length := 1
		emit := func() {
			if length >= minDays {
				streaks = append(streaks, analytics.Streak{
					Zone:  key,
					Start: start,
					End:   prev,
					Days:  length,
				})
			}
		}
		for _, day := range days[1:] {
			if day.Equal(prev.Next()) {
				prev = day
				length++
				continue
			}
			emit()
			start = day
			prev = day
			length = 1
		}
		emit()
	}
	return streaks
}

// AttachPeakLoad enriches streaks with the mean of a secondary daily
// metric (typically daily peak load) restricted to [Start, End] for the
// same group key. Streaks with no overlapping secondary data keep a nil
// metric, never zero.
func AttachPeakLoad(streaks []analytics.Streak, secondary []series.DailyAggregate) {
	byKeyDay := make(map[series.Region]map[core.Day]float64)
	for _, a := range secondary {
		days, ok := byKeyDay[a.Key]
		if !ok {
			days = make(map[core.Day]float64)
			byKeyDay[a.Key] = days
		}
		days[a.Day] = a.Value
	}

	for i := range streaks {
		days := byKeyDay[streaks[i].Zone]
		if days == nil {
			continue
		}
		var values []float64
		for d := streaks[i].Start; !d.After(streaks[i].End); d = d.Next() {
			if v, ok := days[d]; ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		mean, err := stats.Mean(values)
		if err != nil {
			continue
		}
		streaks[i].AvgPeakLoadMW = &mean
	}
}
