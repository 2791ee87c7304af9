package analytics

import (
	"sort"

	"gridpulse/domain/analytics"
	"gridpulse/domain/core"
	"gridpulse/domain/series"
)

// MonthlyOutlierDays classifies each daily aggregate against the
// dispersion of its own calendar month. The baseline for a day is always
// the month containing that day, so one month's data never moves another
// month's thresholds. Only classified days are returned, ordered by day.
func MonthlyOutlierDays(daily []series.DailyAggregate, k float64) []analytics.OutlierDay {
	byMonth := make(map[core.Day][]series.DailyAggregate)
	for _, a := range daily {
		m := a.Day.MonthStart()
		byMonth[m] = append(byMonth[m], a)
	}

	var out []analytics.OutlierDay
	for month, days := range byMonth {
		values := make([]float64, len(days))
		for i, d := range days {
			values[i] = d.Value
		}
		ds := Describe(values)
		for _, d := range days {
			class, _ := Classify(d.Value, ds, k)
			if class == "" {
				continue
			}
			out = append(out, analytics.OutlierDay{
				Day:        d.Day,
				MonthStart: month,
				Class:      class,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}
