package analytics

import (
	"sort"

	"gridpulse/domain/analytics"
	"gridpulse/domain/core"
	"gridpulse/domain/series"
)

// PrecipitationImpact joins per-zone daily precipitation totals to
// per-zone daily average load by calendar day and reports, per (zone,
// rainy) bucket, the mean daily load and day count. A day is rainy when
// its precipitation total exceeds zero. Days present in only one of the
// two series drop out of the join. Rows order by zone, rainy first.
func PrecipitationImpact(precipDaily, loadDaily []series.DailyAggregate) []analytics.PrecipImpactRow {
	loadByKeyDay := indexByKeyDay(loadDaily)

	type bucket struct {
		sum  float64
		days int
	}
	type bucketKey struct {
		zone  series.Region
		rainy bool
	}
	buckets := make(map[bucketKey]*bucket)
	for _, p := range precipDaily {
		load, ok := loadByKeyDay[p.Key][p.Day]
		if !ok {
			continue
		}
		bk := bucketKey{zone: p.Key, rainy: p.Value > 0}
		b := buckets[bk]
		if b == nil {
			b = &bucket{}
			buckets[bk] = b
		}
		b.sum += load
		b.days++
	}

	rows := make([]analytics.PrecipImpactRow, 0, len(buckets))
	for bk, b := range buckets {
		rows = append(rows, analytics.PrecipImpactRow{
			Zone:      bk.zone,
			RainyDay:  bk.rainy,
			AvgLoadMW: b.sum / float64(b.days),
			NumDays:   b.days,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Zone != rows[j].Zone {
			return rows[i].Zone < rows[j].Zone
		}
		return rows[i].RainyDay && !rows[j].RainyDay
	})
	return rows
}

// ExtremeHeat implements the two-stage percentile-then-join: a per-zone
// temperature threshold is computed over the zone's full daily-max
// population, days at or above the threshold (and accepted by within) are
// selected, and those days are joined by calendar day to the zone's daily
// peak load, whose median becomes the reported statistic. Zones with no
// joined days are omitted. Rows order by zone.
func ExtremeHeat(tempDaily, peakDaily []series.DailyAggregate, pct float64, within func(core.Day) bool) []analytics.ExtremeHeatRow {
	thresholds := Thresholds(tempDaily, pct)
	peaksByKeyDay := indexByKeyDay(peakDaily)

	joined := make(map[series.Region][]float64)
	for _, t := range tempDaily {
		threshold, ok := thresholds[t.Key]
		if !ok || t.Value < threshold {
			continue
		}
		if within != nil && !within(t.Day) {
			continue
		}
		if peak, ok := peaksByKeyDay[t.Key][t.Day]; ok {
			joined[t.Key] = append(joined[t.Key], peak)
		}
	}

	rows := make([]analytics.ExtremeHeatRow, 0, len(joined))
	for zone, peaks := range joined {
		median, ok := Median(peaks)
		if !ok {
			continue
		}
		rows = append(rows, analytics.ExtremeHeatRow{
			Zone:                zone,
			MedianPeakLoadMW:    median,
			NumExtremeHeatDays:  len(peaks),
			ThresholdPercentile: pct,
			ThresholdTempF:      thresholds[zone],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Zone < rows[j].Zone })
	return rows
}

func indexByKeyDay(aggs []series.DailyAggregate) map[series.Region]map[core.Day]float64 {
	idx := make(map[series.Region]map[core.Day]float64)
	for _, a := range aggs {
		days, ok := idx[a.Key]
		if !ok {
			days = make(map[core.Day]float64)
			idx[a.Key] = days
		}
		days[a.Day] = a.Value
	}
	return idx
}
