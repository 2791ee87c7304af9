package analytics

import (
	"testing"

	"gridpulse/domain/core"
	"gridpulse/domain/series"
)

func TestPrecipitationImpact(t *testing.T) {
	precip := []series.DailyAggregate{
		dailyVal(t, series.RegionCoast, "2024-06-01", 5),
		dailyVal(t, series.RegionCoast, "2024-06-02", 0),
		dailyVal(t, series.RegionCoast, "2024-06-03", 0),
		dailyVal(t, series.RegionCoast, "2024-06-04", 12),
		// No matching load for this day; must drop out of the join.
		dailyVal(t, series.RegionCoast, "2024-06-05", 3),
	}
	load := []series.DailyAggregate{
		dailyVal(t, series.RegionCoast, "2024-06-01", 1000),
		dailyVal(t, series.RegionCoast, "2024-06-02", 1100),
		dailyVal(t, series.RegionCoast, "2024-06-03", 1300),
		dailyVal(t, series.RegionCoast, "2024-06-04", 1400),
	}

	rows := PrecipitationImpact(precip, load)
	if len(rows) != 2 {
		t.Fatalf("expected rainy and dry rows, got %d: %+v", len(rows), rows)
	}

	rainy, dry := rows[0], rows[1]
	if !rainy.RainyDay || dry.RainyDay {
		t.Fatalf("rainy-first ordering violated: %+v", rows)
	}
	if rainy.AvgLoadMW != 1200 || rainy.NumDays != 2 {
		t.Errorf("rainy bucket = %+v, want avg 1200 over 2 days", rainy)
	}
	if dry.AvgLoadMW != 1200 || dry.NumDays != 2 {
		t.Errorf("dry bucket = %+v, want avg 1200 over 2 days", dry)
	}
}

func TestPrecipitationImpactZeroPrecipIsDry(t *testing.T) {
	precip := []series.DailyAggregate{dailyVal(t, series.RegionEast, "2024-06-01", 0)}
	load := []series.DailyAggregate{dailyVal(t, series.RegionEast, "2024-06-01", 900)}
	rows := PrecipitationImpact(precip, load)
	if len(rows) != 1 || rows[0].RainyDay {
		t.Fatalf("zero precipitation must be a dry day: %+v", rows)
	}
}

func TestExtremeHeat(t *testing.T) {
	// Ten days of rising daily-max temperature for one zone. At the 90th
	// percentile the threshold is 99.1, so only day 10 (100°F) qualifies.
	var temps, peaks []series.DailyAggregate
	days := []string{
		"2024-07-01", "2024-07-02", "2024-07-03", "2024-07-04", "2024-07-05",
		"2024-07-06", "2024-07-07", "2024-07-08", "2024-07-09", "2024-07-10",
	}
	for i, day := range days {
		temps = append(temps, dailyVal(t, series.RegionSouthern, day, 91+float64(i)))
		peaks = append(peaks, dailyVal(t, series.RegionSouthern, day, 1000+float64(i)*10))
	}

	t.Run("threshold and join", func(t *testing.T) {
		rows := ExtremeHeat(temps, peaks, 90, nil)
		if len(rows) != 1 {
			t.Fatalf("expected 1 zone row, got %d", len(rows))
		}
		row := rows[0]
		if row.NumExtremeHeatDays != 1 {
			t.Errorf("qualifying days = %d, want 1", row.NumExtremeHeatDays)
		}
		if row.MedianPeakLoadMW != 1090 {
			t.Errorf("median peak = %g, want 1090", row.MedianPeakLoadMW)
		}
		if row.ThresholdPercentile != 90 {
			t.Errorf("threshold percentile = %g", row.ThresholdPercentile)
		}
	})

	t.Run("window filters days not the threshold", func(t *testing.T) {
		// Restricting the window to the first nine days removes the only
		// day above the 90th-percentile threshold, so the zone vanishes
		// rather than recomputing a lower threshold inside the window.
		end := mustDay(t, "2024-07-09")
		within := func(d core.Day) bool { return !d.After(end) }
		rows := ExtremeHeat(temps, peaks, 90, within)
		if len(rows) != 0 {
			t.Fatalf("windowed rows = %+v, want none", rows)
		}
	})

	t.Run("p zero admits every day", func(t *testing.T) {
		rows := ExtremeHeat(temps, peaks, 0, nil)
		if len(rows) != 1 || rows[0].NumExtremeHeatDays != len(days) {
			t.Fatalf("p=0 rows = %+v", rows)
		}
		// Median of 1000..1090 by 10s is 1045.
		if rows[0].MedianPeakLoadMW != 1045 {
			t.Errorf("median = %g, want 1045", rows[0].MedianPeakLoadMW)
		}
	})

	t.Run("zone without peaks is omitted", func(t *testing.T) {
		rows := ExtremeHeat(temps, nil, 90, nil)
		if len(rows) != 0 {
			t.Fatalf("zone with no load data reported: %+v", rows)
		}
	})
}
