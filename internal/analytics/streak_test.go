package analytics

import (
	"testing"

	"gridpulse/domain/core"
	"gridpulse/domain/series"
)

func mustDay(t *testing.T, s string) core.Day {
	t.Helper()
	d, err := core.ParseDay(s)
	if err != nil {
		t.Fatalf("ParseDay(%s): %v", s, err)
	}
	return d
}

func dailyVal(t *testing.T, zone series.Region, day string, v float64) series.DailyAggregate {
	t.Helper()
	return series.DailyAggregate{Day: mustDay(t, day), Key: zone, Value: v}
}

func hot(a series.DailyAggregate) bool { return a.Value >= 100 }

func TestDetectStreaks(t *testing.T) {
	t.Run("gap splits runs", func(t *testing.T) {
		aggs := []series.DailyAggregate{
			dailyVal(t, series.RegionWest, "2024-01-01", 101),
			dailyVal(t, series.RegionWest, "2024-01-02", 102),
			dailyVal(t, series.RegionWest, "2024-01-03", 103),
			// Jan 4 missing
			dailyVal(t, series.RegionWest, "2024-01-05", 104),
			dailyVal(t, series.RegionWest, "2024-01-06", 105),
		}
		streaks := DetectStreaks(aggs, hot, 2)
		if len(streaks) != 2 {
			t.Fatalf("expected 2 streaks, got %d: %+v", len(streaks), streaks)
		}
		if streaks[0].Days != 3 || streaks[0].Start != mustDay(t, "2024-01-01") || streaks[0].End != mustDay(t, "2024-01-03") {
			t.Errorf("first streak = %+v", streaks[0])
		}
		if streaks[1].Days != 2 || streaks[1].Start != mustDay(t, "2024-01-05") {
			t.Errorf("second streak = %+v", streaks[1])
		}
	})

	t.Run("minDays filters short runs", func(t *testing.T) {
		aggs := []series.DailyAggregate{
			dailyVal(t, series.RegionWest, "2024-01-01", 101),
			dailyVal(t, series.RegionWest, "2024-01-02", 102),
			dailyVal(t, series.RegionWest, "2024-01-04", 104),
		}
		streaks := DetectStreaks(aggs, hot, 2)
		if len(streaks) != 1 {
			t.Fatalf("expected 1 streak, got %d", len(streaks))
		}
		if streaks[0].Days != 2 {
			t.Errorf("streak length = %d, want 2", streaks[0].Days)
		}
	})

	t.Run("non-qualifying day breaks the run", func(t *testing.T) {
		aggs := []series.DailyAggregate{
			dailyVal(t, series.RegionWest, "2024-01-01", 101),
			dailyVal(t, series.RegionWest, "2024-01-02", 95),
			dailyVal(t, series.RegionWest, "2024-01-03", 103),
		}
		if streaks := DetectStreaks(aggs, hot, 2); len(streaks) != 0 {
			t.Fatalf("expected no streaks across a cool day, got %+v", streaks)
		}
	})

	t.Run("duplicate days cannot extend a run", func(t *testing.T) {
		aggs := []series.DailyAggregate{
			dailyVal(t, series.RegionWest, "2024-01-01", 101),
			dailyVal(t, series.RegionWest, "2024-01-01", 102),
			dailyVal(t, series.RegionWest, "2024-01-02", 103),
		}
		streaks := DetectStreaks(aggs, hot, 2)
		// The duplicate breaks the run, so no streak of length >= 2 survives.
		if len(streaks) != 0 {
			t.Fatalf("duplicated day inflated a streak: %+v", streaks)
		}
	})

	t.Run("zones stay independent", func(t *testing.T) {
		aggs := []series.DailyAggregate{
			dailyVal(t, series.RegionCoast, "2024-01-01", 101),
			dailyVal(t, series.RegionWest, "2024-01-02", 102),
			dailyVal(t, series.RegionCoast, "2024-01-02", 103),
		}
		streaks := DetectStreaks(aggs, hot, 2)
		if len(streaks) != 1 || streaks[0].Zone != series.RegionCoast {
			t.Fatalf("expected one coast streak, got %+v", streaks)
		}
	})
}

func TestAttachPeakLoad(t *testing.T) {
	streaks := []struct {
		zone       series.Region
		start, end string
	}{
		{series.RegionWest, "2024-01-01", "2024-01-03"},
		{series.RegionEast, "2024-01-01", "2024-01-02"},
	}
	var input []series.DailyAggregate
	for _, v := range []struct {
		day string
		mw  float64
	}{{"2024-01-01", 100}, {"2024-01-02", 110}, {"2024-01-03", 120}} {
		input = append(input, dailyVal(t, series.RegionWest, v.day, v.mw))
	}

	runs := DetectStreaks([]series.DailyAggregate{
		dailyVal(t, streaks[0].zone, "2024-01-01", 101),
		dailyVal(t, streaks[0].zone, "2024-01-02", 101),
		dailyVal(t, streaks[0].zone, "2024-01-03", 101),
		dailyVal(t, streaks[1].zone, "2024-01-01", 101),
		dailyVal(t, streaks[1].zone, "2024-01-02", 101),
	}, hot, 2)
	if len(runs) != 2 {
		t.Fatalf("expected 2 streaks, got %d", len(runs))
	}

	AttachPeakLoad(runs, input)

	for _, s := range runs {
		switch s.Zone {
		case series.RegionWest:
			if s.AvgPeakLoadMW == nil || *s.AvgPeakLoadMW != 110 {
				t.Errorf("west avg peak = %v, want 110", s.AvgPeakLoadMW)
			}
		case series.RegionEast:
			// No load data overlaps the east streak.
			if s.AvgPeakLoadMW != nil {
				t.Errorf("east avg peak = %v, want nil", *s.AvgPeakLoadMW)
			}
		}
	}
}
