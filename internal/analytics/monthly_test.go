package analytics

import (
	"testing"

	"gridpulse/domain/analytics"
	"gridpulse/domain/series"
)

func TestMonthlyOutlierDays(t *testing.T) {
	t.Run("classifies against own month only", func(t *testing.T) {
		// January sits around 100 with one spike; February sits around 500.
		// Pooling the months would classify all of February as high.
		daily := []series.DailyAggregate{
			dailyVal(t, series.RegionSystem, "2024-01-01", 100),
			dailyVal(t, series.RegionSystem, "2024-01-02", 100),
			dailyVal(t, series.RegionSystem, "2024-01-03", 100),
			dailyVal(t, series.RegionSystem, "2024-01-04", 160),
			dailyVal(t, series.RegionSystem, "2024-02-01", 500),
			dailyVal(t, series.RegionSystem, "2024-02-02", 500),
			dailyVal(t, series.RegionSystem, "2024-02-03", 500),
			dailyVal(t, series.RegionSystem, "2024-02-04", 500),
		}
		out := MonthlyOutlierDays(daily, 1)
		if len(out) != 1 {
			t.Fatalf("expected 1 outlier day, got %d: %+v", len(out), out)
		}
		if out[0].Day != mustDay(t, "2024-01-04") || out[0].Class != analytics.OutlierHigh {
			t.Errorf("outlier = %+v", out[0])
		}
		if out[0].MonthStart != mustDay(t, "2024-01-01") {
			t.Errorf("month start = %s, want 2024-01-01", out[0].MonthStart)
		}
	})

	t.Run("single-day month classifies nothing", func(t *testing.T) {
		daily := []series.DailyAggregate{
			dailyVal(t, series.RegionSystem, "2024-03-15", 9999),
		}
		if out := MonthlyOutlierDays(daily, 1); len(out) != 0 {
			t.Fatalf("single-day month produced outliers: %+v", out)
		}
	})

	t.Run("output ordered by day", func(t *testing.T) {
		daily := []series.DailyAggregate{
			dailyVal(t, series.RegionSystem, "2024-02-01", 100),
			dailyVal(t, series.RegionSystem, "2024-02-02", 100),
			dailyVal(t, series.RegionSystem, "2024-02-03", 100),
			dailyVal(t, series.RegionSystem, "2024-02-04", 40),
			dailyVal(t, series.RegionSystem, "2024-01-01", 100),
			dailyVal(t, series.RegionSystem, "2024-01-02", 100),
			dailyVal(t, series.RegionSystem, "2024-01-03", 100),
			dailyVal(t, series.RegionSystem, "2024-01-04", 160),
		}
		out := MonthlyOutlierDays(daily, 1)
		if len(out) != 2 {
			t.Fatalf("expected 2 outlier days, got %d", len(out))
		}
		if !out[0].Day.Before(out[1].Day) {
			t.Errorf("days out of order: %s, %s", out[0].Day, out[1].Day)
		}
		if out[1].Class != analytics.OutlierLow {
			t.Errorf("february class = %s, want low", out[1].Class)
		}
	})
}
