package postgres

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"gridpulse/domain/series"
)

func TestComparisonTable(t *testing.T) {
	if got := comparisonTable(series.ModelStatistical); got != "ercot_load_wide_compare" {
		t.Errorf("statistical table = %s", got)
	}
	if got := comparisonTable(series.ModelXGB); got != "ercot_load_wide_compare_xgb" {
		t.Errorf("xgb table = %s", got)
	}
}

func TestNullableFloat(t *testing.T) {
	if v := nullableFloat(sql.NullFloat64{}); v != nil {
		t.Errorf("invalid NullFloat64 = %g, want nil", *v)
	}
	if v := nullableFloat(sql.NullFloat64{Float64: 1.5, Valid: true}); v == nil || *v != 1.5 {
		t.Errorf("valid NullFloat64 = %v", v)
	}
}

func TestNullTime(t *testing.T) {
	if nt := nullTime(nil); nt.Valid {
		t.Error("nil time should be an invalid NullTime")
	}
	ts := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	nt := nullTime(&ts)
	if !nt.Valid || !nt.Time.Equal(ts) {
		t.Errorf("NullTime = %+v", nt)
	}
}

func TestHourlyLoadQueryShape(t *testing.T) {
	// The fixed-text query must select one column per region in
	// declaration order so positional scanning stays correct.
	for _, key := range series.Regions() {
		if !strings.Contains(hourlyLoadQuery, string(key)) {
			t.Errorf("query missing column %s", key)
		}
	}
	if !strings.Contains(hourlyLoadQuery, "ORDER BY hour_end") {
		t.Error("query must order by hour_end")
	}
}
