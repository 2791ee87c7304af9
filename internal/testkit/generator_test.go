package testkit

import (
	"math"
	"testing"

	"gridpulse/domain/series"
)

func TestGeneratorDeterminism(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	a := NewGenerator(cfg).GenerateLoad()
	b := NewGenerator(cfg).GenerateLoad()
	if len(a) != len(b) || len(a) != cfg.Days*24 {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		for _, key := range series.Regions() {
			va, vb := a[i].Value(key), b[i].Value(key)
			if (va == nil) != (vb == nil) {
				t.Fatalf("row %d %s: nil mismatch", i, key)
			}
			if va != nil && *va != *vb {
				t.Fatalf("row %d %s: %g != %g", i, key, *va, *vb)
			}
		}
	}
}

func TestGeneratorSystemColumnIsZoneSum(t *testing.T) {
	rows := NewGenerator(DefaultGeneratorConfig()).GenerateLoad()
	for i, row := range rows {
		system := row.Value(series.RegionSystem)
		sum := 0.0
		complete := true
		for _, zone := range series.Zones() {
			v := row.Value(zone)
			if v == nil {
				complete = false
				break
			}
			sum += *v
		}
		if !complete {
			if system != nil {
				t.Fatalf("row %d: system total present despite missing zone", i)
			}
			continue
		}
		if system == nil || math.Abs(*system-sum) > 1e-6 {
			t.Fatalf("row %d: system %v != zone sum %g", i, system, sum)
		}
	}
}

func TestGeneratorWeatherCoversAllStations(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	zones := DefaultStationZones()
	rows := NewGenerator(cfg).GenerateWeather(zones)
	if len(rows) != cfg.Days*24*len(zones) {
		t.Fatalf("weather rows = %d, want %d", len(rows), cfg.Days*24*len(zones))
	}
	seen := make(map[string]bool)
	for _, row := range rows {
		seen[row.StationID] = true
	}
	if len(seen) != len(zones) {
		t.Fatalf("stations seen = %d, want %d", len(seen), len(zones))
	}
}
