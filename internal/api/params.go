package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gridpulse/domain/core"
	"gridpulse/domain/series"
)

// Accepted timestamp layouts, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimeParam(q url.Values, name string) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			u := t.UTC()
			return &u, nil
		}
	}
	return nil, fmt.Errorf("invalid %s %q: expected an ISO 8601 timestamp", name, raw)
}

func parseTimeRange(q url.Values) (core.TimeRange, error) {
	start, err := parseTimeParam(q, "start")
	if err != nil {
		return core.TimeRange{}, err
	}
	end, err := parseTimeParam(q, "end")
	if err != nil {
		return core.TimeRange{}, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return core.TimeRange{}, fmt.Errorf("end must not precede start")
	}
	return core.TimeRange{Start: start, End: end}, nil
}

func parseDayParam(q url.Values, name string) (core.Day, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return core.Day{}, nil
	}
	return core.ParseDay(raw)
}

func parseDayRange(q url.Values) (core.Day, core.Day, error) {
	start, err := parseDayParam(q, "start_date")
	if err != nil {
		return core.Day{}, core.Day{}, err
	}
	end, err := parseDayParam(q, "end_date")
	if err != nil {
		return core.Day{}, core.Day{}, err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return core.Day{}, core.Day{}, fmt.Errorf("end_date must not precede start_date")
	}
	return start, end, nil
}

// parseRegionsParam parses the optional comma-separated region filter.
// Absent means no filter.
func parseRegionsParam(q url.Values, name string, includeSystem bool) ([]series.Region, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	return series.ParseRegions(raw, includeSystem)
}

func parseFloatParam(q url.Values, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: expected a number", name, raw)
	}
	return v, nil
}

func parseIntParam(q url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: expected an integer", name, raw)
	}
	return v, nil
}

// parseMonthsParam parses a comma-separated list of YYYY-MM months into
// month-start days. Absent means no filter.
func parseMonthsParam(q url.Values, name string) ([]core.Day, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	var months []core.Day
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := time.Parse("2006-01", part)
		if err != nil {
			return nil, fmt.Errorf("invalid month %q: expected YYYY-MM", part)
		}
		months = append(months, core.DayOf(t))
	}
	return months, nil
}
