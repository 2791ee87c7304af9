package core

import (
	"fmt"
	"time"
)

// Day represents a UTC calendar day. The zero value is the zero day.
// All calendar arithmetic in the analytics engine happens on this type so
// that truncation semantics live in exactly one place.
type Day struct {
	t time.Time // always midnight UTC
}

// DayOf truncates an instant to its UTC calendar day.
func DayOf(ts time.Time) Day {
	u := ts.UTC()
	return Day{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a YYYY-MM-DD string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q: expected YYYY-MM-DD", s)
	}
	return Day{t: t}, nil
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time { return d.t }

// IsZero checks if the day is the zero value.
func (d Day) IsZero() bool { return d.t.IsZero() }

// AddDays returns the day n calendar days later (earlier for negative n).
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// Next returns the following calendar day.
func (d Day) Next() Day { return d.AddDays(1) }

// Before reports whether d is before other.
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }

// After reports whether d is after other.
func (d Day) After(other Day) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same calendar day.
func (d Day) Equal(other Day) bool { return d.t.Equal(other.t) }

// MonthStart returns the first day of the month containing d.
func (d Day) MonthStart() Day {
	return Day{t: time.Date(d.t.Year(), d.t.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// DaysSince returns the number of whole calendar days from other to d.
func (d Day) DaysSince(other Day) int {
	return int(d.t.Sub(other.t) / (24 * time.Hour))
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string { return d.t.Format("2006-01-02") }

// MarshalJSON renders the day as a YYYY-MM-DD string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a YYYY-MM-DD string.
func (d *Day) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid day literal %s", s)
	}
	day, err := ParseDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = day
	return nil
}

// TimeRange is an optional [Start, End] filter over instants. Nil bounds
// are open ends; both bounds are inclusive, matching the store queries.
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether ts falls inside the range.
func (r TimeRange) Contains(ts time.Time) bool {
	if r.Start != nil && ts.Before(*r.Start) {
		return false
	}
	if r.End != nil && ts.After(*r.End) {
		return false
	}
	return true
}

// ContainsDay reports whether the day's midnight falls inside the range.
func (r TimeRange) ContainsDay(d Day) bool {
	return r.Contains(d.Time())
}

// IsOpen reports whether the range has no bounds at all.
func (r TimeRange) IsOpen() bool { return r.Start == nil && r.End == nil }
