package series

import (
	"time"

	"gridpulse/domain/core"
)

// Observation is one timestamped numeric reading for one group key, the
// long-form unit everything downstream of the pivoter consumes. Value is
// nil when the source cell was unset.
type Observation struct {
	At    time.Time
	Key   Region
	Value *float64
}

// DailyAggregate is the reduction of all observations for one group key
// that fall in one UTC calendar day. Days with no contributing
// observations are never materialized.
type DailyAggregate struct {
	Day   core.Day
	Key   Region
	Value float64
}
