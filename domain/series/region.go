package series

import (
	"fmt"
	"strings"
)

// Region is the group key partitioning load and weather observations.
// Eight weather zones plus the system-wide aggregate.
type Region string

const (
	RegionCoast    Region = "coast"
	RegionEast     Region = "east"
	RegionFarWest  Region = "far_west"
	RegionNorth    Region = "north"
	RegionNorthC   Region = "north_c"
	RegionSouthern Region = "southern"
	RegionSouthC   Region = "south_c"
	RegionWest     Region = "west"
	// RegionSystem is the system-wide total, not a zone.
	RegionSystem Region = "ercot"
)

// Regions returns all valid group keys in declaration order. The pivoter
// relies on this ordering, so it must stay stable.
func Regions() []Region {
	return []Region{
		RegionCoast, RegionEast, RegionFarWest, RegionNorth,
		RegionNorthC, RegionSouthern, RegionSouthC, RegionWest,
		RegionSystem,
	}
}

// Zones returns the eight weather zones, excluding the system aggregate.
func Zones() []Region {
	all := Regions()
	return all[:len(all)-1]
}

// IsValid reports whether r is a known group key.
func (r Region) IsValid() bool {
	for _, known := range Regions() {
		if r == known {
			return true
		}
	}
	return false
}

// IsZone reports whether r is a weather zone (system aggregate excluded).
func (r Region) IsZone() bool {
	return r.IsValid() && r != RegionSystem
}

func (r Region) String() string { return string(r) }

// ParseRegions parses a comma-separated region filter. When includeSystem
// is false the system aggregate is rejected (zone-scoped analytics).
// The returned error names every offending value and the valid set.
func ParseRegions(csv string, includeSystem bool) ([]Region, error) {
	valid := Zones()
	if includeSystem {
		valid = Regions()
	}

	var selected []Region
	var invalid []string
	for _, raw := range strings.Split(csv, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		r := Region(name)
		ok := false
		for _, v := range valid {
			if r == v {
				ok = true
				break
			}
		}
		if !ok {
			invalid = append(invalid, name)
			continue
		}
		selected = append(selected, r)
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid region(s): %s. Valid options are: %s",
			strings.Join(invalid, ", "), joinRegions(valid))
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("region filter is empty. Valid options are: %s", joinRegions(valid))
	}
	return selected, nil
}

func joinRegions(rs []Region) string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
