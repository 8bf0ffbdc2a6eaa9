package core

import (
	"fmt"
	"sort"
)

// Movement profile names understood by the default table
const (
	ProfileWater     = "water"
	ProfileDeepWater = "deep_water"
	ProfileShallows  = "shallows"
	ProfileShore     = "shore"
	ProfileLand      = "land"
	ProfileHighLand  = "high_land"
	ProfileFly       = "fly"
	ProfileAll       = "all"
	ProfileFloat     = "float"
)

var defaultProfiles = map[string]ElevationSet{
	ProfileWater:     ElevationRange(Ocean, Shallows),
	ProfileDeepWater: NewElevationSet(Ocean, Water),
	ProfileShallows:  NewElevationSet(Shallows, Beach),
	ProfileShore:     ElevationRange(Water, Grass),
	ProfileLand:      ElevationRange(Beach, Jungle),
	ProfileHighLand:  ElevationRange(Grass, Volcano),
	ProfileFly:       ElevationRange(Ocean, Volcano),
	ProfileAll:       ElevationRange(Ocean, Volcano),
	ProfileFloat:     ElevationRange(Ocean, Shallows),
}

// ProfileTable maps movement profile names to the elevations they may traverse.
type ProfileTable struct {
	profiles map[string]ElevationSet
}

// NewProfileTable returns the default profiles with overrides applied on top.
// Override values are lists of elevation names.
func NewProfileTable(overrides map[string][]string) (*ProfileTable, error) {
	pt := &ProfileTable{profiles: make(map[string]ElevationSet, len(defaultProfiles)+len(overrides))}
	for name, set := range defaultProfiles {
		pt.profiles[name] = set
	}
	for name, elevations := range overrides {
		var set ElevationSet
		for _, en := range elevations {
			e, err := ParseElevation(en)
			if err != nil {
				return nil, fmt.Errorf("movement profile %q: %w", name, err)
			}
			set = set.With(e)
		}
		if set.IsEmpty() {
			return nil, fmt.Errorf("movement profile %q: %w", name, ErrUnknownProfile)
		}
		pt.profiles[name] = set
	}
	return pt, nil
}

// DefaultProfiles returns a table holding only the built-in profiles
func DefaultProfiles() *ProfileTable {
	pt, _ := NewProfileTable(nil)
	return pt
}

// Lookup returns the elevation set for a named profile
func (pt *ProfileTable) Lookup(name string) (ElevationSet, error) {
	set, ok := pt.profiles[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return set, nil
}

// Names lists the known profiles alphabetically
func (pt *ProfileTable) Names() []string {
	names := make([]string, 0, len(pt.profiles))
	for n := range pt.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ElevationClassesForMovement looks up a profile in the built-in table.
func ElevationClassesForMovement(name string) (ElevationSet, error) {
	set, ok := defaultProfiles[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return set, nil
}
