package core

import (
	"fmt"
	"strings"
)

// Elevation is the terrain height class of a tile. Lower values are more nautical.
type Elevation int

const (
	Ocean Elevation = iota
	Water
	Shallows
	Beach
	Grass
	Jungle
	Mountain
	Volcano
)

// NumElevations is the number of elevation classes
const NumElevations = 8

var elevationNames = [NumElevations]string{"ocean", "water", "shallows", "beach", "grass", "jungle", "mountain", "volcano"}

func (e Elevation) String() string {
	if e < 0 || e >= NumElevations {
		return fmt.Sprintf("Elevation(%d)", int(e))
	}
	return elevationNames[e]
}

// Sailable reports whether a floating hull can sit on this elevation
func (e Elevation) Sailable() bool {
	return e < Beach
}

// ParseElevation converts a lower-case elevation name back to its value
func ParseElevation(name string) (Elevation, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range elevationNames {
		if s == n {
			return Elevation(i), nil
		}
	}
	return Ocean, fmt.Errorf("unknown elevation %q", name)
}

// ElevationSet is a bitmask of elevation classes.
type ElevationSet uint16

// NewElevationSet builds a set from the listed elevations
func NewElevationSet(elevations ...Elevation) ElevationSet {
	var s ElevationSet
	for _, e := range elevations {
		s = s.With(e)
	}
	return s
}

// ElevationRange returns the set of every elevation from lo to hi inclusive
func ElevationRange(lo, hi Elevation) ElevationSet {
	var s ElevationSet
	for e := lo; e <= hi; e++ {
		s = s.With(e)
	}
	return s
}

func (s ElevationSet) Has(e Elevation) bool {
	if e < 0 || e >= NumElevations {
		return false
	}
	return s&(1<<uint(e)) != 0
}

func (s ElevationSet) With(e Elevation) ElevationSet {
	if e < 0 || e >= NumElevations {
		return s
	}
	return s | 1<<uint(e)
}

func (s ElevationSet) Union(other ElevationSet) ElevationSet { return s | other }

func (s ElevationSet) IsEmpty() bool { return s == 0 }

// Elevations lists the members in ascending order
func (s ElevationSet) Elevations() []Elevation {
	var out []Elevation
	for e := Ocean; e < NumElevations; e++ {
		if s.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s ElevationSet) String() string {
	names := make([]string, 0, NumElevations)
	for _, e := range s.Elevations() {
		names = append(names, e.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
