// Package fov computes which hexes an entity can see.
package fov

import "github.com/mitchelldurbincs/Archipelago/internal/game/core"

// DefaultMistViewDistance is how far a viewer sees into or through mist
const DefaultMistViewDistance = 1

// Viewer describes one field-of-view query
type Viewer struct {
	Origin       core.Coordinate
	ViewDistance int
	// BlockAt is the lowest elevation that hides what lies behind it
	BlockAt core.Elevation
	// ExtraMistView extends sight through mist (scrying)
	ExtraMistView int
	// RevealExplored marks every visible tile explored; only the player sets it
	RevealExplored bool
}

// Calculator holds the settings shared by every FOV query in a session
type Calculator struct {
	MistViewDistance int
}

// NewCalculator creates a calculator with the given mist view distance
func NewCalculator(mistViewDistance int) *Calculator {
	return &Calculator{MistViewDistance: mistViewDistance}
}

// Compute returns the set of hexes visible to v. The origin is always included.
func (c *Calculator) Compute(g *core.Grid, v Viewer) core.CoordSet {
	visible := core.NewCoordSet(v.Origin)
	c.reveal(g, v, v.Origin)

	if v.ViewDistance <= 0 {
		return visible
	}
	mistReach := c.MistViewDistance + v.ExtraMistView

	for _, target := range core.Area(v.Origin, v.ViewDistance) {
		if target == v.Origin || !g.Contains(target) {
			continue
		}
		if !c.lineClear(g, v, target, mistReach) {
			continue
		}
		visible.Add(target)
		c.reveal(g, v, target)
	}
	return visible
}

// lineClear walks the hex line to target. Only hexes strictly between the ends
// can occlude; mist anywhere past the origin limits range.
func (c *Calculator) lineClear(g *core.Grid, v Viewer, target core.Coordinate, mistReach int) bool {
	dist := core.Distance(v.Origin, target)
	line := core.Line(v.Origin, target)
	for i := 1; i < len(line); i++ {
		t := g.At(line[i])
		if t == nil {
			continue
		}
		if i < len(line)-1 && t.Elevation >= v.BlockAt {
			return false
		}
		if t.Mist && dist > mistReach {
			return false
		}
	}
	return true
}

func (c *Calculator) reveal(g *core.Grid, v Viewer, at core.Coordinate) {
	if !v.RevealExplored {
		return
	}
	if t := g.At(at); t != nil {
		t.Explored = true
	}
}

// Compute is a convenience wrapper using the default mist view distance
func Compute(g *core.Grid, v Viewer) core.CoordSet {
	return NewCalculator(DefaultMistViewDistance).Compute(g, v)
}
