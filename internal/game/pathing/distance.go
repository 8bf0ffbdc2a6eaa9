// Package pathing builds breadth-first distance fields over the hex grid.
package pathing

import "github.com/mitchelldurbincs/Archipelago/internal/game/core"

const unreached = -1

// Field maps each reachable hex to its step count from the anchor.
// It is only valid for the grid and turn it was generated on.
type Field struct {
	w, h   int
	target core.Coordinate
	dist   []int
	count  int
}

// Generate floods outward from target across hexes whose elevation is in allowed.
// The target is always present at distance 0, even when it is not itself traversable.
func Generate(g *core.Grid, target core.Coordinate, allowed core.ElevationSet) *Field {
	f := &Field{w: g.W, h: g.H, target: target, dist: make([]int, g.W*g.H)}
	for i := range f.dist {
		f.dist[i] = unreached
	}
	if !g.Contains(target) {
		return f
	}

	queue := make([]core.Coordinate, 0, 64)
	f.dist[g.Idx(target.X, target.Y)] = 0
	f.count = 1
	queue = append(queue, target)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		next := f.dist[g.Idx(cur.X, cur.Y)] + 1
		for _, n := range core.Neighbors(cur) {
			if !g.CanMoveTo(n.X, n.Y, allowed) {
				continue
			}
			idx := g.Idx(n.X, n.Y)
			if f.dist[idx] != unreached {
				continue
			}
			f.dist[idx] = next
			f.count++
			queue = append(queue, n)
		}
	}
	return f
}

// Target is the anchor the field was generated from
func (f *Field) Target() core.Coordinate { return f.target }

// At returns the distance to c and whether c was reached at all
func (f *Field) At(c core.Coordinate) (int, bool) {
	if c.X < 0 || c.X >= f.w || c.Y < 0 || c.Y >= f.h {
		return 0, false
	}
	d := f.dist[c.Y*f.w+c.X]
	if d == unreached {
		return 0, false
	}
	return d, true
}

// Len is the number of reached hexes
func (f *Field) Len() int { return f.count }

// Distances exports the reached hexes, e.g. for a debug overlay
func (f *Field) Distances() map[core.Coordinate]int {
	out := make(map[core.Coordinate]int, f.count)
	for i, d := range f.dist {
		if d != unreached {
			out[core.FromIndex(i, f.w)] = d
		}
	}
	return out
}

// Best returns the neighbors of from with the smallest distance, in direction order.
// ok is false when no neighbor was reached.
func (f *Field) Best(from core.Coordinate) (dirs []core.Direction, min int, ok bool) {
	for d, n := range core.Neighbors(from) {
		v, reached := f.At(n)
		if !reached {
			continue
		}
		switch {
		case !ok || v < min:
			min, ok = v, true
			dirs = append(dirs[:0], core.Direction(d))
		case v == min:
			dirs = append(dirs, core.Direction(d))
		}
	}
	return dirs, min, ok
}
