package core

// Decoration is an optional tag placed on a tile
type Decoration string

const (
	DecorationNone      Decoration = ""
	DecorationPort      Decoration = "port"
	DecorationMinefield Decoration = "minefield"
	DecorationReef      Decoration = "reef"
	DecorationWreck     Decoration = "wreck"
)

// Tile represents a single cell on the map.
type Tile struct {
	Elevation  Elevation
	Explored   bool // set once the player has seen the tile
	Decoration Decoration
	Mist       bool
}

func (t *Tile) IsPort() bool      { return t.Decoration == DecorationPort }
func (t *Tile) IsDecorated() bool { return t.Decoration != DecorationNone }

// Grid is the fixed-size terrain map. Tiles are stored row-major.
type Grid struct {
	W, H int
	T    []Tile // length = W*H
}

// NewGrid creates a w×h grid with every tile set to fill
func NewGrid(w, h int, fill Elevation) *Grid {
	g := &Grid{W: w, H: h, T: make([]Tile, w*h)}
	for i := range g.T {
		g.T[i].Elevation = fill
	}
	return g
}

func (g *Grid) Idx(x, y int) int      { return y*g.W + x }
func (g *Grid) XY(idx int) (int, int) { return idx % g.W, idx / g.W }

// InBounds checks if coordinates are within grid boundaries
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

func (g *Grid) Contains(c Coordinate) bool { return g.InBounds(c.X, c.Y) }

// GetTile safely returns a tile pointer if coordinates are valid, nil otherwise
func (g *Grid) GetTile(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.T[g.Idx(x, y)]
}

// At is GetTile for a Coordinate
func (g *Grid) At(c Coordinate) *Tile {
	return g.GetTile(c.X, c.Y)
}

// CanMoveTo reports whether (x,y) is in bounds with an elevation in allowed.
func (g *Grid) CanMoveTo(x, y int, allowed ElevationSet) bool {
	t := g.GetTile(x, y)
	return t != nil && allowed.Has(t.Elevation)
}

// CanSailTo is the plain floating rule: in bounds and below beach.
// Entities without a movement profile use this instead of CanMoveTo.
func (g *Grid) CanSailTo(x, y int) bool {
	t := g.GetTile(x, y)
	return t != nil && t.Elevation.Sailable()
}

// NeighborsAtElevations returns the in-bounds neighbors of (x,y) whose elevation is in set,
// in direction order.
func (g *Grid) NeighborsAtElevations(x, y int, set ElevationSet) []Coordinate {
	out := make([]Coordinate, 0, NumDirections)
	for _, n := range Neighbors(Coordinate{X: x, Y: y}) {
		if g.CanMoveTo(n.X, n.Y, set) {
			out = append(out, n)
		}
	}
	return out
}

// MistTiles counts tiles currently covered by mist
func (g *Grid) MistTiles() int {
	n := 0
	for i := range g.T {
		if g.T[i].Mist {
			n++
		}
	}
	return n
}

// ExploredTiles counts tiles the player has revealed
func (g *Grid) ExploredTiles() int {
	n := 0
	for i := range g.T {
		if g.T[i].Explored {
			n++
		}
	}
	return n
}
