package core

import "fmt"

// TileRecord is the plain form of a Tile for persistence
type TileRecord struct {
	Elevation  string `json:"elevation"`
	Explored   bool   `json:"explored,omitempty"`
	Decoration string `json:"decoration,omitempty"`
	Mist       bool   `json:"mist,omitempty"`
}

// GridRecord is the plain form of a Grid for persistence
type GridRecord struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Tiles  []TileRecord `json:"tiles"`
}

func (t Tile) ToRecord() TileRecord {
	return TileRecord{
		Elevation:  t.Elevation.String(),
		Explored:   t.Explored,
		Decoration: string(t.Decoration),
		Mist:       t.Mist,
	}
}

func TileFromRecord(r TileRecord) (Tile, error) {
	e, err := ParseElevation(r.Elevation)
	if err != nil {
		return Tile{}, err
	}
	return Tile{Elevation: e, Explored: r.Explored, Decoration: Decoration(r.Decoration), Mist: r.Mist}, nil
}

func (g *Grid) ToRecord() GridRecord {
	rec := GridRecord{Width: g.W, Height: g.H, Tiles: make([]TileRecord, len(g.T))}
	for i, t := range g.T {
		rec.Tiles[i] = t.ToRecord()
	}
	return rec
}

// GridFromRecord rebuilds a grid, rejecting records whose tile count does not match
func GridFromRecord(r GridRecord) (*Grid, error) {
	if r.Width <= 0 || r.Height <= 0 || len(r.Tiles) != r.Width*r.Height {
		return nil, fmt.Errorf("grid record %dx%d with %d tiles: %w", r.Width, r.Height, len(r.Tiles), ErrInvalidCoordinates)
	}
	g := &Grid{W: r.Width, H: r.Height, T: make([]Tile, len(r.Tiles))}
	for i, tr := range r.Tiles {
		t, err := TileFromRecord(tr)
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", i, err)
		}
		g.T[i] = t
	}
	return g, nil
}

// CoordRecord is a coordinate pair for persistence
type CoordRecord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coordinate) ToRecord() CoordRecord { return CoordRecord{X: c.X, Y: c.Y} }

func CoordinateFromRecord(r CoordRecord) Coordinate { return Coordinate{X: r.X, Y: r.Y} }
