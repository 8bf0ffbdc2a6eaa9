package core

import (
	"fmt"
	"math"
	"sort"
)

// Coordinate is an offset (column, row) position on the hex grid.
// Rows grow upward and odd columns sit half a row lower than even columns.
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given column and row
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// FromIndex creates a coordinate from a grid array index using row-major ordering
func FromIndex(idx, width int) Coordinate {
	return Coordinate{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// ToIndex converts the coordinate to a grid array index using row-major ordering
func (c Coordinate) ToIndex(width int) int {
	return c.Y*width + c.X
}

// DistanceTo returns the hex distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	return Distance(c, other)
}

// Neighbor returns the adjacent coordinate in the given direction
func (c Coordinate) Neighbor(d Direction) Coordinate {
	return Neighbor(c, d)
}

// IsAdjacentTo checks if this coordinate shares a hex edge with another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	return Distance(c, other) == 1
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Cube is the three-axis form of a hex coordinate. A+B+C is always zero.
type Cube struct {
	A, B, C int
}

// Add returns the component-wise sum of two cube coordinates
func (c Cube) Add(other Cube) Cube {
	return Cube{A: c.A + other.A, B: c.B + other.B, C: c.C + other.C}
}

// Sub returns the component-wise difference of two cube coordinates
func (c Cube) Sub(other Cube) Cube {
	return Cube{A: c.A - other.A, B: c.B - other.B, C: c.C - other.C}
}

// Len is the distance of the cube coordinate from the origin
func (c Cube) Len() int {
	return max(abs(c.A), abs(c.B), abs(c.C))
}

// ToCube converts an offset coordinate to cube form, accounting for column parity.
func ToCube(c Coordinate) Cube {
	a := c.X
	b := c.Y - (c.X+(c.X&1))/2
	return Cube{A: a, B: b, C: -a - b}
}

// ToHex converts a cube coordinate back to offset form.
func ToHex(c Cube) Coordinate {
	return Coordinate{
		X: c.A,
		Y: c.B + (c.A+(c.A&1))/2,
	}
}

// Direction is one of the six hex edges, numbered clockwise from up.
type Direction int

const (
	Up Direction = iota
	UpperRight
	LowerRight
	Down
	LowerLeft
	UpperLeft
)

// NumDirections is the number of hex neighbors
const NumDirections = 6

var directionNames = [NumDirections]string{"up", "upper-right", "lower-right", "down", "lower-left", "upper-left"}

// cubeDirections are the unit steps for each Direction
var cubeDirections = [NumDirections]Cube{
	Up:         {A: 0, B: 1, C: -1},
	UpperRight: {A: 1, B: 0, C: -1},
	LowerRight: {A: 1, B: -1, C: 0},
	Down:       {A: 0, B: -1, C: 1},
	LowerLeft:  {A: -1, B: 0, C: 1},
	UpperLeft:  {A: -1, B: 1, C: 0},
}

// Valid reports whether d is one of the six directions
func (d Direction) Valid() bool {
	return d >= 0 && d < NumDirections
}

// Rotate turns the direction by steps hex edges; positive is clockwise.
func (d Direction) Rotate(steps int) Direction {
	r := (int(d) + steps) % NumDirections
	if r < 0 {
		r += NumDirections
	}
	return Direction(r)
}

// Left is the next direction counter-clockwise
func (d Direction) Left() Direction { return d.Rotate(-1) }

// Right is the next direction clockwise
func (d Direction) Right() Direction { return d.Rotate(1) }

// Opposite is the direction pointing the other way
func (d Direction) Opposite() Direction { return d.Rotate(3) }

// Vector returns the cube step for the direction
func (d Direction) Vector() Cube {
	return cubeDirections[d.Rotate(0)]
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Neighbor returns the coordinate one step from c in direction d.
// An invalid direction leaves the coordinate unchanged.
func Neighbor(c Coordinate, d Direction) Coordinate {
	if !d.Valid() {
		return c
	}
	return ToHex(ToCube(c).Add(cubeDirections[d]))
}

// Neighbors returns the six adjacent coordinates indexed by Direction
func Neighbors(c Coordinate) [NumDirections]Coordinate {
	var result [NumDirections]Coordinate
	cube := ToCube(c)
	for d, step := range cubeDirections {
		result[d] = ToHex(cube.Add(step))
	}
	return result
}

// Distance returns the number of hex steps between two coordinates.
func Distance(a, b Coordinate) int {
	return ToCube(a).Sub(ToCube(b)).Len()
}

// DirectionTo returns the direction from 'from' that best points at 'to'.
// Ties go to the lowest direction; from == to returns Up.
func DirectionTo(from, to Coordinate) Direction {
	bearings := BearingsTo(from, to)
	if len(bearings) == 0 {
		return Up
	}
	return bearings[0]
}

// BearingsTo returns every direction from 'from' that points at 'to' at
// least as well as any other, lowest first. A hex lying exactly between two
// directions yields both. from == to yields none.
func BearingsTo(from, to Coordinate) []Direction {
	if from == to {
		return nil
	}
	delta := ToCube(to).Sub(ToCube(from))
	var best []Direction
	bestDot := math.MinInt
	for d, v := range cubeDirections {
		dot := delta.A*v.A + delta.B*v.B + delta.C*v.C
		switch {
		case dot > bestDot:
			bestDot = dot
			best = append(best[:0], Direction(d))
		case dot == bestDot:
			best = append(best, Direction(d))
		}
	}
	return best
}

// Line returns the hexes on a straight line from a to b, both ends included.
func Line(a, b Coordinate) []Coordinate {
	n := Distance(a, b)
	if n == 0 {
		return []Coordinate{a}
	}
	ca, cb := ToCube(a), ToCube(b)
	// Nudge off exact hex edges so ties round consistently
	const eps = 1e-6
	fa := [3]float64{float64(ca.A) + eps, float64(ca.B) + eps, float64(ca.C) - 2*eps}
	fb := [3]float64{float64(cb.A) + eps, float64(cb.B) + eps, float64(cb.C) - 2*eps}

	line := make([]Coordinate, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		line = append(line, ToHex(cubeRound(
			fa[0]+(fb[0]-fa[0])*t,
			fa[1]+(fb[1]-fa[1])*t,
			fa[2]+(fb[2]-fa[2])*t,
		)))
	}
	return line
}

func cubeRound(a, b, c float64) Cube {
	ra, rb, rc := math.Round(a), math.Round(b), math.Round(c)
	da, db, dc := math.Abs(ra-a), math.Abs(rb-b), math.Abs(rc-c)
	switch {
	case da > db && da > dc:
		ra = -rb - rc
	case db > dc:
		rb = -ra - rc
	default:
		rc = -ra - rb
	}
	return Cube{A: int(ra), B: int(rb), C: int(rc)}
}

// Area returns every coordinate within radius hex steps of center, center included.
func Area(center Coordinate, radius int) []Coordinate {
	if radius < 0 {
		return nil
	}
	origin := ToCube(center)
	out := make([]Coordinate, 0, 1+3*radius*(radius+1))
	for da := -radius; da <= radius; da++ {
		lo := max(-radius, -da-radius)
		hi := min(radius, -da+radius)
		for db := lo; db <= hi; db++ {
			out = append(out, ToHex(origin.Add(Cube{A: da, B: db, C: -da - db})))
		}
	}
	return out
}

// CoordSet is an unordered set of coordinates.
type CoordSet map[Coordinate]struct{}

// NewCoordSet builds a set from the given coordinates
func NewCoordSet(coords ...Coordinate) CoordSet {
	s := make(CoordSet, len(coords))
	for _, c := range coords {
		s[c] = struct{}{}
	}
	return s
}

func (s CoordSet) Add(c Coordinate)      { s[c] = struct{}{} }
func (s CoordSet) Has(c Coordinate) bool { _, ok := s[c]; return ok }
func (s CoordSet) Len() int              { return len(s) }

// Sorted returns the members ordered by row, then column
func (s CoordSet) Sorted() []Coordinate {
	out := make([]Coordinate, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
