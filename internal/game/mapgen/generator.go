// Package mapgen builds archipelago grids from layered simplex noise.
package mapgen

import (
	"errors"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
)

// ErrNoSeaRoom is returned when a map has too little open water to place the player
var ErrNoSeaRoom = errors.New("no open water to place ships")

// MapConfig holds configuration for map generation
type MapConfig struct {
	Width  int
	Height int
	Seed   int64

	Frequency   float64
	Octaves     int
	Persistence float64
	// Thresholds are the upper noise bounds for Ocean..Mountain; anything above the last is Volcano
	Thresholds [core.NumElevations - 1]float64
	// Border is the width of the ring forced to ocean
	Border int

	Ports       int
	Minefields  int
	Reefs       int
	Wrecks      int
	MistPatches int

	Spawns          int
	MinSpawnSpacing int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h int, seed int64) MapConfig {
	return MapConfig{
		Width:           w,
		Height:          h,
		Seed:            seed,
		Frequency:       0.09,
		Octaves:         4,
		Persistence:     0.5,
		Thresholds:      [core.NumElevations - 1]float64{0.42, 0.50, 0.55, 0.58, 0.64, 0.71, 0.80},
		Border:          1,
		Ports:           (w * h) / 300,
		Minefields:      (w * h) / 200,
		Reefs:           (w * h) / 150,
		Wrecks:          (w * h) / 400,
		MistPatches:     (w * h) / 100,
		Spawns:          4,
		MinSpawnSpacing: 5,
	}
}

// Map is a generated grid plus the places ships should start
type Map struct {
	Grid        *core.Grid
	PlayerStart core.Coordinate
	Spawns      []core.Coordinate
	Ports       []core.Coordinate
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
	noise  opensimplex.Noise
}

// NewGenerator creates a new map generator. Terrain depends only on the seed;
// rng drives decoration and spawn placement.
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
		noise:  opensimplex.NewNormalized(config.Seed),
	}
}

// GenerateMap creates a grid with terrain, decorations, mist and start positions
func (g *Generator) GenerateMap() (*Map, error) {
	grid := core.NewGrid(g.config.Width, g.config.Height, core.Ocean)
	g.shapeTerrain(grid)

	m := &Map{Grid: grid}
	m.Ports = g.placePorts(grid)

	start, ok := g.pickStart(grid)
	if !ok {
		return nil, ErrNoSeaRoom
	}
	m.PlayerStart = start

	reserved := core.NewCoordSet(start)
	g.decorateWater(grid, core.DecorationMinefield, g.config.Minefields, reserved)
	g.decorateWater(grid, core.DecorationReef, g.config.Reefs, reserved)
	g.decorateWater(grid, core.DecorationWreck, g.config.Wrecks, reserved)
	g.placeMist(grid, reserved)

	m.Spawns = g.placeSpawns(grid, start)
	return m, nil
}

func (g *Generator) shapeTerrain(grid *core.Grid) {
	cx, cy := center(g.config.Width, g.config.Height)
	radius := math.Max(cx, cy)

	for idx := range grid.T {
		x, y := grid.XY(idx)
		if g.inBorder(x, y) {
			grid.T[idx].Elevation = core.Ocean
			continue
		}
		px, py := planar(x, y)
		elev := octaveNoise(g.noise, px, py, g.config.Octaves, g.config.Frequency, g.config.Persistence)

		// Sink the rim so islands cluster away from the map edge
		dx, dy := px-cx, py-cy
		falloff := 1 - math.Pow(math.Sqrt(dx*dx+dy*dy)/(radius*1.2), 3)
		if falloff < 0 {
			falloff = 0
		}
		grid.T[idx].Elevation = g.classify(elev * (0.6 + 0.4*falloff))
	}
}

func (g *Generator) classify(v float64) core.Elevation {
	for i, limit := range g.config.Thresholds {
		if v < limit {
			return core.Elevation(i)
		}
	}
	return core.Volcano
}

func (g *Generator) inBorder(x, y int) bool {
	b := g.config.Border
	return x < b || y < b || x >= g.config.Width-b || y >= g.config.Height-b
}

// placePorts marks beaches that touch navigable water
func (g *Generator) placePorts(grid *core.Grid) []core.Coordinate {
	var candidates []core.Coordinate
	for idx, t := range grid.T {
		if t.Elevation != core.Beach {
			continue
		}
		x, y := grid.XY(idx)
		if len(grid.NeighborsAtElevations(x, y, core.ElevationRange(core.Ocean, core.Shallows))) > 0 {
			candidates = append(candidates, core.Coordinate{X: x, Y: y})
		}
	}
	g.rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	n := g.config.Ports
	if n > len(candidates) {
		n = len(candidates)
	}
	ports := candidates[:n]
	for _, c := range ports {
		grid.At(c).Decoration = core.DecorationPort
	}
	return ports
}

// pickStart prefers open water nearest the middle of the map
func (g *Generator) pickStart(grid *core.Grid) (core.Coordinate, bool) {
	mid := core.Coordinate{X: g.config.Width / 2, Y: g.config.Height / 2}
	best, bestDist := core.Coordinate{}, -1
	for idx, t := range grid.T {
		if t.Elevation > core.Water {
			continue
		}
		x, y := grid.XY(idx)
		c := core.Coordinate{X: x, Y: y}
		if d := core.Distance(c, mid); bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}

func (g *Generator) decorateWater(grid *core.Grid, decoration core.Decoration, want int, reserved core.CoordSet) int {
	placed := 0
	maxAttempts := want * 20
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		c := core.Coordinate{X: g.rng.Intn(grid.W), Y: g.rng.Intn(grid.H)}
		t := grid.At(c)
		if !t.Elevation.Sailable() || t.IsDecorated() || reserved.Has(c) {
			continue
		}
		t.Decoration = decoration
		placed++
	}
	return placed
}

func (g *Generator) placeMist(grid *core.Grid, reserved core.CoordSet) {
	for i := 0; i < g.config.MistPatches; i++ {
		c := core.Coordinate{X: g.rng.Intn(grid.W), Y: g.rng.Intn(grid.H)}
		for _, h := range core.Area(c, 1) {
			if !grid.Contains(h) || reserved.Has(h) {
				continue
			}
			if t := grid.At(h); t.Elevation.Sailable() {
				t.Mist = true
			}
		}
	}
}

// placeSpawns scatters hostile start positions on clear water away from the player
func (g *Generator) placeSpawns(grid *core.Grid, player core.Coordinate) []core.Coordinate {
	taken := core.NewCoordSet(player)
	var spawns []core.Coordinate
	maxAttempts := g.config.Spawns * 50
	for attempts := 0; len(spawns) < g.config.Spawns && attempts < maxAttempts; attempts++ {
		c := core.Coordinate{X: g.rng.Intn(grid.W), Y: g.rng.Intn(grid.H)}
		t := grid.At(c)
		if !t.Elevation.Sailable() || t.IsDecorated() || taken.Has(c) {
			continue
		}
		if core.Distance(c, player) < g.config.MinSpawnSpacing {
			continue
		}
		taken.Add(c)
		spawns = append(spawns, c)
	}
	return spawns
}

// planar converts an offset hex to continuous space for noise sampling
func planar(x, y int) (float64, float64) {
	px := float64(x) * 1.5
	py := float64(y) * math.Sqrt(3)
	if x&1 == 1 {
		py -= math.Sqrt(3) / 2
	}
	return px, py
}

func center(w, h int) (float64, float64) {
	return planar((w-1)/2, (h-1)/2)
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if maxVal == 0 {
		return 0
	}
	return total / maxVal
}
